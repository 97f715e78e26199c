package pcm_test

import (
	"github.com/hannaharmon/game-audio/internal/audiotest"
)

// The generators live in internal/audiotest; these constructors keep
// the call sites short.

func newMockSource(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *audiotest.MockSource {
	return audiotest.NewMockSource(sampleRate, channels, totalFrames, waveform)
}

func newSilentSource(sampleRate, channels, totalFrames int) *audiotest.MockSource {
	return audiotest.NewSilentSource(sampleRate, channels, totalFrames)
}

func newSineSource(sampleRate, channels, totalFrames int, frequency float64) *audiotest.MockSource {
	return audiotest.NewSineSource(sampleRate, channels, totalFrames, frequency)
}

func newConstantSource(sampleRate, channels, totalFrames int, value float32) *audiotest.MockSource {
	return audiotest.NewConstantSource(sampleRate, channels, totalFrames, value)
}

// newChannelIndexSource emits the channel index as the sample value,
// which makes mixing arithmetic easy to verify.
func newChannelIndexSource(sampleRate, channels, totalFrames int) *audiotest.MockSource {
	return audiotest.NewMockSource(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		return float32(channel)
	})
}
