// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/hannaharmon/game-audio/pcm"
	"github.com/hannaharmon/game-audio/spatial"
	"github.com/hannaharmon/game-audio/utils"
)

const (
	// DefaultSampleRate is the device rate used when none is given.
	DefaultSampleRate = 48000
	// DefaultChannelCount is the device channel count used when none is
	// given.
	DefaultChannelCount = 2
)

// Oto plays audio through the system device using ebitengine/oto. A
// process may hold at most one oto context, so create one Oto backend
// and share it.
type Oto struct {
	ctx        *oto.Context
	sampleRate int
	channels   int
}

// NewOto opens the system audio device. sampleRate and channelCount of
// 0 select the defaults (48kHz stereo).
func NewOto(sampleRate, channelCount int) (*Oto, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if channelCount <= 0 {
		channelCount = DefaultChannelCount
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	return &Oto{
		ctx:        ctx,
		sampleRate: sampleRate,
		channels:   channelCount,
	}, nil
}

// SampleRate returns the device sample rate.
func (b *Oto) SampleRate() int { return b.sampleRate }

// ChannelCount returns the device channel count.
func (b *Oto) ChannelCount() int { return b.channels }

// Open decodes the file at path, converts it to the device rate and
// channel count, and returns a stopped voice playing through the
// device.
func (b *Oto) Open(path string) (Voice, error) {
	clip, err := DecodeFileFor(path, b.sampleRate, b.channels)
	if err != nil {
		return nil, err
	}

	r := &clipReader{
		clip:  clip,
		pitch: 1,
	}

	return &otoVoice{
		player: b.ctx.NewPlayer(r),
		reader: r,
	}, nil
}

// Close suspends the device. The oto context itself cannot be torn
// down; a suspended context can be reused by a later backend.
func (b *Oto) Close() error {
	if err := b.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspending audio device: %w", err)
	}
	return nil
}

// otoVoice adapts an oto player to the Voice interface.
type otoVoice struct {
	player *oto.Player
	reader *clipReader

	mtx    sync.Mutex
	closed bool
}

func (v *otoVoice) Start() {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if v.closed {
		return
	}
	v.reader.rearm()
	v.player.Play()
}

func (v *otoVoice) Stop() {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if v.closed {
		return
	}
	v.player.Pause()
	v.reader.rewind()
}

func (v *otoVoice) SetVolume(vol float32) {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if v.closed {
		return
	}
	v.player.SetVolume(float64(utils.Clamp(vol, 0, 1)))
}

func (v *otoVoice) SetPitch(p float32) {
	v.reader.setPitch(p)
}

func (v *otoVoice) SetLooping(loop bool) {
	v.reader.setLooping(loop)
}

// SetPosition is a no-op: the engine folds positional attenuation into
// SetVolume before it reaches the device.
func (v *otoVoice) SetPosition(spatial.Vec3) {}

func (v *otoVoice) Finished() bool {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if v.closed {
		return true
	}
	return v.reader.finished() && !v.player.IsPlaying()
}

func (v *otoVoice) Close() error {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if v.closed {
		return nil
	}
	v.closed = true

	if err := v.player.Close(); err != nil {
		return fmt.Errorf("closing player: %w", err)
	}
	return nil
}

// clipReader renders a clip as float32 little-endian bytes. The clip
// is already at the device rate and channel count, so only pitch moves
// the fractional frame position, interpolated with the same cubic
// kernel the offline resampler uses.
type clipReader struct {
	clip *pcm.Clip

	mtx   sync.Mutex
	pos   float64 // fractional frame position in the clip
	pitch float64 // clip frames consumed per device frame
	loop  bool
	done  bool
}

func (r *clipReader) setPitch(p float32) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.pitch = float64(p)
}

func (r *clipReader) setLooping(loop bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.loop = loop
	if loop {
		r.done = false
	}
}

func (r *clipReader) rewind() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.pos = 0
	r.done = false
}

// rearm clears the done flag so a finished voice can be restarted.
func (r *clipReader) rearm() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.done {
		r.pos = 0
		r.done = false
	}
}

func (r *clipReader) finished() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.done
}

// frameAt returns the interpolated sample for one channel at the
// fractional clip position.
func (r *clipReader) frameAt(pos float64, ch int) float32 {
	frames := r.clip.Frames()
	f1 := int(pos)
	t := float32(pos - float64(f1))

	clampFrame := func(f int) int {
		if f < 0 {
			return 0
		}
		if f >= frames {
			return frames - 1
		}
		return f
	}

	sample := func(frame int) float32 {
		return r.clip.Frame(clampFrame(frame), ch)
	}

	return utils.CubicInterpolate(
		sample(f1-1),
		sample(f1),
		sample(f1+1),
		sample(f1+2),
		t,
	)
}

func (r *clipReader) Read(p []byte) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.done || r.clip.Frames() == 0 {
		return 0, io.EOF
	}

	channels := r.clip.Channels
	bytesPerFrame := channels * 4
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	step := r.pitch
	total := float64(r.clip.Frames())

	written := 0
	for f := 0; f < frames; f++ {
		if r.pos >= total {
			if !r.loop {
				r.done = true
				break
			}
			r.pos = math.Mod(r.pos, total)
		}

		for ch := 0; ch < channels; ch++ {
			s := r.frameAt(r.pos, ch)
			binary.LittleEndian.PutUint32(
				p[written+ch*4:written+ch*4+4],
				math.Float32bits(s),
			)
		}

		written += bytesPerFrame
		r.pos += step
	}

	if written == 0 {
		return 0, io.EOF
	}
	return written, nil
}
