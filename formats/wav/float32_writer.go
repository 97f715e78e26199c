// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	"github.com/hannaharmon/game-audio/utils"
)

// WriteWAVFloat32 writes interleaved float32 samples in [-1, 1] as a
// 16-bit PCM WAV file. Samples outside the range are clamped. This is
// the write-side counterpart of the decoder, which produces float32.
func WriteWAVFloat32(w io.Writer, sampleRate, channels int, samples []float32) error {
	pcm16 := make([]int16, len(samples))
	for i, s := range samples {
		pcm16[i] = utils.Float32ToInt16(s)
	}
	return WriteWAV16(w, sampleRate, channels, pcm16)
}
