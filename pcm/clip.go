// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"io"
	"time"
)

// Clip is a fully decoded sound held in memory as interleaved float32
// samples. Clips are immutable after creation and may be shared by any
// number of players.
type Clip struct {
	Data     []float32
	Rate     int
	Channels int
}

// Frames returns the number of sample frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Data) / c.Channels
}

// Duration returns the playback duration of the clip at its native rate.
func (c *Clip) Duration() time.Duration {
	if c.Rate == 0 {
		return 0
	}
	return time.Duration(float64(c.Frames()) / float64(c.Rate) * float64(time.Second))
}

// Frame returns the sample for one channel of one frame.
// No bounds checking beyond the slice's own.
func (c *Clip) Frame(frame, channel int) float32 {
	return c.Data[frame*c.Channels+channel]
}

// ReadAll drains src into a Clip, closing the source afterwards.
func ReadAll(src Source) (*Clip, error) {
	defer src.Close()

	clip := &Clip{
		Rate:     src.SampleRate(),
		Channels: src.Channels(),
	}

	buf := make([]float32, 4096)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			clip.Data = append(clip.Data, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	// Drop a trailing partial frame from a malformed stream.
	if clip.Channels > 1 {
		clip.Data = clip.Data[:len(clip.Data)-len(clip.Data)%clip.Channels]
	}

	return clip, nil
}
