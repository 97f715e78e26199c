// SPDX-License-Identifier: EPL-2.0

package pcm

import "fmt"

// ChannelConv converts a source to a fixed output channel count.
// Downmixing averages the input channels into each output channel;
// upmixing from mono duplicates the single channel. Other upmix shapes
// (e.g. stereo to quad) fill the extra channels by cycling the input.
type ChannelConv struct {
	src Source
	out int
	tmp []float32
}

// NewChannelConv wraps src so reads produce out channels.
// When the counts already match, src is returned unchanged.
func NewChannelConv(src Source, out int) Source {
	if src.Channels() == out {
		return src
	}
	return &ChannelConv{
		src: src,
		out: out,
		tmp: make([]float32, 4096),
	}
}

func (c *ChannelConv) SampleRate() int { return c.src.SampleRate() }
func (c *ChannelConv) Channels() int   { return c.out }

func (c *ChannelConv) Close() error {
	err := c.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (c *ChannelConv) ReadSamples(dst []float32) (int, error) {
	if len(dst)%c.out != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	in := c.src.Channels()
	frames := len(dst) / c.out
	samplesNeeded := frames * in

	if cap(c.tmp) < samplesNeeded {
		c.tmp = make([]float32, samplesNeeded)
	}
	c.tmp = c.tmp[:samplesNeeded]

	n, err := c.src.ReadSamples(c.tmp)
	if n == 0 {
		return 0, err
	}
	gotFrames := n / in

	switch {
	case in == 1:
		// Mono upmix: duplicate across all output channels.
		for f := 0; f < gotFrames; f++ {
			s := c.tmp[f]
			base := f * c.out
			for ch := 0; ch < c.out; ch++ {
				dst[base+ch] = s
			}
		}
	case c.out == 1:
		// Downmix to mono by averaging, same as the classic mono mixer.
		inv := float32(1) / float32(in)
		for f := 0; f < gotFrames; f++ {
			sum := float32(0)
			base := f * in
			for ch := 0; ch < in; ch++ {
				sum += c.tmp[base+ch]
			}
			dst[f] = sum * inv
		}
	default:
		// Generic path: cycle input channels across the output frame.
		for f := 0; f < gotFrames; f++ {
			inBase := f * in
			outBase := f * c.out
			for ch := 0; ch < c.out; ch++ {
				dst[outBase+ch] = c.tmp[inBase+ch%in]
			}
		}
	}

	return gotFrames * c.out, err
}
