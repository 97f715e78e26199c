// SPDX-License-Identifier: EPL-2.0

// Package pcm provides low-level PCM audio primitives for the engine.
//
// This package contains the building blocks the playback backends are
// assembled from:
//   - Source interface for streaming decoded audio
//   - Clip for fully decoded in-memory sounds
//   - Resampler for sample rate conversion
//   - ChannelConv for channel count conversion
//   - Registry for decoder registration by file extension
//
// # Source Interface
//
// The Source interface is the foundation of the decode pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// All format decoders return a Source, which can be chained through a
// Resampler and a ChannelConv before being collected into a Clip.
//
// # Sample Format
//
// Samples are interleaved float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - ±1.0 represents maximum amplitude
//
// The normalized format keeps intermediate processing free of bit-depth
// concerns and avoids clipping surprises.
//
// # Decoding To A Clip
//
// Game sounds are short and replayed often, so backends decode them fully
// up front:
//
//	src, _ := decoder.Decode(file)
//	clip, _ := pcm.ReadAll(pcm.NewResampler(pcm.NewChannelConv(src, 2), 48000))
//
// The resulting Clip is immutable and may be shared by any number of
// concurrently playing voices.
//
// # Error Handling
//
// Streaming functions return io.EOF when no more data is available. Other
// errors indicate problems with the source or processing.
package pcm
