// SPDX-License-Identifier: EPL-2.0

// Package backend abstracts audio output devices behind a small
// contract: a Backend opens files into Voices, and a Voice is one
// playable instance with volume, pitch and looping controls.
//
// Two implementations are provided:
//
//   - Oto plays through the system device using github.com/ebitengine/oto.
//     One oto context exists per process, so create a single Oto backend
//     and share it.
//   - Null decodes files for real but simulates playback against the
//     clock. Use it on servers, in CI, and in tests.
//
// # Opening Voices
//
//	be, err := backend.NewOto(48000, 2)
//	if err != nil {
//	    // no audio device
//	}
//
//	voice, err := be.Open("explosion.wav")
//	if err != nil {
//	    // missing file or undecodable format
//	}
//
//	voice.SetVolume(0.8)
//	voice.Start()
//
// # Decoding
//
// All backends share DecodeFile, which picks a decoder by file
// extension from DefaultRegistry (wav, mp3, ogg, aiff) and loads the
// whole file into memory as float32 PCM. Voices for the same file may
// be opened repeatedly; each Open decodes independently, callers are
// expected to cache at a higher level.
//
// # Threading
//
// Voice methods are safe for concurrent use. The engine calls them
// both from its mixer tick and from API calls.
package backend
