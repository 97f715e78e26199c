// SPDX-License-Identifier: EPL-2.0

package backend

import "github.com/hannaharmon/game-audio/spatial"

// Voice is a single playable instance of a loaded audio file. Voice
// methods are called from the engine's mixer tick and from API calls;
// implementations must be safe for concurrent use.
type Voice interface {
	// Start begins or resumes playback.
	Start()
	// Stop halts playback and rewinds to the beginning.
	Stop()
	// SetVolume sets the final gain. The engine computes the full gain
	// chain (master, group, fades, spatial) and pushes the product
	// here; values above 1 may be clamped by the device.
	SetVolume(v float32)
	// SetPitch sets the playback-rate multiplier.
	SetPitch(p float32)
	// SetLooping toggles looped playback.
	SetLooping(loop bool)
	// SetPosition reports the emitter position. Backends without
	// positional output may ignore it; the engine folds attenuation
	// into SetVolume regardless.
	SetPosition(pos spatial.Vec3)
	// Finished reports whether a non-looping voice has played to its
	// end. Looping voices never finish on their own.
	Finished() bool
	// Close releases the voice's resources. A closed voice must not
	// be used again.
	Close() error
}

// Backend turns audio files into playable voices.
type Backend interface {
	// Open loads the file at path and returns a stopped voice for it.
	Open(path string) (Voice, error)
	// Close shuts the backend down. Voices opened from it must be
	// closed first.
	Close() error
}
