// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"errors"
	"fmt"
)

// ErrAudio is the root of the engine's error taxonomy. Every error the
// engine returns wraps it, so callers can match the whole family with
// errors.Is(err, ErrAudio) or a specific kind with the sentinels below.
var ErrAudio = errors.New("audio engine")

var (
	// ErrNotInitialized is returned by any operation called before
	// Initialize or after Shutdown.
	ErrNotInitialized = fmt.Errorf("%w: not initialized", ErrAudio)

	// ErrInvalidHandle is returned when a handle is stale, zero, or was
	// issued by a previous session.
	ErrInvalidHandle = fmt.Errorf("%w: invalid handle", ErrAudio)

	// ErrFileLoad is returned when the backend cannot open or decode a
	// sound file, including empty paths.
	ErrFileLoad = fmt.Errorf("%w: file load failed", ErrAudio)

	// ErrInvalidArgument is returned for caller errors that are not
	// clamped away: empty layer names, negative fade durations, bad
	// distance bounds.
	ErrInvalidArgument = fmt.Errorf("%w: invalid argument", ErrAudio)
)
