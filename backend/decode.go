// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hannaharmon/game-audio/formats/aiff"
	"github.com/hannaharmon/game-audio/formats/mp3"
	"github.com/hannaharmon/game-audio/formats/vorbis"
	"github.com/hannaharmon/game-audio/formats/wav"
	"github.com/hannaharmon/game-audio/pcm"
)

// ErrEmptyPath indicates an empty file path was given.
var ErrEmptyPath = errors.New("empty file path")

var (
	registryOnce sync.Once
	registry     *pcm.Registry
)

// DefaultRegistry returns the shared decoder registry with all built-in
// formats registered: wav, mp3, ogg, aiff (and the aif alias).
func DefaultRegistry() *pcm.Registry {
	registryOnce.Do(func() {
		registry = pcm.NewRegistry()
		registry.Register("wav", wav.Decoder{})
		registry.Register("mp3", mp3.Decoder{})
		registry.Register("ogg", vorbis.Decoder{})
		registry.Register("aiff", aiff.Decoder{})
		registry.Register("aif", aiff.Decoder{})
	})
	return registry
}

// DecodeFile decodes the audio file at path fully into memory at its
// native sample rate and channel count. The decoder is picked by file
// extension from DefaultRegistry.
func DecodeFile(path string) (*pcm.Clip, error) {
	return decodeFile(path, 0, 0)
}

// DecodeFileFor decodes the audio file at path and converts it to the
// given sample rate and channel count, so a fixed-format device can
// play the clip without per-sample conversion. A rate or channel count
// of 0 keeps the file's native value.
func DecodeFileFor(path string, sampleRate, channels int) (*pcm.Clip, error) {
	return decodeFile(path, sampleRate, channels)
}

func decodeFile(path string, sampleRate, channels int) (*pcm.Clip, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	ext := filepath.Ext(path)
	dec, ok := DefaultRegistry().Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", pcm.ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if sampleRate > 0 {
		src = pcm.NewResampler(src, sampleRate)
	}
	if channels > 0 {
		src = pcm.NewChannelConv(src, channels)
	}

	clip, err := pcm.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return clip, nil
}
