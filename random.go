// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hannaharmon/game-audio/backend"
)

// ContainerConfig configures a RandomSoundContainer.
type ContainerConfig struct {
	// Group that container sounds play in. The zero handle selects the
	// master group.
	Group GroupHandle

	// PitchMin and PitchMax bound the uniform pitch draw applied on
	// each play. Both default to 1 (no randomization) when PitchMin is
	// unset; PitchMax below PitchMin is raised to PitchMin.
	PitchMin float32
	PitchMax float32

	// AvoidRepeat excludes the previously selected sound from the next
	// draw whenever the pool holds more than one entry.
	AvoidRepeat bool
}

// RandomSoundContainer is a pool of interchangeable sound variants,
// typically one effect recorded several times. Each play picks a random
// variant with a random pitch, which breaks up the repetitiveness of
// frequently fired effects.
//
// Sounds are decoded lazily on first selection. The container notices
// engine shutdown and drops its cached handles, so it survives
// re-initialization.
type RandomSoundContainer struct {
	m   *Manager
	cfg ContainerConfig

	mtx     sync.Mutex
	epoch   uint64
	pool    []string
	loaded  map[int]SoundHandle
	played  map[SoundHandle]struct{}
	lastIdx int
}

// NewRandomSoundContainer creates an empty container bound to the
// manager.
func (m *Manager) NewRandomSoundContainer(cfg ContainerConfig) *RandomSoundContainer {
	if cfg.PitchMin <= 0 {
		cfg.PitchMin = 1
		if cfg.PitchMax <= 0 {
			cfg.PitchMax = 1
		}
	}
	if cfg.PitchMax < cfg.PitchMin {
		cfg.PitchMax = cfg.PitchMin
	}

	return &RandomSoundContainer{
		m:       m,
		cfg:     cfg,
		epoch:   m.sessionEpoch(),
		loaded:  make(map[int]SoundHandle),
		played:  make(map[SoundHandle]struct{}),
		lastIdx: -1,
	}
}

// AddSound appends a file to the pool without decoding it.
func (c *RandomSoundContainer) AddSound(path string) error {
	if path == "" {
		return ErrInvalidArgument
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.pool = append(c.pool, path)
	return nil
}

// AddSoundsFromDir appends every decodable file in dir to the pool, in
// directory order. Files with unrecognized extensions are skipped.
func (c *RandomSoundContainer) AddSoundsFromDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: reading %q: %w", ErrFileLoad, dir, err)
	}

	reg := backend.DefaultRegistry()

	c.mtx.Lock()
	defer c.mtx.Unlock()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(e.Name()), ".")
		if _, ok := reg.Lookup(ext); !ok {
			continue
		}
		c.pool = append(c.pool, filepath.Join(dir, e.Name()))
	}
	return nil
}

// SoundCount returns the pool size.
func (c *RandomSoundContainer) SoundCount() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.pool)
}

// RandomSound selects a random pool entry, loading it on first use, and
// returns its handle. An empty pool returns the zero handle without
// error.
func (c *RandomSoundContainer) RandomSound() (SoundHandle, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.selectLocked()
}

// Play selects a random sound, draws a pitch uniformly from the
// configured range, and plays it in the container's group. Playing an
// empty container is a no-op.
func (c *RandomSoundContainer) Play() error {
	return c.play(-1)
}

// PlayWithVolume is Play at an explicit volume.
func (c *RandomSoundContainer) PlayWithVolume(volume float32) error {
	return c.play(volume)
}

func (c *RandomSoundContainer) play(volume float32) error {
	c.mtx.Lock()
	h, err := c.selectLocked()
	c.mtx.Unlock()
	if err != nil {
		return err
	}
	if !h.IsValid() {
		return nil
	}

	pitch := c.cfg.PitchMin
	if c.cfg.PitchMax > c.cfg.PitchMin {
		pitch += rand.Float32() * (c.cfg.PitchMax - c.cfg.PitchMin)
	}
	if err := c.m.SetSoundPitch(h, pitch); err != nil {
		return err
	}
	if volume >= 0 {
		if err := c.m.SetSoundVolume(h, volume); err != nil {
			return err
		}
	}
	return c.m.PlaySound(h)
}

// StopAll stops every sound this container has started.
func (c *RandomSoundContainer) StopAll() {
	c.mtx.Lock()
	c.syncEpochLocked()
	handles := make([]SoundHandle, 0, len(c.played))
	for h := range c.played {
		handles = append(handles, h)
	}
	c.mtx.Unlock()

	for _, h := range handles {
		// a destroyed sound is fine to skip
		_ = c.m.StopSound(h)
	}
}

// selectLocked draws the next index, excluding the last one when
// AvoidRepeat is set and the pool allows it, and resolves it to a
// loaded handle. Caller holds c.mtx.
func (c *RandomSoundContainer) selectLocked() (SoundHandle, error) {
	c.syncEpochLocked()

	n := len(c.pool)
	if n == 0 {
		return SoundHandle{}, nil
	}

	var idx int
	if c.cfg.AvoidRepeat && n > 1 && c.lastIdx >= 0 {
		idx = rand.IntN(n - 1)
		if idx >= c.lastIdx {
			idx++
		}
	} else {
		idx = rand.IntN(n)
	}
	c.lastIdx = idx

	if h, ok := c.loaded[idx]; ok {
		return h, nil
	}

	h, err := c.m.LoadSoundInGroup(c.pool[idx], c.cfg.Group)
	if err != nil {
		return SoundHandle{}, err
	}
	c.loaded[idx] = h
	c.played[h] = struct{}{}
	return h, nil
}

// syncEpochLocked drops cached handles when the engine has been shut
// down since they were issued. Caller holds c.mtx.
func (c *RandomSoundContainer) syncEpochLocked() {
	if e := c.m.sessionEpoch(); e != c.epoch {
		c.epoch = e
		clear(c.loaded)
		clear(c.played)
		c.lastIdx = -1
	}
}
