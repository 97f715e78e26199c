// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"sync"
	"time"

	"github.com/hannaharmon/game-audio/backend"
	"github.com/hannaharmon/game-audio/utils"
)

// DefaultTickInterval is how often the mixer recomputes gains, advances
// fades and reaps finished voices.
const DefaultTickInterval = 16 * time.Millisecond

// Config controls engine startup. The zero value opens the system audio
// device at its defaults.
type Config struct {
	// Backend renders the audio. Nil selects the oto device backend.
	Backend backend.Backend

	// SampleRate is the device rate when the engine opens its own
	// backend. 0 selects the backend default.
	SampleRate int

	// TickInterval is the mixer update period. 0 selects
	// DefaultTickInterval.
	TickInterval time.Duration
}

// Manager is the engine. One manager owns the handle registry, the
// mixing groups, all loaded sounds and tracks, and the listener. All
// methods are safe for concurrent use; state is serialized under one
// coarse lock shared with the mixer tick.
type Manager struct {
	mtx         sync.Mutex
	initialized bool

	// epoch increments on every shutdown so stateful helpers like
	// RandomSoundContainer can detect that their cached handles died.
	epoch uint64

	backend     backend.Backend
	ownsBackend bool

	masterVolume float32
	listener     listener

	groups arena[mixGroup]
	master GroupHandle
	sounds arena[soundResource]
	tracks arena[audioTrack]

	dirPools map[string]*RandomSoundContainer

	now          func() time.Time
	tickInterval time.Duration
	stop         chan struct{}
	done         chan struct{}
}

var defaultManager = &Manager{}

// Default returns the process-wide manager. Most applications use only
// this one; separate managers exist for tests and embedding.
func Default() *Manager {
	return defaultManager
}

// Initialize starts the engine against the system audio device. Calling
// it on a running engine is a no-op.
func (m *Manager) Initialize() error {
	return m.InitializeWith(Config{})
}

// InitializeWith starts the engine with explicit configuration.
func (m *Manager) InitializeWith(cfg Config) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.initialized {
		return nil
	}

	be := cfg.Backend
	owns := false
	if be == nil {
		oto, err := backend.NewOto(cfg.SampleRate, 0)
		if err != nil {
			return err
		}
		be = oto
		owns = true
	}

	if m.now == nil {
		m.now = time.Now
	}
	m.tickInterval = cfg.TickInterval
	if m.tickInterval <= 0 {
		m.tickInterval = DefaultTickInterval
	}

	m.backend = be
	m.ownsBackend = owns
	m.masterVolume = 1
	m.listener = defaultListener()
	m.master = GroupHandle{h: m.groups.allocate(mixGroup{name: "master", volume: 1})}
	m.dirPools = make(map[string]*RandomSoundContainer)

	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	m.initialized = true

	go m.run(m.stop, m.done, m.tickInterval)

	logger.Info("engine initialized", "tick", m.tickInterval)
	return nil
}

// IsInitialized reports whether the engine is running.
func (m *Manager) IsInitialized() bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.initialized
}

// Shutdown stops the mixer, releases every sound, track and group, and
// closes an engine-owned backend. It is idempotent, and invalidates all
// handles issued since Initialize.
func (m *Manager) Shutdown() error {
	m.mtx.Lock()
	if !m.initialized {
		m.mtx.Unlock()
		return nil
	}
	m.initialized = false
	m.epoch++

	m.sounds.each(func(_ handle, res *soundResource) {
		res.release()
	})
	m.tracks.each(func(_ handle, tr *audioTrack) {
		tr.release()
	})
	m.groups.reset()
	m.sounds.reset()
	m.tracks.reset()
	m.master = GroupHandle{}
	m.dirPools = nil

	be := m.backend
	owns := m.ownsBackend
	m.backend = nil
	m.ownsBackend = false

	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.mtx.Unlock()

	close(stop)
	<-done

	logger.Info("engine shut down")
	if owns {
		return be.Close()
	}
	return nil
}

// SetMasterVolume sets the global volume scalar multiplied into every
// sound and layer. Clamped to [0, 1].
func (m *Manager) SetMasterVolume(v float32) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	m.masterVolume = utils.Clamp(v, 0, 1)
	return nil
}

// GetMasterVolume returns the global volume scalar.
func (m *Manager) GetMasterVolume() (float32, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return 0, ErrNotInitialized
	}
	return m.masterVolume, nil
}

func (m *Manager) run(stop, done chan struct{}, interval time.Duration) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mtx.Lock()
			if m.initialized {
				m.step(m.now())
			}
			m.mtx.Unlock()
		}
	}
}

// step advances all fades, recomputes effective gains, and reaps
// finished instances. Caller holds m.mtx.
func (m *Manager) step(now time.Time) {
	m.stepGroups(now)
	m.stepSounds(now)
	m.stepTracks(now)
}

// sessionEpoch identifies the current init/shutdown cycle. Helpers that
// cache handles compare epochs to drop state from a dead session.
func (m *Manager) sessionEpoch() uint64 {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.epoch
}

// groupGain returns the volume of h, or 1 when the group no longer
// exists. Caller holds m.mtx.
func (m *Manager) groupGain(h GroupHandle) float32 {
	if g := m.groups.get(h.h); g != nil {
		return g.volume
	}
	return 1
}

// PlayRandomSoundFromDir plays one random file from dir, loading the
// directory's sounds on first use. The per-directory pool avoids
// immediate repeats.
func (m *Manager) PlayRandomSoundFromDir(dir string) error {
	m.mtx.Lock()
	if !m.initialized {
		m.mtx.Unlock()
		return ErrNotInitialized
	}
	c := m.dirPools[dir]
	m.mtx.Unlock()

	if c == nil {
		c = m.NewRandomSoundContainer(ContainerConfig{AvoidRepeat: true})
		if err := c.AddSoundsFromDir(dir); err != nil {
			return err
		}

		m.mtx.Lock()
		if !m.initialized {
			m.mtx.Unlock()
			return ErrNotInitialized
		}
		if existing := m.dirPools[dir]; existing != nil {
			c = existing
		} else {
			m.dirPools[dir] = c
		}
		m.mtx.Unlock()
	}

	return c.Play()
}
