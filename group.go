// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"time"
)

// mixGroup is a volume node. Every sound and track layer belongs to
// exactly one group; the group volume multiplies into each member's
// effective gain. The master group exists for the engine's lifetime and
// cannot be destroyed.
type mixGroup struct {
	name   string
	volume float32
	fade   *fadeState
}

// MasterGroup returns the root group. Sounds loaded without an explicit
// group belong to it. The zero handle is returned when the engine is
// not initialized.
func (m *Manager) MasterGroup() GroupHandle {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.master
}

// CreateGroup creates a mixing group at volume 1. The name is
// diagnostic only and may be empty.
func (m *Manager) CreateGroup(name string) (GroupHandle, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return GroupHandle{}, ErrNotInitialized
	}

	h := GroupHandle{h: m.groups.allocate(mixGroup{name: name, volume: 1})}
	logger.Debug("group created", "name", name)
	return h, nil
}

// DestroyGroup removes a group. Sounds and layers still referencing it
// are detached to the master group; they keep playing. The master group
// cannot be destroyed.
func (m *Manager) DestroyGroup(h GroupHandle) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	if h == m.master {
		return ErrInvalidArgument
	}
	if m.groups.get(h.h) == nil {
		return ErrInvalidHandle
	}

	m.sounds.each(func(_ handle, res *soundResource) {
		if res.group == h {
			res.group = m.master
		}
	})
	m.tracks.each(func(_ handle, tr *audioTrack) {
		for _, layer := range tr.layers {
			if layer.group == h {
				layer.group = m.master
			}
		}
	})

	m.groups.release(h.h)
	return nil
}

// SetGroupVolume sets the group volume immediately, canceling any
// active fade. Values above 1 amplify; negatives clamp to 0.
func (m *Manager) SetGroupVolume(h GroupHandle, v float32) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	g := m.groups.get(h.h)
	if g == nil {
		return ErrInvalidHandle
	}

	if v < 0 {
		v = 0
	}
	g.volume = v
	g.fade = nil
	return nil
}

// GetGroupVolume returns the group volume, including the current value
// of an in-flight fade as of the last mixer tick.
func (m *Manager) GetGroupVolume(h GroupHandle) (float32, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return 0, ErrNotInitialized
	}
	g := m.groups.get(h.h)
	if g == nil {
		return 0, ErrInvalidHandle
	}
	return g.volume, nil
}

// FadeGroup ramps the group volume to target over duration. A zero
// duration jumps immediately; a negative one is an error. A new fade
// replaces any active fade on the group.
func (m *Manager) FadeGroup(h GroupHandle, target float32, duration time.Duration) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	g := m.groups.get(h.h)
	if g == nil {
		return ErrInvalidHandle
	}
	if duration < 0 {
		return ErrInvalidArgument
	}

	if target < 0 {
		target = 0
	}
	if duration == 0 {
		g.volume = target
		g.fade = nil
		return nil
	}

	g.fade = newFade(g.volume, target, m.now(), duration)
	return nil
}

// stepGroups advances group fades. Caller holds m.mtx.
func (m *Manager) stepGroups(now time.Time) {
	m.groups.each(func(_ handle, g *mixGroup) {
		if g.fade == nil {
			return
		}
		v, done := g.fade.at(now)
		g.volume = v
		if done {
			g.fade = nil
		}
	})
}
