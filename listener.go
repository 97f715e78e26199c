// SPDX-License-Identifier: EPL-2.0

package gameaudio

import "github.com/hannaharmon/game-audio/spatial"

// listener is the single point of reference for spatialized playback.
// Conventions match the usual right-handed setup: forward is -Z, up is
// +Y.
type listener struct {
	position spatial.Vec3
	forward  spatial.Vec3
	up       spatial.Vec3
}

func defaultListener() listener {
	return listener{
		forward: spatial.Vec3{Z: -1},
		up:      spatial.Vec3{Y: 1},
	}
}

// SetListenerPosition moves the listener.
func (m *Manager) SetListenerPosition(pos spatial.Vec3) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	m.listener.position = pos
	return nil
}

// GetListenerPosition returns the listener position.
func (m *Manager) GetListenerPosition() (spatial.Vec3, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return spatial.Vec3{}, ErrNotInitialized
	}
	return m.listener.position, nil
}

// SetListenerOrientation sets the listener's forward and up vectors.
// Zero vectors are rejected; both are stored normalized.
func (m *Manager) SetListenerOrientation(forward, up spatial.Vec3) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	if forward.LengthSquared() == 0 || up.LengthSquared() == 0 {
		return ErrInvalidArgument
	}
	m.listener.forward = forward.Normalize()
	m.listener.up = up.Normalize()
	return nil
}

// GetListenerOrientation returns the forward and up vectors. The
// defaults are (0, 0, -1) and (0, 1, 0).
func (m *Manager) GetListenerOrientation() (forward, up spatial.Vec3, err error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return spatial.Vec3{}, spatial.Vec3{}, ErrNotInitialized
	}
	return m.listener.forward, m.listener.up, nil
}
