// SPDX-License-Identifier: EPL-2.0

package gameaudio

import "sync"

// Session ties the engine lifecycle to a caller-held value: creating
// one initializes the manager, closing it shuts the manager down
// exactly once. Double-close is safe, so Close can sit in a defer next
// to an explicit shutdown path.
type Session struct {
	m    *Manager
	once sync.Once
}

// NewSession initializes m (Default() when nil) and returns the guard.
func NewSession(m *Manager, cfg Config) (*Session, error) {
	if m == nil {
		m = Default()
	}
	if err := m.InitializeWith(cfg); err != nil {
		return nil, err
	}
	return &Session{m: m}, nil
}

// Manager returns the manager this session guards.
func (s *Session) Manager() *Manager {
	return s.m
}

// Close shuts the manager down. Only the first call does anything.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		err = s.m.Shutdown()
	})
	return err
}
