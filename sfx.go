// SPDX-License-Identifier: EPL-2.0

package gameaudio

import "sync"

// SFXPlayer is a registry of named random-sound collections, one per
// effect. It wraps RandomSoundContainer for the common case of a
// directory of variants per effect name.
type SFXPlayer struct {
	m *Manager

	mtx         sync.Mutex
	collections map[string]*RandomSoundContainer
}

// NewSFXPlayer creates an empty player bound to the manager. A nil
// manager selects Default().
func NewSFXPlayer(m *Manager) *SFXPlayer {
	if m == nil {
		m = Default()
	}
	return &SFXPlayer{
		m:           m,
		collections: make(map[string]*RandomSoundContainer),
	}
}

// LoadCollection registers every decodable file in dir as variants of
// the named effect. Loading a name again replaces the collection.
func (p *SFXPlayer) LoadCollection(name, dir string, cfg ContainerConfig) error {
	if name == "" {
		return ErrInvalidArgument
	}

	c := p.m.NewRandomSoundContainer(cfg)
	if err := c.AddSoundsFromDir(dir); err != nil {
		return err
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.collections[name] = c
	return nil
}

// Play plays one random variant of the named effect.
func (p *SFXPlayer) Play(name string) error {
	c, err := p.collection(name)
	if err != nil {
		return err
	}
	return c.Play()
}

// PlayWithVolume is Play at an explicit volume.
func (p *SFXPlayer) PlayWithVolume(name string, volume float32) error {
	c, err := p.collection(name)
	if err != nil {
		return err
	}
	return c.PlayWithVolume(volume)
}

// StopAll stops every sound started through this player.
func (p *SFXPlayer) StopAll() {
	p.mtx.Lock()
	containers := make([]*RandomSoundContainer, 0, len(p.collections))
	for _, c := range p.collections {
		containers = append(containers, c)
	}
	p.mtx.Unlock()

	for _, c := range containers {
		c.StopAll()
	}
}

func (p *SFXPlayer) collection(name string) (*RandomSoundContainer, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	c, ok := p.collections[name]
	if !ok {
		return nil, ErrInvalidArgument
	}
	return c, nil
}
