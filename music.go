// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"sync"
	"time"
)

// MusicPlayer switches between whole named tracks, the way a game moves
// from exploration music to combat music. Transitions restart the
// incoming track from its beginning: FadeTo crossfades, Play cuts.
type MusicPlayer struct {
	m *Manager

	mtx     sync.Mutex
	tracks  map[string]TrackHandle
	current string
}

// NewMusicPlayer builds a player driving the given engine. A nil
// manager selects Default().
func NewMusicPlayer(m *Manager) *MusicPlayer {
	if m == nil {
		m = Default()
	}
	return &MusicPlayer{
		m:      m,
		tracks: make(map[string]TrackHandle),
	}
}

// AddTrack registers a track under name. Registering a name again
// replaces the registration; the previous track itself is untouched.
func (p *MusicPlayer) AddTrack(name string, h TrackHandle) error {
	if name == "" || !h.IsValid() {
		return ErrInvalidArgument
	}

	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.tracks[name] = h
	return nil
}

// Play cuts straight to the named track: the current track stops and
// the target restarts from its beginning. Playing the current track
// again restarts it.
func (p *MusicPlayer) Play(name string) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	h, ok := p.tracks[name]
	if !ok {
		return ErrInvalidArgument
	}

	if cur, ok := p.tracks[p.current]; ok && p.current != name {
		// The outgoing track may already have been destroyed
		_ = p.m.StopTrack(cur)
	}
	if err := p.m.PlayTrack(h); err != nil {
		return err
	}
	p.current = name

	logger.Debug("music track playing", "name", name)
	return nil
}

// FadeTo crossfades from the current track to the named one over
// duration, restarting the target from its beginning. The outgoing
// track fades to silence and stops once the fade completes. Fading to
// the track already playing is a no-op; duration must be positive.
func (p *MusicPlayer) FadeTo(name string, duration time.Duration) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	h, ok := p.tracks[name]
	if !ok {
		return ErrInvalidArgument
	}
	if name == p.current {
		return nil
	}

	// Zero handle when nothing is playing; the crossfade skips it.
	out := p.tracks[p.current]
	if err := p.m.crossfadeTracks(out, h, duration); err != nil {
		return err
	}
	p.current = name

	logger.Debug("music crossfade", "name", name, "duration", duration)
	return nil
}

// Stop stops the current track immediately.
func (p *MusicPlayer) Stop() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	h, ok := p.tracks[p.current]
	p.current = ""
	if !ok {
		return nil
	}
	return p.m.StopTrack(h)
}

// Current returns the name of the playing track, or "" when stopped.
func (p *MusicPlayer) Current() string {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.current
}
