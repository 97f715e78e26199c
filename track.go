// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"fmt"
	"time"

	"github.com/hannaharmon/game-audio/backend"
	"github.com/hannaharmon/game-audio/utils"
)

// audioTrack is a set of named layers that start and stop together.
// Each layer's volume fades independently, which is what makes layered
// music work: the arrangement plays in lockstep while individual stems
// come and go.
type audioTrack struct {
	layers  map[string]*trackLayer
	playing bool

	// stopping marks a track fading to silence; once every layer fade
	// completes the track stops and layer volumes return to base.
	stopping bool
}

// trackLayer is one stem of a track. Layers loop, so a track keeps
// playing until stopped. base is the configured volume; volume is the
// instantaneous value, which a fade moves between the two.
type trackLayer struct {
	path     string
	group    GroupHandle
	base     float32
	volume   float32
	fade     *fadeState
	voice    backend.Voice
	lastGain float32
}

// release stops and closes every layer voice.
func (tr *audioTrack) release() {
	for _, layer := range tr.layers {
		layer.voice.Stop()
		layer.voice.Close()
	}
	tr.playing = false
}

// CreateTrack creates an empty track.
func (m *Manager) CreateTrack() (TrackHandle, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return TrackHandle{}, ErrNotInitialized
	}

	h := TrackHandle{h: m.tracks.allocate(audioTrack{
		layers: make(map[string]*trackLayer),
	})}
	return h, nil
}

// DestroyTrack stops the track and releases every layer. The handle is
// invalid afterwards.
func (m *Manager) DestroyTrack(h TrackHandle) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	tr := m.tracks.get(h.h)
	if tr == nil {
		return ErrInvalidHandle
	}

	tr.release()
	m.tracks.release(h.h)
	return nil
}

// AddLayer loads the file at path as a named layer of the track in the
// given group (zero handle selects the master group). Adding a name
// that already exists replaces that layer's source. If the track is
// playing, the new layer starts immediately so it stays in lockstep
// from its own beginning.
func (m *Manager) AddLayer(h TrackHandle, name, path string, group GroupHandle) error {
	if name == "" || path == "" {
		return ErrInvalidArgument
	}

	m.mtx.Lock()
	if !m.initialized {
		m.mtx.Unlock()
		return ErrNotInitialized
	}
	if m.tracks.get(h.h) == nil {
		m.mtx.Unlock()
		return ErrInvalidHandle
	}
	be := m.backend
	m.mtx.Unlock()

	voice, err := be.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrFileLoad, path, err)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		voice.Close()
		return ErrNotInitialized
	}
	tr := m.tracks.get(h.h)
	if tr == nil {
		voice.Close()
		return ErrInvalidHandle
	}

	g := m.master
	if group.IsValid() {
		if m.groups.get(group.h) == nil {
			voice.Close()
			return ErrInvalidHandle
		}
		g = group
	}

	if prior, ok := tr.layers[name]; ok {
		prior.voice.Stop()
		prior.voice.Close()
	}

	layer := &trackLayer{
		path:     path,
		group:    g,
		base:     1,
		volume:   1,
		voice:    voice,
		lastGain: -1,
	}
	voice.SetLooping(true)
	tr.layers[name] = layer

	if tr.playing {
		m.startLayer(layer)
	}

	logger.Debug("layer added", "name", name, "path", path)
	return nil
}

// RemoveLayer removes and releases the named layer. Removing a name
// that does not exist is a no-op.
func (m *Manager) RemoveLayer(h TrackHandle, name string) error {
	return m.withTrack(h, func(tr *audioTrack) error {
		layer, ok := tr.layers[name]
		if !ok {
			return nil
		}
		layer.voice.Stop()
		layer.voice.Close()
		delete(tr.layers, name)
		return nil
	})
}

// SetLayerVolume sets the layer volume immediately, clamped to [0, 1],
// canceling any active fade on that layer.
func (m *Manager) SetLayerVolume(h TrackHandle, name string, v float32) error {
	return m.withLayer(h, name, func(layer *trackLayer) error {
		layer.base = utils.Clamp(v, 0, 1)
		layer.volume = layer.base
		layer.fade = nil
		return nil
	})
}

// GetLayerVolume returns the layer volume, including the current value
// of an in-flight fade as of the last mixer tick.
func (m *Manager) GetLayerVolume(h TrackHandle, name string) (float32, error) {
	var v float32
	err := m.withLayer(h, name, func(layer *trackLayer) error {
		v = layer.volume
		return nil
	})
	return v, err
}

// FadeLayer ramps the layer volume to target over duration. Layer fades
// require a strictly positive duration; use SetLayerVolume for an
// immediate jump. A new fade replaces any active fade on the layer.
func (m *Manager) FadeLayer(h TrackHandle, name string, target float32, duration time.Duration) error {
	return m.withLayer(h, name, func(layer *trackLayer) error {
		if duration <= 0 {
			return ErrInvalidArgument
		}
		target = utils.Clamp(target, 0, 1)
		layer.base = target
		layer.fade = newFade(layer.volume, target, m.now(), duration)
		return nil
	})
}

// PlayTrack starts every layer from the beginning simultaneously, each
// at its configured volume. Pending fades are dropped.
func (m *Manager) PlayTrack(h TrackHandle) error {
	return m.withTrack(h, func(tr *audioTrack) error {
		for _, layer := range tr.layers {
			layer.volume = layer.base
			layer.fade = nil
			m.startLayer(layer)
		}
		tr.playing = true
		tr.stopping = false
		return nil
	})
}

// StopTrack stops every layer and resets layer volumes to their
// configured values. The track can be replayed.
func (m *Manager) StopTrack(h TrackHandle) error {
	return m.withTrack(h, func(tr *audioTrack) error {
		for _, layer := range tr.layers {
			layer.voice.Stop()
			layer.volume = layer.base
			layer.fade = nil
		}
		tr.playing = false
		tr.stopping = false
		return nil
	})
}

// crossfadeTracks fades every layer of out to silence while restarting
// in from its beginning and ramping its layers up to their configured
// volumes. The outgoing track stops once its fade completes. Fading a
// track into itself just restarts it with a fade-in.
func (m *Manager) crossfadeTracks(out, in TrackHandle, duration time.Duration) error {
	if duration <= 0 {
		return ErrInvalidArgument
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	inTr := m.tracks.get(in.h)
	if inTr == nil {
		return ErrInvalidHandle
	}

	now := m.now()

	if outTr := m.tracks.get(out.h); outTr != nil && outTr != inTr && outTr.playing {
		for _, layer := range outTr.layers {
			layer.fade = newFade(layer.volume, 0, now, duration)
		}
		outTr.stopping = true
	}

	for _, layer := range inTr.layers {
		layer.volume = 0
		layer.fade = newFade(0, layer.base, now, duration)
		m.startLayer(layer)
	}
	inTr.playing = true
	inTr.stopping = false
	return nil
}

// startLayer pushes the layer's current gain and starts its voice from
// the beginning, keeping layers in lockstep. Caller holds m.mtx.
func (m *Manager) startLayer(layer *trackLayer) {
	gain := m.masterVolume * m.groupGain(layer.group) * layer.volume
	layer.voice.Stop()
	layer.voice.SetVolume(gain)
	layer.lastGain = gain
	layer.voice.Start()
}

// withTrack runs fn on the resolved track under the engine lock.
func (m *Manager) withTrack(h TrackHandle, fn func(*audioTrack) error) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	tr := m.tracks.get(h.h)
	if tr == nil {
		return ErrInvalidHandle
	}
	return fn(tr)
}

// withLayer runs fn on the resolved layer under the engine lock. An
// unknown layer name is ErrInvalidArgument.
func (m *Manager) withLayer(h TrackHandle, name string, fn func(*trackLayer) error) error {
	return m.withTrack(h, func(tr *audioTrack) error {
		layer, ok := tr.layers[name]
		if !ok {
			return ErrInvalidArgument
		}
		return fn(layer)
	})
}

// stepTracks advances layer fades, pushes changed gains, and finishes
// fade-outs started by crossfadeTracks. Caller holds m.mtx.
func (m *Manager) stepTracks(now time.Time) {
	m.tracks.each(func(_ handle, tr *audioTrack) {
		fading := false
		for _, layer := range tr.layers {
			if layer.fade != nil {
				v, done := layer.fade.at(now)
				layer.volume = v
				if done {
					layer.fade = nil
				} else {
					fading = true
				}
			}
			if !tr.playing {
				continue
			}
			gain := m.masterVolume * m.groupGain(layer.group) * layer.volume
			if diff := gain - layer.lastGain; diff > gainEpsilon || diff < -gainEpsilon {
				layer.voice.SetVolume(gain)
				layer.lastGain = gain
			}
		}

		if tr.stopping && !fading {
			for _, layer := range tr.layers {
				layer.voice.Stop()
				layer.volume = layer.base
			}
			tr.playing = false
			tr.stopping = false
		}
	})
}
