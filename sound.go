// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"fmt"
	"time"

	"github.com/hannaharmon/game-audio/backend"
	"github.com/hannaharmon/game-audio/spatial"
	"github.com/hannaharmon/game-audio/utils"
)

// gainEpsilon is the smallest gain change worth pushing to a voice.
const gainEpsilon = 1e-4

// soundResource is one loaded sound. The primary voice restarts in
// place on every PlaySound; PlaySoundAt spawns overlap instances that
// play out independently with parameters snapshotted at spawn time.
type soundResource struct {
	path     string
	group    GroupHandle
	volume   float32
	pitch    float32
	looping  bool
	position spatial.Vec3
	params   spatial.Params
	fade     *fadeState

	voice       backend.Voice
	playing     bool
	primaryGain float32

	overlaps []*overlapInstance
}

// overlapInstance is a fire-and-forget copy of the resource's playback
// parameters. Group and master volume stay live; everything else is
// fixed at spawn.
type overlapInstance struct {
	voice    backend.Voice
	position spatial.Vec3
	volume   float32
	pitch    float32
	params   spatial.Params
	lastGain float32
}

// release stops and closes every voice the resource owns.
func (res *soundResource) release() {
	if res.voice != nil {
		res.voice.Stop()
		res.voice.Close()
	}
	for _, o := range res.overlaps {
		o.voice.Stop()
		o.voice.Close()
	}
	res.overlaps = nil
	res.playing = false
}

// LoadSound decodes the file at path into a stopped sound in the master
// group. The file is opened and decoded eagerly so load failures
// surface here rather than at play time.
func (m *Manager) LoadSound(path string) (SoundHandle, error) {
	return m.LoadSoundInGroup(path, GroupHandle{})
}

// LoadSoundInGroup decodes the file at path into a stopped sound in the
// given group. The zero group handle selects the master group. Decoding
// happens outside the engine lock.
func (m *Manager) LoadSoundInGroup(path string, group GroupHandle) (SoundHandle, error) {
	m.mtx.Lock()
	if !m.initialized {
		m.mtx.Unlock()
		return SoundHandle{}, ErrNotInitialized
	}
	be := m.backend
	m.mtx.Unlock()

	voice, err := be.Open(path)
	if err != nil {
		return SoundHandle{}, fmt.Errorf("%w: %q: %w", ErrFileLoad, path, err)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		voice.Close()
		return SoundHandle{}, ErrNotInitialized
	}

	g := m.master
	if group.IsValid() {
		if m.groups.get(group.h) == nil {
			voice.Close()
			return SoundHandle{}, ErrInvalidHandle
		}
		g = group
	}

	h := SoundHandle{h: m.sounds.allocate(soundResource{
		path:        path,
		group:       g,
		volume:      1,
		pitch:       1,
		params:      spatial.DefaultParams(),
		voice:       voice,
		primaryGain: -1,
	})}

	logger.Debug("sound loaded", "path", path)
	return h, nil
}

// DestroySound stops and releases every instance of the sound. The
// handle is invalid afterwards.
func (m *Manager) DestroySound(h SoundHandle) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	res := m.sounds.get(h.h)
	if res == nil {
		return ErrInvalidHandle
	}

	res.release()
	m.sounds.release(h.h)
	return nil
}

// PlaySound starts, or restarts from the beginning, the sound's primary
// instance at its stored position.
func (m *Manager) PlaySound(h SoundHandle) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	res := m.sounds.get(h.h)
	if res == nil {
		return ErrInvalidHandle
	}

	gain := m.masterVolume * m.groupGain(res.group) * res.volume *
		res.params.GainAt(res.position, m.listener.position)

	// Stop rewinds, so a replay starts from the beginning.
	res.voice.Stop()
	res.voice.SetLooping(res.looping)
	res.voice.SetPitch(res.pitch)
	res.voice.SetPosition(res.position)
	res.voice.SetVolume(gain)
	res.primaryGain = gain
	res.voice.Start()
	res.playing = true
	return nil
}

// PlaySoundAt starts a new independent instance of the sound at the
// given position, leaving the primary and any other overlap instances
// untouched. Volume, pitch, looping and attenuation parameters are
// snapshotted from the resource at call time; only group and master
// volume stay live. The instance is reaped automatically when it
// finishes.
func (m *Manager) PlaySoundAt(h SoundHandle, pos spatial.Vec3) error {
	m.mtx.Lock()
	if !m.initialized {
		m.mtx.Unlock()
		return ErrNotInitialized
	}
	res := m.sounds.get(h.h)
	if res == nil {
		m.mtx.Unlock()
		return ErrInvalidHandle
	}
	be := m.backend
	path := res.path
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
	res = m.sounds.get(h.h)
	if res == nil {
		voice.Close()
		return ErrInvalidHandle
	}

	inst := &overlapInstance{
		voice:    voice,
		position: pos,
		volume:   res.volume,
		pitch:    res.pitch,
		params:   res.params,
	}
	inst.lastGain = m.masterVolume * m.groupGain(res.group) * inst.volume *
		inst.params.GainAt(inst.position, m.listener.position)

	voice.SetLooping(res.looping)
	voice.SetPitch(inst.pitch)
	voice.SetPosition(inst.position)
	voice.SetVolume(inst.lastGain)
	voice.Start()

	res.overlaps = append(res.overlaps, inst)
	return nil
}

// StopSound stops every instance of the sound. Overlap instances are
// released; the primary instance stays loaded for a later PlaySound.
func (m *Manager) StopSound(h SoundHandle) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	res := m.sounds.get(h.h)
	if res == nil {
		return ErrInvalidHandle
	}

	res.voice.Stop()
	res.playing = false
	for _, o := range res.overlaps {
		o.voice.Stop()
		o.voice.Close()
	}
	res.overlaps = res.overlaps[:0]
	return nil
}

// IsSoundPlaying reports whether any instance of the sound is audible
// right now, including overlap instances not yet reaped.
func (m *Manager) IsSoundPlaying(h SoundHandle) (bool, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return false, ErrNotInitialized
	}
	res := m.sounds.get(h.h)
	if res == nil {
		return false, ErrInvalidHandle
	}

	if res.playing && !res.voice.Finished() {
		return true, nil
	}
	for _, o := range res.overlaps {
		if !o.voice.Finished() {
			return true, nil
		}
	}
	return false, nil
}

// SetSoundVolume sets the resource volume, clamped to [0, 1], canceling
// any active fade. Overlap instances already playing keep their
// snapshot.
func (m *Manager) SetSoundVolume(h SoundHandle, v float32) error {
	return m.withSound(h, func(res *soundResource) error {
		res.volume = utils.Clamp(v, 0, 1)
		res.fade = nil
		return nil
	})
}

// GetSoundVolume returns the resource volume, including the current
// value of an in-flight fade as of the last mixer tick.
func (m *Manager) GetSoundVolume(h SoundHandle) (float32, error) {
	var v float32
	err := m.withSound(h, func(res *soundResource) error {
		v = res.volume
		return nil
	})
	return v, err
}

// SetSoundPitch sets the playback pitch, clamped to [0.1, 10]. The
// primary instance picks it up immediately.
func (m *Manager) SetSoundPitch(h SoundHandle, p float32) error {
	return m.withSound(h, func(res *soundResource) error {
		res.pitch = utils.Clamp(p, 0.1, 10)
		res.voice.SetPitch(res.pitch)
		return nil
	})
}

// GetSoundPitch returns the playback pitch.
func (m *Manager) GetSoundPitch(h SoundHandle) (float32, error) {
	var p float32
	err := m.withSound(h, func(res *soundResource) error {
		p = res.pitch
		return nil
	})
	return p, err
}

// SetSoundLooping sets whether the primary instance loops.
func (m *Manager) SetSoundLooping(h SoundHandle, loop bool) error {
	return m.withSound(h, func(res *soundResource) error {
		res.looping = loop
		res.voice.SetLooping(loop)
		return nil
	})
}

// GetSoundLooping reports whether the sound loops.
func (m *Manager) GetSoundLooping(h SoundHandle) (bool, error) {
	var loop bool
	err := m.withSound(h, func(res *soundResource) error {
		loop = res.looping
		return nil
	})
	return loop, err
}

// SetSoundPosition moves the sound. The primary instance tracks the
// position live; overlap instances keep the position they were spawned
// at.
func (m *Manager) SetSoundPosition(h SoundHandle, pos spatial.Vec3) error {
	return m.withSound(h, func(res *soundResource) error {
		res.position = pos
		res.voice.SetPosition(pos)
		return nil
	})
}

// GetSoundPosition returns the sound's stored position.
func (m *Manager) GetSoundPosition(h SoundHandle) (spatial.Vec3, error) {
	var pos spatial.Vec3
	err := m.withSound(h, func(res *soundResource) error {
		pos = res.position
		return nil
	})
	return pos, err
}

// SetSoundMinDistance sets the no-attenuation radius.
func (m *Manager) SetSoundMinDistance(h SoundHandle, d float32) error {
	return m.withSound(h, func(res *soundResource) error {
		p := res.params
		p.MinDistance = d
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		res.params = p
		return nil
	})
}

// GetSoundMinDistance returns the no-attenuation radius.
func (m *Manager) GetSoundMinDistance(h SoundHandle) (float32, error) {
	var d float32
	err := m.withSound(h, func(res *soundResource) error {
		d = res.params.MinDistance
		return nil
	})
	return d, err
}

// SetSoundMaxDistance sets the silence radius.
func (m *Manager) SetSoundMaxDistance(h SoundHandle, d float32) error {
	return m.withSound(h, func(res *soundResource) error {
		p := res.params
		p.MaxDistance = d
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		res.params = p
		return nil
	})
}

// GetSoundMaxDistance returns the silence radius.
func (m *Manager) GetSoundMaxDistance(h SoundHandle) (float32, error) {
	var d float32
	err := m.withSound(h, func(res *soundResource) error {
		d = res.params.MaxDistance
		return nil
	})
	return d, err
}

// SetSoundRolloff sets the attenuation curve exponent.
func (m *Manager) SetSoundRolloff(h SoundHandle, rolloff float32) error {
	return m.withSound(h, func(res *soundResource) error {
		p := res.params
		p.Rolloff = rolloff
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		res.params = p
		return nil
	})
}

// GetSoundRolloff returns the attenuation curve exponent.
func (m *Manager) GetSoundRolloff(h SoundHandle) (float32, error) {
	var r float32
	err := m.withSound(h, func(res *soundResource) error {
		r = res.params.Rolloff
		return nil
	})
	return r, err
}

// SetSoundSpatialization enables or disables distance attenuation.
// Disabled sounds play at full gain regardless of position.
func (m *Manager) SetSoundSpatialization(h SoundHandle, enabled bool) error {
	return m.withSound(h, func(res *soundResource) error {
		res.params.Enabled = enabled
		return nil
	})
}

// GetSoundSpatialization reports whether distance attenuation applies.
func (m *Manager) GetSoundSpatialization(h SoundHandle) (bool, error) {
	var enabled bool
	err := m.withSound(h, func(res *soundResource) error {
		enabled = res.params.Enabled
		return nil
	})
	return enabled, err
}

// FadeSound ramps the resource volume to target over duration. A zero
// duration jumps immediately; a negative one is an error.
func (m *Manager) FadeSound(h SoundHandle, target float32, duration time.Duration) error {
	return m.withSound(h, func(res *soundResource) error {
		if duration < 0 {
			return ErrInvalidArgument
		}
		target = utils.Clamp(target, 0, 1)
		if duration == 0 {
			res.volume = target
			res.fade = nil
			return nil
		}
		res.fade = newFade(res.volume, target, m.now(), duration)
		return nil
	})
}

// withSound runs fn on the resolved resource under the engine lock.
func (m *Manager) withSound(h SoundHandle, fn func(*soundResource) error) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	res := m.sounds.get(h.h)
	if res == nil {
		return ErrInvalidHandle
	}
	return fn(res)
}

// stepSounds advances sound fades, pushes changed gains, and reaps
// finished overlap instances. Caller holds m.mtx. The pass is
// allocation-free: the overlap slice is filtered in place.
func (m *Manager) stepSounds(now time.Time) {
	m.sounds.each(func(_ handle, res *soundResource) {
		if res.fade != nil {
			v, done := res.fade.at(now)
			res.volume = v
			if done {
				res.fade = nil
			}
		}

		groupGain := m.groupGain(res.group)

		if res.playing {
			if res.voice.Finished() {
				res.playing = false
			} else {
				gain := m.masterVolume * groupGain * res.volume *
					res.params.GainAt(res.position, m.listener.position)
				if diff := gain - res.primaryGain; diff > gainEpsilon || diff < -gainEpsilon {
					res.voice.SetVolume(gain)
					res.primaryGain = gain
				}
			}
		}

		kept := res.overlaps[:0]
		for _, o := range res.overlaps {
			if o.voice.Finished() {
				o.voice.Close()
				continue
			}
			gain := m.masterVolume * groupGain * o.volume *
				o.params.GainAt(o.position, m.listener.position)
			if diff := gain - o.lastGain; diff > gainEpsilon || diff < -gainEpsilon {
				o.voice.SetVolume(gain)
				o.lastGain = gain
			}
			kept = append(kept, o)
		}
		res.overlaps = kept
	})
}
