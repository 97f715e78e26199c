// SPDX-License-Identifier: EPL-2.0

package backend

import (
	"sync"
	"time"

	"github.com/hannaharmon/game-audio/spatial"
)

// Null is a headless backend for servers, CI and tests. Files are
// decoded for real, so format errors surface exactly as with a device
// backend, but playback is simulated against the clock.
type Null struct {
	now func() time.Time
}

// NewNull returns a headless backend.
func NewNull() *Null {
	return &Null{now: time.Now}
}

// NewNullWithClock returns a headless backend that reads time from now,
// for deterministic tests.
func NewNullWithClock(now func() time.Time) *Null {
	return &Null{now: now}
}

func (b *Null) Open(path string) (Voice, error) {
	clip, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	return &nullVoice{
		now:      b.now,
		duration: clip.Duration(),
		pitch:    1,
	}, nil
}

func (b *Null) Close() error { return nil }

// nullVoice simulates playback: it is playing from Start until its
// scaled duration elapses, unless looping or stopped.
type nullVoice struct {
	now      func() time.Time
	duration time.Duration

	mtx       sync.Mutex
	playing   bool
	startedAt time.Time
	pitch     float32
	loop      bool
	volume    float32
	pos       spatial.Vec3
	closed    bool
}

func (v *nullVoice) Start() {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if v.closed || v.playing {
		return
	}
	v.playing = true
	v.startedAt = v.now()
}

func (v *nullVoice) Stop() {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	v.playing = false
}

func (v *nullVoice) SetVolume(vol float32) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.volume = vol
}

func (v *nullVoice) SetPitch(p float32) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	if p > 0 {
		v.pitch = p
	}
}

func (v *nullVoice) SetLooping(loop bool) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.loop = loop
}

func (v *nullVoice) SetPosition(pos spatial.Vec3) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.pos = pos
}

func (v *nullVoice) Finished() bool {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if v.closed {
		return true
	}
	if !v.playing || v.loop {
		return false
	}

	// Higher pitch plays the same frames in less time.
	scaled := time.Duration(float64(v.duration) / float64(v.pitch))
	return v.now().Sub(v.startedAt) >= scaled
}

func (v *nullVoice) Close() error {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	v.closed = true
	v.playing = false
	return nil
}
