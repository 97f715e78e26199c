// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"os"
	"sync"

	"github.com/hannaharmon/game-audio/backend"
	"github.com/hannaharmon/game-audio/spatial"
)

// MockBackend records every voice it opens so tests can inspect playback
// state without a real audio device.
//
// Open stats the file so missing-file paths fail the same way a real
// backend does. Set SkipStat to open voices for paths that do not exist.
type MockBackend struct {
	mtx      sync.Mutex
	voices   []*MockVoice
	closed   bool
	SkipStat bool

	// OpenErr, when set, is returned by every Open call.
	OpenErr error
}

// NewMockBackend returns an empty mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

var _ backend.Backend = (*MockBackend)(nil)

func (b *MockBackend) Open(path string) (backend.Voice, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.OpenErr != nil {
		return nil, b.OpenErr
	}
	if !b.SkipStat {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
	}

	v := &MockVoice{Path: path, volume: 1, pitch: 1}
	b.voices = append(b.voices, v)
	return v, nil
}

func (b *MockBackend) Close() error {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (b *MockBackend) Closed() bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.closed
}

// Voices returns every voice opened so far, in open order.
func (b *MockBackend) Voices() []*MockVoice {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return append([]*MockVoice(nil), b.voices...)
}

// OpenCount returns the number of voices opened so far.
func (b *MockBackend) OpenCount() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return len(b.voices)
}

// MockVoice records the calls made against it. Tests drive Finished by
// calling Finish.
type MockVoice struct {
	Path string

	mtx      sync.Mutex
	playing  bool
	finished bool
	closed   bool
	volume   float32
	pitch    float32
	looping  bool
	position spatial.Vec3

	starts int
	stops  int
}

func (v *MockVoice) Start() {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.playing = true
	v.finished = false
	v.starts++
}

func (v *MockVoice) Stop() {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.playing = false
	v.stops++
}

func (v *MockVoice) SetVolume(vol float32) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.volume = vol
}

func (v *MockVoice) SetPitch(p float32) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.pitch = p
}

func (v *MockVoice) SetLooping(loop bool) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.looping = loop
}

func (v *MockVoice) SetPosition(pos spatial.Vec3) {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.position = pos
}

func (v *MockVoice) Finished() bool {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	if v.looping {
		return false
	}
	return v.finished
}

func (v *MockVoice) Close() error {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.closed = true
	v.playing = false
	return nil
}

// Finish marks the voice as having played to its end.
func (v *MockVoice) Finish() {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	v.playing = false
	v.finished = true
}

// Playing reports whether the voice is between Start and Stop.
func (v *MockVoice) Playing() bool {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.playing
}

// Closed reports whether Close has been called.
func (v *MockVoice) Closed() bool {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.closed
}

// Volume returns the last value passed to SetVolume.
func (v *MockVoice) Volume() float32 {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.volume
}

// Pitch returns the last value passed to SetPitch.
func (v *MockVoice) Pitch() float32 {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.pitch
}

// Looping returns the last value passed to SetLooping.
func (v *MockVoice) Looping() bool {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.looping
}

// Position returns the last value passed to SetPosition.
func (v *MockVoice) Position() spatial.Vec3 {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.position
}

// Starts returns the number of Start calls.
func (v *MockVoice) Starts() int {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.starts
}

// Stops returns the number of Stop calls.
func (v *MockVoice) Stops() int {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.stops
}
