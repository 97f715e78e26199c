// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"errors"
	"math"
	"testing"
	"time"
)

// newMusicTrack builds a one-layer track backed by a stub file.
func newMusicTrack(t *testing.T, m *Manager, dir, file string) TrackHandle {
	t.Helper()

	tr, err := m.CreateTrack()
	if err != nil {
		t.Fatalf("CreateTrack() error = %v", err)
	}
	path := stubFile(t, dir, file)
	if err := m.AddLayer(tr, "main", path, GroupHandle{}); err != nil {
		t.Fatalf("AddLayer() error = %v", err)
	}
	return tr
}

func TestMusicPlayer_AddTrackValidation(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestEngine(t)
	mp := NewMusicPlayer(m)

	tr := newMusicTrack(t, m, t.TempDir(), "calm.wav")

	if err := mp.AddTrack("", tr); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddTrack(\"\") error = %v, want ErrInvalidArgument", err)
	}
	if err := mp.AddTrack("calm", TrackHandle{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("AddTrack(zero handle) error = %v, want ErrInvalidArgument", err)
	}
	if err := mp.AddTrack("calm", tr); err != nil {
		t.Errorf("AddTrack() error = %v", err)
	}
}

func TestMusicPlayer_PlayUnknown(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestEngine(t)
	mp := NewMusicPlayer(m)

	if err := mp.Play("nope"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Play(unknown) error = %v, want ErrInvalidArgument", err)
	}
	if err := mp.FadeTo("nope", time.Second); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FadeTo(unknown) error = %v, want ErrInvalidArgument", err)
	}
}

func TestMusicPlayer_PlaySwitchesTracks(t *testing.T) {
	t.Parallel()

	m, be, _ := newTestEngine(t)
	mp := NewMusicPlayer(m)

	dir := t.TempDir()
	calm := newMusicTrack(t, m, dir, "calm.wav")
	combat := newMusicTrack(t, m, dir, "combat.wav")
	mp.AddTrack("calm", calm)
	mp.AddTrack("combat", combat)

	if err := mp.Play("calm"); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	voices := be.Voices()
	if !voices[0].Playing() {
		t.Fatal("calm layer should be playing")
	}
	if got := mp.Current(); got != "calm" {
		t.Errorf("Current() = %q, want \"calm\"", got)
	}

	if err := mp.Play("combat"); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if voices[0].Playing() {
		t.Error("calm layer should have stopped on switch")
	}
	if !voices[1].Playing() {
		t.Error("combat layer should be playing")
	}
	if got := mp.Current(); got != "combat" {
		t.Errorf("Current() = %q, want \"combat\"", got)
	}
}

func TestMusicPlayer_PlayRestartsCurrent(t *testing.T) {
	t.Parallel()

	m, be, _ := newTestEngine(t)
	mp := NewMusicPlayer(m)

	calm := newMusicTrack(t, m, t.TempDir(), "calm.wav")
	mp.AddTrack("calm", calm)

	mp.Play("calm")
	mp.Play("calm")

	if got := be.Voices()[0].Starts(); got != 2 {
		t.Errorf("layer voice Starts() = %d, want 2", got)
	}
}

func TestMusicPlayer_FadeToDurationPolicy(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestEngine(t)
	mp := NewMusicPlayer(m)

	calm := newMusicTrack(t, m, t.TempDir(), "calm.wav")
	mp.AddTrack("calm", calm)

	if err := mp.FadeTo("calm", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FadeTo(0) error = %v, want ErrInvalidArgument", err)
	}
	if err := mp.FadeTo("calm", -time.Second); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FadeTo(-1s) error = %v, want ErrInvalidArgument", err)
	}
}

func TestMusicPlayer_FadeToCrossfades(t *testing.T) {
	t.Parallel()

	m, be, clk := newTestEngine(t)
	mp := NewMusicPlayer(m)

	dir := t.TempDir()
	calm := newMusicTrack(t, m, dir, "calm.wav")
	combat := newMusicTrack(t, m, dir, "combat.wav")
	mp.AddTrack("calm", calm)
	mp.AddTrack("combat", combat)

	if err := mp.Play("calm"); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := mp.FadeTo("combat", 2*time.Second); err != nil {
		t.Fatalf("FadeTo() error = %v", err)
	}

	voices := be.Voices()
	out, in := voices[0], voices[1]

	// The incoming track starts silent and audible only through the fade
	if !in.Playing() {
		t.Fatal("incoming layer should start at the transition")
	}
	if got := in.Volume(); got != 0 {
		t.Errorf("incoming layer volume at transition = %v, want 0", got)
	}

	clk.Advance(time.Second)
	tick(m)

	if got := out.Volume(); math.Abs(float64(got-0.5)) > 1e-6 {
		t.Errorf("outgoing layer volume at midpoint = %v, want 0.5", got)
	}
	if got := in.Volume(); math.Abs(float64(got-0.5)) > 1e-6 {
		t.Errorf("incoming layer volume at midpoint = %v, want 0.5", got)
	}

	clk.Advance(time.Second)
	tick(m)

	if out.Playing() {
		t.Error("outgoing track should stop when its fade completes")
	}
	if got := in.Volume(); got != 1 {
		t.Errorf("incoming layer volume after fade = %v, want 1", got)
	}
	// The outgoing track keeps its configured volume for the next time
	if got, err := m.GetLayerVolume(calm, "main"); err != nil || got != 1 {
		t.Errorf("GetLayerVolume(calm) = %v, %v, want 1, nil", got, err)
	}
	if got := mp.Current(); got != "combat" {
		t.Errorf("Current() = %q, want \"combat\"", got)
	}
}

func TestMusicPlayer_FadeToRestartsTarget(t *testing.T) {
	t.Parallel()

	m, be, clk := newTestEngine(t)
	mp := NewMusicPlayer(m)

	dir := t.TempDir()
	calm := newMusicTrack(t, m, dir, "calm.wav")
	combat := newMusicTrack(t, m, dir, "combat.wav")
	mp.AddTrack("calm", calm)
	mp.AddTrack("combat", combat)

	mp.Play("calm")
	if err := mp.FadeTo("combat", time.Second); err != nil {
		t.Fatalf("FadeTo() error = %v", err)
	}
	clk.Advance(2 * time.Second)
	tick(m)

	// Coming back restarts the track from its beginning, fading in
	if err := mp.FadeTo("calm", time.Second); err != nil {
		t.Fatalf("FadeTo() error = %v", err)
	}

	voice := be.Voices()[0]
	if got := voice.Starts(); got != 2 {
		t.Errorf("calm layer Starts() = %d, want 2", got)
	}
	if got := voice.Volume(); got != 0 {
		t.Errorf("calm layer volume at transition = %v, want 0", got)
	}
}

func TestMusicPlayer_FadeToSameTrackNoop(t *testing.T) {
	t.Parallel()

	m, be, _ := newTestEngine(t)
	mp := NewMusicPlayer(m)

	calm := newMusicTrack(t, m, t.TempDir(), "calm.wav")
	mp.AddTrack("calm", calm)

	mp.Play("calm")
	if err := mp.FadeTo("calm", time.Second); err != nil {
		t.Fatalf("FadeTo(current) error = %v", err)
	}

	voice := be.Voices()[0]
	if got := voice.Starts(); got != 1 {
		t.Errorf("layer voice Starts() = %d, want 1", got)
	}
	if got := voice.Volume(); got != 1 {
		t.Errorf("layer volume = %v, want 1", got)
	}
}

func TestMusicPlayer_FadeFromSilence(t *testing.T) {
	t.Parallel()

	m, be, clk := newTestEngine(t)
	mp := NewMusicPlayer(m)

	calm := newMusicTrack(t, m, t.TempDir(), "calm.wav")
	mp.AddTrack("calm", calm)

	if err := mp.FadeTo("calm", time.Second); err != nil {
		t.Fatalf("FadeTo() error = %v", err)
	}

	voice := be.Voices()[0]
	if !voice.Playing() {
		t.Fatal("layer should be playing")
	}
	if got := voice.Volume(); got != 0 {
		t.Errorf("layer volume at transition = %v, want 0", got)
	}

	clk.Advance(time.Second)
	tick(m)

	if got := voice.Volume(); got != 1 {
		t.Errorf("layer volume after fade = %v, want 1", got)
	}
}

func TestMusicPlayer_StopAndCurrent(t *testing.T) {
	t.Parallel()

	m, be, _ := newTestEngine(t)
	mp := NewMusicPlayer(m)

	calm := newMusicTrack(t, m, t.TempDir(), "calm.wav")
	mp.AddTrack("calm", calm)

	if got := mp.Current(); got != "" {
		t.Errorf("Current() before playing = %q, want \"\"", got)
	}

	mp.Play("calm")
	if err := mp.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if be.Voices()[0].Playing() {
		t.Error("layer should have stopped")
	}
	if got := mp.Current(); got != "" {
		t.Errorf("Current() after Stop = %q, want \"\"", got)
	}
	if err := mp.Stop(); err != nil {
		t.Errorf("Stop() when stopped error = %v", err)
	}
}
