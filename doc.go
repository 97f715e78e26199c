// SPDX-License-Identifier: EPL-2.0

// Package gameaudio is a real-time audio engine for games: loaded
// sounds and layered music tracks addressed through generational
// handles, mixed through volume groups, positioned in 3D relative to a
// listener, and faded smoothly by a background mixer tick.
//
// # Quick Start
//
// Initialize the engine, load a sound, play it:
//
//	m := gameaudio.Default()
//	if err := m.Initialize(); err != nil {
//		log.Fatal(err)
//	}
//	defer m.Shutdown()
//
//	shot, err := m.LoadSound("assets/shot.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//	m.PlaySound(shot)
//
// Or tie the lifecycle to a value with a session:
//
//	session, err := gameaudio.NewSession(nil, gameaudio.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer session.Close()
//
// # Handles
//
// Sounds, groups and tracks are addressed by opaque generational
// handles. A handle is bound to the resource it was issued for: after
// the resource is destroyed, or after the engine is shut down, the
// handle is permanently invalid and every operation on it returns
// ErrInvalidHandle. Handles never alias a later resource that happens
// to reuse the same slot.
//
// # Groups and Volumes
//
// Every sound and track layer belongs to one mixing group; the master
// group holds everything not placed elsewhere. A playing instance's
// final gain is the product of the master volume, its group volume,
// its own volume, and its spatial attenuation. Volume changes and
// fades are picked up by the mixer tick, which runs every 16ms by
// default.
//
//	music, _ := m.CreateGroup("music")
//	m.SetGroupVolume(music, 0.8)
//	m.FadeGroup(music, 0, 2*time.Second)
//
// # Overlapping Instances
//
// PlaySound restarts a sound's primary instance. PlaySoundAt spawns an
// additional independent instance at a position, so one loaded file can
// ring out several times at once:
//
//	m.PlaySoundAt(shot, spatial.Vec3{X: 4})
//	m.PlaySoundAt(shot, spatial.Vec3{X: -4})
//
// Overlap instances snapshot the sound's parameters when spawned and
// are reaped automatically when they finish.
//
// # Layered Tracks
//
// A track is a set of named looping layers that start and stop
// together. Fading layers against each other is the usual way to shift
// musical intensity without restarting the arrangement:
//
//	t, _ := m.CreateTrack()
//	m.AddLayer(t, "base", "music/base.ogg", music)
//	m.AddLayer(t, "combat", "music/combat.ogg", music)
//	m.SetLayerVolume(t, "combat", 0)
//	m.PlayTrack(t)
//	// later, battle starts
//	m.FadeLayer(t, "combat", 1, 3*time.Second)
//
// MusicPlayer sits on top of tracks for the coarser move between whole
// pieces of music: register tracks under names and crossfade between
// them, with the incoming track restarting from its beginning:
//
//	mp := gameaudio.NewMusicPlayer(m)
//	mp.AddTrack("explore", exploreTrack)
//	mp.AddTrack("combat", combatTrack)
//	mp.Play("explore")
//	// later, battle starts
//	mp.FadeTo("combat", 2*time.Second)
//
// # Spatial Audio
//
// Sounds with spatialization enabled attenuate with distance from the
// listener between their min and max distance, shaped by a rolloff
// exponent. See the spatial package for the attenuation model.
//
// # Backends
//
// Playback goes through the backend package: backend.Oto renders to
// the system device, backend.Null simulates playback for tests and
// headless servers. Config.Backend selects one; the default is the
// device.
//
// # Errors
//
// All errors wrap ErrAudio. Match broadly with errors.Is(err,
// gameaudio.ErrAudio) or narrowly with the specific sentinels
// (ErrNotInitialized, ErrInvalidHandle, ErrFileLoad,
// ErrInvalidArgument).
package gameaudio
