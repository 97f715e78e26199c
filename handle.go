// SPDX-License-Identifier: EPL-2.0

package gameaudio

// handle identifies an arena slot. Generations start at 1 so the zero
// handle never resolves.
type handle struct {
	index      uint32
	generation uint32
}

// GroupHandle refers to a mixing group.
type GroupHandle struct{ h handle }

// IsValid reports whether the handle was ever issued. It does not check
// whether the group still exists; operations on a destroyed group
// return ErrInvalidHandle.
func (g GroupHandle) IsValid() bool { return g.h.generation != 0 }

// SoundHandle refers to a loaded sound resource.
type SoundHandle struct{ h handle }

// IsValid reports whether the handle was ever issued.
func (s SoundHandle) IsValid() bool { return s.h.generation != 0 }

// TrackHandle refers to a layered track.
type TrackHandle struct{ h handle }

// IsValid reports whether the handle was ever issued.
func (t TrackHandle) IsValid() bool { return t.h.generation != 0 }

type arenaSlot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// arena is a generational slot allocator. Freed slots are reused with a
// bumped generation, so a stale handle can never resolve to a resource
// that reused its index.
type arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
}

// allocate stores v in a slot and returns its handle.
func (a *arena[T]) allocate(v T) handle {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.live = true
		return handle{index: idx, generation: s.generation}
	}

	a.slots = append(a.slots, arenaSlot[T]{value: v, generation: 1, live: true})
	return handle{index: uint32(len(a.slots) - 1), generation: 1}
}

// get resolves h to its slot value. A stale, freed, or out-of-range
// handle resolves to nil.
func (a *arena[T]) get(h handle) *T {
	if int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil
	}
	return &s.value
}

// release frees the slot behind h and bumps its generation. Releasing a
// stale handle is a no-op returning false.
func (a *arena[T]) release(h handle) bool {
	if a.get(h) == nil {
		return false
	}
	s := &a.slots[h.index]
	var zero T
	s.value = zero
	s.live = false
	s.generation++
	a.free = append(a.free, h.index)
	return true
}

// each calls fn for every live slot.
func (a *arena[T]) each(fn func(handle, *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			fn(handle{index: uint32(i), generation: s.generation}, &s.value)
		}
	}
}

// count returns the number of live slots.
func (a *arena[T]) count() int {
	return len(a.slots) - len(a.free)
}

// reset frees every live slot. Generation counters survive the reset so
// handles issued before it stay invalid even after their indexes are
// reused by a later session.
func (a *arena[T]) reset() {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.live {
			continue
		}
		var zero T
		s.value = zero
		s.live = false
		s.generation++
		a.free = append(a.free, uint32(i))
	}
}
