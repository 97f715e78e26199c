// SPDX-License-Identifier: EPL-2.0

package gameaudio

import (
	"time"

	"github.com/hannaharmon/game-audio/utils"
)

// fadeState is a linear volume ramp. Starting a new fade on a resource
// replaces any active one (last writer wins); setting the volume
// directly cancels it.
type fadeState struct {
	start     float32
	target    float32
	startTime time.Time
	duration  time.Duration
}

func newFade(from, to float32, now time.Time, d time.Duration) *fadeState {
	return &fadeState{
		start:     from,
		target:    to,
		startTime: now,
		duration:  d,
	}
}

// at returns the interpolated volume at time now. done is true once the
// fade has reached its target; the value snaps to the target exactly at
// that point.
func (f *fadeState) at(now time.Time) (v float32, done bool) {
	elapsed := now.Sub(f.startTime)
	if elapsed >= f.duration {
		return f.target, true
	}
	t := float32(elapsed.Seconds() / f.duration.Seconds())
	return utils.Lerp(f.start, f.target, t), false
}
