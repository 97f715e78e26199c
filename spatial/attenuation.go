// SPDX-License-Identifier: EPL-2.0

package spatial

import (
	"errors"
	"math"
)

var (
	ErrNegativeMinDistance = errors.New("min distance must be >= 0")
	ErrDistanceOrder       = errors.New("max distance must be greater than min distance")
	ErrNegativeRolloff     = errors.New("rolloff must be >= 0")
)

// Params describes how a sound attenuates with distance from the listener.
type Params struct {
	// MinDistance is the radius within which no attenuation is applied.
	MinDistance float32
	// MaxDistance is the radius at and beyond which the sound is silent.
	MaxDistance float32
	// Rolloff shapes the curve between the two radii. 1 is linear,
	// higher values hold volume longer near the source.
	Rolloff float32
	// Enabled turns distance attenuation on. When false the sound plays
	// at full gain regardless of distance.
	Enabled bool
}

// DefaultParams returns the attenuation used for freshly loaded sounds:
// spatialization enabled, linear falloff between 1 and 100 units.
func DefaultParams() Params {
	return Params{
		MinDistance: 1,
		MaxDistance: 100,
		Rolloff:     1,
		Enabled:     true,
	}
}

// Validate reports whether the parameter set is usable.
func (p Params) Validate() error {
	if p.MinDistance < 0 {
		return ErrNegativeMinDistance
	}
	if p.MaxDistance <= p.MinDistance {
		return ErrDistanceOrder
	}
	if p.Rolloff < 0 {
		return ErrNegativeRolloff
	}
	return nil
}

// Gain returns the attenuation gain in [0, 1] for a sound at distance d.
// The boundary conditions are exact: 1 at or inside minDist, 0 at or
// beyond maxDist. Between the two the gain is 1 - ((d-min)/(max-min))^rolloff,
// which is monotonic non-increasing in d.
func Gain(d, minDist, maxDist, rolloff float32) float32 {
	if d <= minDist {
		return 1
	}
	if d >= maxDist {
		return 0
	}
	t := (d - minDist) / (maxDist - minDist)
	g := 1 - float32(math.Pow(float64(t), float64(rolloff)))
	if g < 0 {
		return 0
	}
	if g > 1 {
		return 1
	}
	return g
}

// GainAt applies p to the distance between the sound and listener positions.
// Disabled params always yield 1.
func (p Params) GainAt(sound, listener Vec3) float32 {
	if !p.Enabled {
		return 1
	}
	return Gain(Distance(sound, listener), p.MinDistance, p.MaxDistance, p.Rolloff)
}
