// SPDX-License-Identifier: EPL-2.0

// Package spatial provides the 3D math used for positional audio.
//
// It contains the Vec3 vector type, the per-sound attenuation parameters
// (Params) and the distance attenuation curve (Gain) that maps the distance
// between a sound and the listener to a gain scalar in [0, 1].
//
// # Attenuation Model
//
// The attenuation curve is defined by a minimum distance, a maximum distance
// and a rolloff exponent:
//   - At or inside the minimum distance the gain is exactly 1.0.
//   - At or beyond the maximum distance the gain is exactly 0.0.
//   - In between, the gain falls off as 1 - ((d-min)/(max-min))^rolloff.
//
// A rolloff of 1 gives a linear falloff; a rolloff of 2 falls off slowly
// near the source and quickly toward the edge, similar to inverse-square
// behaviour. The curve is monotonic non-increasing in distance for every
// valid parameter set.
//
// All functions in this package are pure and allocation-free, which keeps
// them safe to call from the mixer tick.
package spatial
