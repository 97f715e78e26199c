// SPDX-License-Identifier: EPL-2.0

package utils

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a to b by t.
// t is expected in [0, 1]; t == 0 yields a, t == 1 yields b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
