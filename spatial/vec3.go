// SPDX-License-Identifier: EPL-2.0

package spatial

import "math"

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LengthSquared returns the squared length of v.
// Cheaper than Length when only comparisons are needed.
func (v Vec3) LengthSquared() float32 {
	return v.Dot(v)
}

// Length returns the euclidean length of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSquared())))
}

// Normalize returns v scaled to unit length.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Distance returns the euclidean distance between a and b.
// Distance(p, p) is exactly 0 for every p.
func Distance(a, b Vec3) float32 {
	return a.Sub(b).Length()
}

// DistanceSquared returns the squared distance between a and b.
func DistanceSquared(a, b Vec3) float32 {
	return a.Sub(b).LengthSquared()
}
