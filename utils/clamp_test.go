// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		v, lo, hi  float32
		want       float32
	}{
		{"inside range", 0.5, 0, 1, 0.5},
		{"below lower bound", -0.3, 0, 1, 0},
		{"above upper bound", 1.7, 0, 1, 1},
		{"at lower bound", 0, 0, 1, 0},
		{"at upper bound", 1, 0, 1, 1},
		{"negative range", -5, -10, -1, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b, t float32
		want    float32
	}{
		{"start", 0, 1, 0, 0},
		{"end", 0, 1, 1, 1},
		{"midpoint", 0, 1, 0.5, 0.5},
		{"descending", 1, 0, 0.25, 0.75},
		{"same endpoints", 0.4, 0.4, 0.9, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
				t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}
