package systems

import (
	"math"
	"testing"
)

func TestWrap(t *testing.T) {
	const w, h = 1400.0, 1000.0
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"inside", 10, 20, 10, 20},
		{"right edge", w, 5, 0, 5},
		{"just past", w + 3, h + 4, 3, 4},
		{"negative", -3, -4, w - 3, h - 4},
		{"far positive", 5*w + 7, 9*h + 1, 7, 1},
		{"far negative", -7*w + 7, -3*h + 1, 7, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := Wrap(tc.x, tc.y, w, h)
			if math.Abs(x-tc.wantX) > 1e-6 || math.Abs(y-tc.wantY) > 1e-6 {
				t.Errorf("Wrap(%v, %v) = (%v, %v), want (%v, %v)", tc.x, tc.y, x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestWrapAlwaysInRange(t *testing.T) {
	const w, h = 1400.0, 1000.0
	inputs := []float64{-1e-18, -1e-300, 1e12, -1e12, 1e300, -1e300, w - 1e-13, -w, 0}
	for _, v := range inputs {
		x, y := Wrap(v, v, w, h)
		if x < 0 || x >= w || y < 0 || y >= h {
			t.Errorf("Wrap(%v) = (%v, %v) out of range", v, x, y)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	for _, a := range []float64{0, 1, -1, 3 * math.Pi, -3 * math.Pi, 7.5, -100} {
		n := normalizeAngle(a)
		if n < -math.Pi || n > math.Pi {
			t.Errorf("normalizeAngle(%v) = %v out of range", a, n)
		}
		if d := math.Mod(math.Abs(n-a), 2*math.Pi); d > 1e-9 && math.Abs(d-2*math.Pi) > 1e-9 {
			t.Errorf("normalizeAngle(%v) = %v is not congruent", a, n)
		}
	}
}
