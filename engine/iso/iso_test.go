package iso

import (
	"math"
	"testing"
)

func TestWorldToScreenKnownValues(t *testing.T) {
	cases := []struct {
		wx, wy float64
		sx, sy float64
	}{
		{0, 0, 0, 0},
		{1, 0, 16, 8},
		{0, 1, -16, 8},
		{1, 1, 0, 16},
		{2, 3, -16, 40},
		{-1, -1, 0, -16},
	}
	for _, c := range cases {
		sx, sy := WorldToScreen(c.wx, c.wy)
		if sx != c.sx || sy != c.sy {
			t.Errorf("WorldToScreen(%v,%v) = (%v,%v), want (%v,%v)",
				c.wx, c.wy, sx, sy, c.sx, c.sy)
		}
	}
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	const eps = 1e-9
	values := []float64{-37.5, -10, -1, -0.25, 0, 0.5, 1, 3.75, 42, 99.99}
	for _, wx := range values {
		for _, wy := range values {
			sx, sy := WorldToScreen(wx, wy)
			gx, gy := ScreenToWorld(sx, sy)
			if math.Abs(gx-wx) > eps || math.Abs(gy-wy) > eps {
				t.Errorf("round trip (%v,%v) -> (%v,%v)", wx, wy, gx, gy)
			}
		}
	}
}

func TestDepthOrdering(t *testing.T) {
	// Larger x+y always sorts later, even against a large height.
	if Depth(5, 5, 999) >= Depth(5, 6, 0) {
		t.Errorf("row with smaller x+y should sort before the next row regardless of height")
	}
	// Within a row, height breaks ties.
	if Depth(3, 4, 1) <= Depth(4, 3, 0) {
		t.Errorf("taller tile should sort later within the same row")
	}
	// Monotonic in x+y.
	prev := math.Inf(-1)
	for s := 0; s < 20; s++ {
		d := Depth(float64(s), 0, 0)
		if d <= prev {
			t.Fatalf("depth not increasing at x+y=%d", s)
		}
		prev = d
	}
}

func TestScreenToWorldMovement(t *testing.T) {
	cases := []struct {
		sx, sy float64
		wx, wy float64
	}{
		{1, 0, 0.5, -0.5},  // screen right
		{-1, 0, -0.5, 0.5}, // screen left
		{0, 1, 0.5, 0.5},   // screen down
		{0, -1, -0.5, -0.5},
		{1, 1, 1, 0}, // down-right follows the x axis
	}
	for _, c := range cases {
		wx, wy := ScreenToWorldMovement(c.sx, c.sy)
		if wx != c.wx || wy != c.wy {
			t.Errorf("ScreenToWorldMovement(%v,%v) = (%v,%v), want (%v,%v)",
				c.sx, c.sy, wx, wy, c.wx, c.wy)
		}
	}
}
