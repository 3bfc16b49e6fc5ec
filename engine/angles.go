package engine

import "math"

const (
	Pi2 = 2 * math.Pi
	Pi3 = 3 * math.Pi / 2
)

// NormalizeAngle folds a into [0, 2π). Sums and differences of normalized angles
// need a single add or subtract; anything further out falls back to math.Mod.
func NormalizeAngle(a float64) float64 {
	if a < 0 {
		a += Pi2
	} else if a >= Pi2 {
		a -= Pi2
	}
	if a < 0 || a >= Pi2 {
		a = math.Mod(a, Pi2)
		if a < 0 {
			a += Pi2
		}
	}
	// tiny negative inputs round up to exactly 2π
	if a >= Pi2 {
		a = 0
	}
	return a
}

// WrapToSigned maps an angle in [0, 2π) onto (-π, π].
func WrapToSigned(a float64) float64 {
	if a > math.Pi {
		return a - Pi2
	}
	return a
}

// QuadrantAtan returns the direction of (dx, dy) in [0, 2π), with dy pointing
// up the screen. It is atan(dy/dx) with an explicit quadrant fix-up rather than
// atan2, so ray, sprite and collision geometry agree on axis-aligned vectors.
func QuadrantAtan(dx, dy float64) float64 {
	if dx == 0 && dy == 0 {
		return 0
	}

	a := math.Atan(dy / dx)
	if a > 0 {
		// 3rd quadrant
		if dy < 0 && dx < 0 {
			a += math.Pi
		}
	} else {
		if dy > 0 && dx < 0 {
			// 2nd quadrant
			a += math.Pi
		} else if dy == 0 && dx < 0 {
			// pointing straight left
			a = math.Pi
		} else {
			// 4th quadrant
			a += Pi2
		}
	}

	// atan(0) on the positive x axis lands on 2π
	if a >= Pi2 {
		a -= Pi2
	}
	return a
}

// Dist is the straight-line distance between two points.
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
