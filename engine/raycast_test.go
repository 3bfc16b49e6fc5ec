package engine

import (
	"math"
	"strings"
	"testing"

	"gridcaster/level"
)

// boxMap is a 3x3 open room inside a solid border.
func boxMap() *level.Grid {
	return level.MustParse(
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)
}

func TestCastFromRoomCentre(t *testing.T) {
	g := boxMap()
	x, y := 160.0, 160.0

	tests := []struct {
		name     string
		ang      float64
		vertical bool
		row, col int
	}{
		{"right", 0, true, 2, 4},
		{"up", math.Pi / 2, false, 1, 2},
		{"left", math.Pi, true, 2, 1},
		{"down", Pi3, false, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Cast(g, x, y, tt.ang, DepthOfField)
			if !r.Hit {
				t.Fatalf("no hit")
			}
			if r.Vertical != tt.vertical {
				t.Errorf("Vertical = %v, want %v", r.Vertical, tt.vertical)
			}
			if math.Abs(r.Distance-1.5*level.TileSize) > 1e-6 {
				t.Errorf("Distance = %v, want %v", r.Distance, 1.5*level.TileSize)
			}
			if r.Row != tt.row || r.Col != tt.col {
				t.Errorf("hit segment = (%d,%d), want (%d,%d)", r.Row, r.Col, tt.row, tt.col)
			}
			if r.Offset != 32 {
				t.Errorf("Offset = %d, want 32", r.Offset)
			}
		})
	}
}

func TestCastRoundTrip(t *testing.T) {
	for k := 1; k <= 8; k++ {
		// wall k tiles to the right of x = 64
		border := strings.Repeat("#", k+2)
		g := level.MustParse(border, "#"+strings.Repeat(".", k)+"#", border)

		r := CastVertical(g, 64, 96, 0, DepthOfField)
		if !r.Hit || !near(r.Distance, float64(k*level.TileSize)) {
			t.Errorf("k=%d: right cast = %+v, want hit at %d", k, r, k*level.TileSize)
		}
		if r.Row != 1 || r.Col != k+1 {
			t.Errorf("k=%d: hit (%d,%d), want (1,%d)", k, r.Row, r.Col, k+1)
		}

		// wall k tiles above y = 64(k+1)
		rows := []string{"###"}
		for i := 0; i <= k; i++ {
			rows = append(rows, "#.#")
		}
		rows = append(rows, "###")
		g = level.MustParse(rows...)

		r = CastHorizontal(g, 96, float64(64*(k+1)), math.Pi/2, DepthOfField)
		if !r.Hit || math.Abs(r.Distance-float64(k*level.TileSize)) > 1e-6 {
			t.Errorf("k=%d: up cast = %+v, want hit at %d", k, r, k*level.TileSize)
		}
		if r.Row != 1 || r.Col != 1 {
			t.Errorf("k=%d: hit (%d,%d), want (1,1)", k, r.Row, r.Col)
		}
	}
}

func TestCastDegenerate(t *testing.T) {
	g := boxMap()

	for _, ang := range []float64{0, math.Pi} {
		r := CastHorizontal(g, 160, 160, ang, DepthOfField)
		if r.Hit || !math.IsInf(r.Distance, 1) {
			t.Errorf("horizontal cast at %v = %+v, want degenerate", ang, r)
		}
	}
	for _, ang := range []float64{math.Pi / 2, Pi3} {
		r := CastVertical(g, 160, 160, ang, DepthOfField)
		if r.Hit || !math.IsInf(r.Distance, 1) || !r.Vertical {
			t.Errorf("vertical cast at %v = %+v, want degenerate", ang, r)
		}
	}
}

func TestCastDepthExhausted(t *testing.T) {
	g := level.MustParse("##########", "#........#", "##########")

	r := CastVertical(g, 64, 96, 0, 2)
	if r.Hit {
		t.Fatalf("hit before depth ran out: %+v", r)
	}
	// stopped after two steps at x = 256
	if !near(r.Distance, 192) {
		t.Errorf("Distance = %v, want 192", r.Distance)
	}
}

func TestCastOutsideGrid(t *testing.T) {
	g := boxMap()
	r := Cast(g, -500, -500, 0.3, DepthOfField)
	if r.Hit {
		t.Errorf("ray outside the grid reported a hit: %+v", r)
	}
}

func TestNearestTieKeepsVertical(t *testing.T) {
	h := RayResult{Distance: 10, Hit: true}
	v := RayResult{Distance: 10, Hit: true, Vertical: true}
	if got := Nearest(h, v); !got.Vertical {
		t.Errorf("tie picked horizontal")
	}

	h.Distance = 9.999
	if got := Nearest(h, v); got.Vertical {
		t.Errorf("strictly closer horizontal result not picked")
	}
}

func TestSegmentMaterial(t *testing.T) {
	g := level.MustParse(
		"#####",
		"#..3#",
		"#####",
	)
	r := Cast(g, 96, 96, 0, DepthOfField)
	tile, ok := r.Segment(g)
	if !ok || !tile.Textured() || tile.TextureIndex != 3 {
		t.Errorf("segment = %+v, want texture 3", tile)
	}
}
