package engine

import (
	"math"
	"reflect"
	"testing"

	"gridcaster/level"
)

func testProjector() *Projector {
	return NewProjector(64, 48, math.Pi/4, DepthOfField)
}

func TestProjectorScreenDist(t *testing.T) {
	p := NewProjector(640, 480, math.Pi/4, DepthOfField)
	if math.Abs(p.ScreenDist-320) > 1e-9 {
		t.Errorf("ScreenDist = %v, want 320", p.ScreenDist)
	}

	p.SetFov(math.Pi / 6)
	want := 640 / (2 * math.Tan(math.Pi/6))
	if math.Abs(p.ScreenDist-want) > 1e-9 {
		t.Errorf("ScreenDist after SetFov = %v, want %v", p.ScreenDist, want)
	}
}

func TestColumnAngle(t *testing.T) {
	p := testProjector()
	view := 1.0

	if got := p.ColumnAngle(0, view); !sameAngle(got, view+p.Fov) {
		t.Errorf("left column = %v, want %v", got, view+p.Fov)
	}
	if got := p.ColumnAngle(p.Width/2, view); !sameAngle(got, view) {
		t.Errorf("centre column = %v, want %v", got, view)
	}
	for i := 1; i < p.Width; i++ {
		prev := WrapToSigned(NormalizeAngle(p.ColumnAngle(i-1, view) - view))
		cur := WrapToSigned(NormalizeAngle(p.ColumnAngle(i, view) - view))
		if cur >= prev {
			t.Fatalf("column %d angle does not decrease left to right", i)
		}
	}

	p.Perspective = true
	if got := p.ColumnAngle(p.Width/2, view); !sameAngle(got, view) {
		t.Errorf("perspective centre column = %v, want %v", got, view)
	}
	if got := p.ColumnAngle(0, view); math.Abs(WrapToSigned(NormalizeAngle(got-view))-p.Fov) > 1e-9 {
		t.Errorf("perspective left column = %v, want %v", got, view+p.Fov)
	}
}

func TestRenderClosedRoom(t *testing.T) {
	g := boxMap()
	p := testProjector()

	cols := p.Render(g, 160, 160, 0)
	if len(cols) != p.Width {
		t.Fatalf("columns = %d, want %d", len(cols), p.Width)
	}

	for i, c := range cols {
		if c.X != i {
			t.Fatalf("column %d has X %d", i, c.X)
		}
		if c.Height <= 0 || c.Height > p.Height {
			t.Errorf("column %d height %d out of range", i, c.Height)
		}
		if c.Y != (p.Height-c.Height)>>1 {
			t.Errorf("column %d not centred: y=%d h=%d", i, c.Y, c.Height)
		}
	}

	centre := cols[p.Width/2]
	if !centre.Vertical {
		t.Errorf("centre column should hit a vertical segment")
	}
	if math.Abs(centre.Distance-96) > 1e-6 {
		t.Errorf("centre distance = %v, want 96", centre.Distance)
	}
	// 64 * 32 / 96
	if centre.Height != 21 {
		t.Errorf("centre height = %d, want 21", centre.Height)
	}
	if centre.SrcY != 0 || centre.SrcH != level.TileSize {
		t.Errorf("uncapped slice cropped: %+v", centre)
	}
	if centre.Color() != centre.Tile.Dark {
		t.Errorf("vertical hit should use the dark colour")
	}
}

func TestSliceHeightCapped(t *testing.T) {
	p := testProjector()

	h, off := p.SliceHeight(16)
	if h != float64(p.Height) {
		t.Errorf("height = %v, want capped %d", h, p.Height)
	}
	// (128 - 48) * 64 / 256
	if off != 20 {
		t.Errorf("offset = %d, want 20", off)
	}

	h, off = p.SliceHeight(128)
	if math.Abs(h-16) > 1e-9 || off != 0 {
		t.Errorf("far slice = %v/%d, want 16/0", h, off)
	}
}

func TestRenderTexturedColumn(t *testing.T) {
	g := level.MustParse(
		"#####",
		"#..4#",
		"#####",
	)
	p := testProjector()

	cols := p.Render(g, 96, 96, 0)
	centre := cols[len(cols)/2]
	if !centre.Tile.Textured() {
		t.Fatalf("centre column tile = %+v", centre.Tile)
	}
	if centre.SrcX != 4*level.TileSize+32 {
		t.Errorf("SrcX = %d, want %d", centre.SrcX, 4*level.TileSize+32)
	}
}

func TestRenderSkipsColumnsWithoutHit(t *testing.T) {
	g := level.MustParse("...", "...", "...")
	p := testProjector()
	if cols := p.Render(g, 96, 96, 0); len(cols) != 0 {
		t.Errorf("open map produced %d columns", len(cols))
	}
}

func TestRenderWorkersMatchSerial(t *testing.T) {
	g := level.MustParse(
		"#######",
		"#.....#",
		"#.1.#.#",
		"#.....#",
		"#######",
	)
	serial := testProjector()
	parallel := testProjector()
	parallel.Workers = 4

	for _, ang := range []float64{0, 0.7, 2, 4.5} {
		a := serial.Render(g, 100, 170, ang)
		b := parallel.Render(g, 100, 170, ang)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("angle %v: parallel render differs from serial", ang)
		}
	}
}
