package level

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"
)

func TestSegmentsFollowSolidCells(t *testing.T) {
	g := MustParse(
		"...",
		".#.",
		"...",
	)

	if g.Rows() != 3 || g.Cols() != 3 {
		t.Fatalf("size = %dx%d, want 3x3", g.Rows(), g.Cols())
	}

	// the four edges of the centre cell
	if !g.SolidHorizAt(1, 1) || !g.SolidHorizAt(2, 1) {
		t.Errorf("horizontal edges of (1,1) should be solid")
	}
	if !g.SolidVertAt(1, 1) || !g.SolidVertAt(1, 2) {
		t.Errorf("vertical edges of (1,1) should be solid")
	}

	// everything else stays empty
	for row := 0; row <= g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			want := col == 1 && (row == 1 || row == 2)
			if got := g.SolidHorizAt(row, col); got != want {
				t.Errorf("horiz(%d,%d) = %v, want %v", row, col, got, want)
			}
		}
	}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col <= g.Cols(); col++ {
			want := row == 1 && (col == 1 || col == 2)
			if got := g.SolidVertAt(row, col); got != want {
				t.Errorf("vert(%d,%d) = %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestSegmentInheritsMaterial(t *testing.T) {
	g := MustParse("#2")

	seg, ok := g.VertSegmentAt(0, 2)
	if !ok || !seg.Textured() || seg.TextureIndex != 2 {
		t.Errorf("right border segment = %+v, want texture 2", seg)
	}
	// shared edge takes the later cell in row-major order
	seg, _ = g.VertSegmentAt(0, 1)
	if seg.TextureIndex != 2 {
		t.Errorf("shared segment = %+v, want texture 2", seg)
	}
	seg, _ = g.HorizSegmentAt(1, 0)
	if seg.Kind != TileKind_Wall {
		t.Errorf("bottom edge of grey wall = %+v", seg)
	}
}

func TestOutOfBoundsIsNotSolid(t *testing.T) {
	g := MustParse(
		"##",
		"##",
	)

	tests := []struct {
		name string
		fn   func(int, int) bool
		row  int
		col  int
	}{
		{"tile negative", g.SolidAt, -1, 0},
		{"tile past end", g.SolidAt, 0, 2},
		{"horiz past bottom", g.SolidHorizAt, 3, 0},
		{"horiz past right", g.SolidHorizAt, 0, 2},
		{"vert past bottom", g.SolidVertAt, 2, 0},
		{"vert past right", g.SolidVertAt, 0, 3},
		{"vert negative", g.SolidVertAt, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fn(tt.row, tt.col) {
				t.Errorf("(%d,%d) reported solid", tt.row, tt.col)
			}
		})
	}

	if _, ok := g.TileAt(5, 5); ok {
		t.Errorf("TileAt outside grid returned ok")
	}
	if !g.SolidHorizAt(2, 1) || !g.SolidVertAt(1, 2) {
		t.Errorf("border segments should be addressable and solid")
	}
}

func mapImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	px := [][]color.NRGBA{
		{{200, 10, 10, 255}, {255, 0, 7, 255}, {255, 255, 255, 255}, {0, 0, 0, 255}},
		{{0, 0, 0, 255}, {254, 255, 255, 255}, {0, 255, 1, 255}, {1, 0, 255, 255}},
		{{0, 255, 1, 255}, {0, 0, 0, 255}, {0, 0, 0, 255}, {255, 0, 11, 255}},
	}
	for y, row := range px {
		for x, c := range row {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDecodeBitmap(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, mapImage()); err != nil {
		t.Fatal(err)
	}

	g, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	tile, _ := g.TileAt(0, 0)
	if tile.Kind != TileKind_Wall || tile.Color != (color.RGBA{200, 10, 10, 255}) {
		t.Errorf("flat wall = %+v", tile)
	}
	if tile.Dark != (color.RGBA{150, 7, 7, 255}) {
		t.Errorf("dark colour = %v, want {150 7 7 255}", tile.Dark)
	}

	tile, _ = g.TileAt(0, 1)
	if !tile.Textured() || tile.TextureIndex != 2 {
		t.Errorf("textured wall = %+v, want index 2", tile)
	}

	tile, _ = g.TileAt(0, 2)
	if !tile.IsWin() || !tile.Solid() {
		t.Errorf("white tile = %+v, want solid win", tile)
	}

	// blue outside 5..10 is an ordinary flat wall
	tile, _ = g.TileAt(2, 3)
	if tile.Kind != TileKind_Wall {
		t.Errorf("(255,0,11) = %+v, want flat wall", tile)
	}

	for _, rc := range [][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 0}} {
		if g.SolidAt(rc[0], rc[1]) {
			t.Errorf("spawn cell %v should be empty", rc)
		}
	}

	sp := g.Spawns
	if !sp.HasPlayer || sp.Player.X != 96 || sp.Player.Y != 96 {
		t.Errorf("player spawn = %+v, want (96,96)", sp.Player)
	}
	if len(sp.Agents) != 3 {
		t.Fatalf("agents = %d, want 3", len(sp.Agents))
	}
	want := []Spawn{
		{SpawnKind_Agent, 160, 96},
		{SpawnKind_Agent, 32, 160},
		{SpawnKind_FastAgent, 224, 96},
	}
	for i, w := range want {
		if sp.Agents[i] != w {
			t.Errorf("agent %d = %+v, want %+v", i, sp.Agents[i], w)
		}
	}
}

func TestDecodeMissingPlayerUsesDefault(t *testing.T) {
	g := MustParse("#.#")
	if g.Spawns.HasPlayer {
		t.Fatalf("HasPlayer should be false")
	}
	if g.Spawns.Player.X != DefaultPlayerX || g.Spawns.Player.Y != DefaultPlayerY {
		t.Errorf("default spawn = %+v", g.Spawns.Player)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	g, err := Decode(strings.NewReader("BM this is not a bitmap"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if g != nil {
		t.Errorf("partial grid returned on error")
	}
}

func TestFromImageEmpty(t *testing.T) {
	_, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("err = %v, want ErrEmptyImage", err)
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, ErrNoTiles) {
		t.Errorf("nil rows: err = %v", err)
	}
	if _, err := Parse([]string{"#?#"}); err == nil {
		t.Errorf("unknown rune should fail")
	}

	g := MustParse(
		"#####",
		"#P.a#",
		"#",
	)
	if g.Cols() != 5 || g.SolidAt(2, 3) {
		t.Errorf("short row should be padded with empty tiles")
	}
	if !g.Spawns.HasPlayer || g.Spawns.Player.X != 96 {
		t.Errorf("player = %+v", g.Spawns.Player)
	}
}

func TestLoad(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, mapImage()); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"maps/one.bmp": {Data: buf.Bytes()},
		"maps/two.txt": {Data: []byte("###\n#P#\n###\n\n")},
	}

	g, err := Load(fsys, "maps/one.bmp")
	if err != nil || g.Cols() != 4 {
		t.Fatalf("bmp load: %v", err)
	}
	g, err = Load(fsys, "maps/two.txt")
	if err != nil || g.Rows() != 3 {
		t.Fatalf("txt load: %v", err)
	}
	if _, err := Load(fsys, "maps/missing.bmp"); err == nil {
		t.Errorf("missing file should fail")
	}
}
