package level

import "image/color"

const (
	// TileSize is the edge length of one grid cell in world units.
	TileSize = 64
	// TileShift converts world units to grid indices (x >> TileShift).
	TileShift = 6

	// TextureCount is the number of 64-wide bands in the wall texture atlas.
	TextureCount = 6

	// DarkRatio is applied to wall colours hit on a vertical segment.
	DarkRatio = 0.75
)

type TileKind int

const (
	TileKind_Empty TileKind = iota
	TileKind_Wall
	TileKind_Textured
	TileKind_Win
)

// Tile is one grid cell. Tiles are immutable after the grid is built.
type Tile struct {
	Kind         TileKind
	Color        color.RGBA
	Dark         color.RGBA
	TextureIndex int
}

// empty tiles are drawn dark grey rather than black when they ever reach the screen
var emptyTile = newColorTile(TileKind_Empty, color.RGBA{50, 50, 50, 255})

func newColorTile(kind TileKind, c color.RGBA) Tile {
	return Tile{Kind: kind, Color: c, Dark: darken(c, DarkRatio), TextureIndex: -1}
}

func newTextureTile(c color.RGBA, index int) Tile {
	return Tile{Kind: TileKind_Textured, Color: c, Dark: darken(c, DarkRatio), TextureIndex: index}
}

func (t Tile) Solid() bool    { return t.Kind != TileKind_Empty }
func (t Tile) Textured() bool { return t.Kind == TileKind_Textured }

// IsWin reports whether touching this tile ends the level.
func (t Tile) IsWin() bool { return t.Kind == TileKind_Win }

// Shade returns the flat colour to draw, darkened for vertical-segment hits.
func (t Tile) Shade(vertical bool) color.RGBA {
	if vertical {
		return t.Dark
	}
	return t.Color
}

func darken(c color.RGBA, ratio float64) color.RGBA {
	return color.RGBA{
		R: uint8(ratio * float64(c.R)),
		G: uint8(ratio * float64(c.G)),
		B: uint8(ratio * float64(c.B)),
		A: 255,
	}
}
