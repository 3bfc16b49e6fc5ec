package level

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"

	"gridcaster/logger"
)

var (
	ErrEmptyImage = errors.New("level: map image has no pixels")
	ErrNoTiles    = errors.New("level: map text has no rows")
)

type SpawnKind int

const (
	SpawnKind_Player SpawnKind = iota
	SpawnKind_Agent
	SpawnKind_FastAgent
)

// Spawn is a world-space start position at the centre of its cell.
type Spawn struct {
	Kind SpawnKind
	X, Y float64
}

type Spawns struct {
	Player    Spawn
	HasPlayer bool
	// Agents lists normal agents in scan order followed by fast agents in scan order.
	Agents []Spawn
}

// DefaultPlayerX and DefaultPlayerY are used when a map has no player spawn.
const (
	DefaultPlayerX = 80
	DefaultPlayerY = 80
)

// reserved map colours
var (
	MapColor_Empty     = color.RGBA{0, 0, 0, 255}
	MapColor_Agent     = color.RGBA{0, 255, 1, 255}
	MapColor_FastAgent = color.RGBA{1, 0, 255, 255}
	MapColor_Player    = color.RGBA{254, 255, 255, 255}
	MapColor_Win       = color.RGBA{255, 255, 255, 255}

	// player spawn as written by tools that store the channels in BGR order
	mapColor_PlayerBGR = color.RGBA{255, 255, 254, 255}
)

// Load opens a map from fsys. Files ending in .txt are read with Parse, anything
// else is decoded as an image.
func Load(fsys fs.FS, name string) (*Grid, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("level: open %s: %w", name, err)
	}
	defer file.Close()

	var g *Grid
	if path.Ext(name) == ".txt" {
		g, err = ParseReader(file)
	} else {
		g, err = Decode(file)
	}
	if err != nil {
		return nil, fmt.Errorf("level: load %s: %w", name, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "level",
		"map":       name,
		"rows":      g.Rows(),
		"cols":      g.Cols(),
		"agents":    len(g.Spawns.Agents),
	}).Info("map loaded")
	return g, nil
}

// Decode builds a grid from a bitmap, one pixel per tile, top row first.
func Decode(r io.Reader) (*Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode map image: %w", err)
	}
	return FromImage(img)
}

// FromImage builds a grid from an already decoded image.
func FromImage(img image.Image) (*Grid, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, ErrEmptyImage
	}

	b := newBuilder(height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			b.setPixel(y, x, color.RGBA{c.R, c.G, c.B, 255})
		}
	}
	return b.build(), nil
}

// Parse builds a grid from ASCII rows:
//
//	'.' or ' ' empty    '#' grey wall    'W' white win wall
//	'0'..'5' textured   'P' player       'a' agent   'f' fast agent
//
// Short rows are padded with empty tiles.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrNoTiles
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, ErrNoTiles
	}

	b := newBuilder(len(rows), width)
	for y, row := range rows {
		for x := 0; x < width; x++ {
			ch := byte('.')
			if x < len(row) {
				ch = row[x]
			}
			c, err := runeColor(ch)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			b.setPixel(y, x, c)
		}
	}
	return b.build(), nil
}

// MustParse is Parse for fixed maps in tests and tools.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// ParseReader reads ASCII map rows from r, ignoring blank trailing lines.
func ParseReader(r io.Reader) (*Grid, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return Parse(rows)
}

func runeColor(ch byte) (color.RGBA, error) {
	switch {
	case ch == '.' || ch == ' ':
		return MapColor_Empty, nil
	case ch == '#':
		return color.RGBA{128, 128, 128, 255}, nil
	case ch == 'W':
		return MapColor_Win, nil
	case ch == 'P':
		return MapColor_Player, nil
	case ch == 'a':
		return MapColor_Agent, nil
	case ch == 'f':
		return MapColor_FastAgent, nil
	case ch >= '0' && ch < '0'+TextureCount:
		return color.RGBA{255, 0, 5 + (ch - '0'), 255}, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown map rune %q", ch)
}

type builder struct {
	rows, cols int
	tiles      []Tile
	spawns     Spawns
	fast       []Spawn
}

func newBuilder(rows, cols int) *builder {
	return &builder{rows: rows, cols: cols, tiles: make([]Tile, rows*cols)}
}

// setPixel decodes a map colour into the tile at (row, col), extracting spawns.
func (b *builder) setPixel(row, col int, c color.RGBA) {
	cell := row*b.cols + col
	center := func(kind SpawnKind) Spawn {
		return Spawn{
			Kind: kind,
			X:    float64(col<<TileShift + TileSize>>1),
			Y:    float64(row<<TileShift + TileSize>>1),
		}
	}

	switch {
	case c == MapColor_Empty:
		b.tiles[cell] = emptyTile
	case c.R == 255 && c.G == 0 && c.B >= 5 && c.B <= 10:
		b.tiles[cell] = newTextureTile(c, int(c.B)-5)
	case c == MapColor_Agent:
		b.spawns.Agents = append(b.spawns.Agents, center(SpawnKind_Agent))
		// remove spawn block from level so it doesn't render or collide
		b.tiles[cell] = emptyTile
	case c == MapColor_FastAgent:
		b.fast = append(b.fast, center(SpawnKind_FastAgent))
		b.tiles[cell] = emptyTile
	case c == MapColor_Player || c == mapColor_PlayerBGR:
		b.spawns.Player = center(SpawnKind_Player)
		b.spawns.HasPlayer = true
		b.tiles[cell] = emptyTile
	case c == MapColor_Win:
		b.tiles[cell] = newColorTile(TileKind_Win, c)
	default:
		b.tiles[cell] = newColorTile(TileKind_Wall, c)
	}
}

func (b *builder) build() *Grid {
	b.spawns.Agents = append(b.spawns.Agents, b.fast...)
	if !b.spawns.HasPlayer {
		logger.Log.WithFields(logrus.Fields{
			"component": "level",
			"x":         DefaultPlayerX,
			"y":         DefaultPlayerY,
		}).Warn("map has no player spawn, using default position")
		b.spawns.Player = Spawn{Kind: SpawnKind_Player, X: DefaultPlayerX, Y: DefaultPlayerY}
	}

	g := NewGrid(b.rows, b.cols, b.tiles)
	g.Spawns = b.spawns
	return g
}
