package level

// noCell marks a wall segment that borders no solid cell.
const noCell = -1

// Grid is the tile map plus its derived wall segments. Segments hold the index of
// the solid cell they inherit their material from, so there is a single owner of
// every Tile.
type Grid struct {
	rows, cols int
	tiles      []Tile

	// horiz is (rows+1) x cols, vert is rows x (cols+1)
	horiz []int
	vert  []int

	Spawns Spawns
}

// NewGrid builds a grid from row-major tiles and derives the segment arrays once.
func NewGrid(rows, cols int, tiles []Tile) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		tiles: tiles,
		horiz: make([]int, (rows+1)*cols),
		vert:  make([]int, rows*(cols+1)),
	}
	for i := range g.horiz {
		g.horiz[i] = noCell
	}
	for i := range g.vert {
		g.vert[i] = noCell
	}

	// walls around a solid block take that block's material, later cells win shared edges
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			cell := i*cols + j
			if !tiles[cell].Solid() {
				continue
			}
			g.vert[i*(cols+1)+j] = cell
			g.vert[i*(cols+1)+j+1] = cell
			g.horiz[i*cols+j] = cell
			g.horiz[(i+1)*cols+j] = cell
		}
	}
	return g
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// WorldSize returns the map extent in world units.
func (g *Grid) WorldSize() (float64, float64) {
	return float64(g.cols << TileShift), float64(g.rows << TileShift)
}

// TileAt returns the tile at (row, col); ok is false outside the grid.
func (g *Grid) TileAt(row, col int) (Tile, bool) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return emptyTile, false
	}
	return g.tiles[row*g.cols+col], true
}

// HorizSegmentAt returns the material of the horizontal wall segment on the top
// edge of cell (row, col). Row may equal Rows() for the bottom border.
func (g *Grid) HorizSegmentAt(row, col int) (Tile, bool) {
	if row < 0 || row > g.rows || col < 0 || col >= g.cols {
		return emptyTile, false
	}
	return g.segment(g.horiz[row*g.cols+col])
}

// VertSegmentAt returns the material of the vertical wall segment on the left edge
// of cell (row, col). Col may equal Cols() for the right border.
func (g *Grid) VertSegmentAt(row, col int) (Tile, bool) {
	if row < 0 || row >= g.rows || col < 0 || col > g.cols {
		return emptyTile, false
	}
	return g.segment(g.vert[row*(g.cols+1)+col])
}

func (g *Grid) segment(cell int) (Tile, bool) {
	if cell == noCell {
		return emptyTile, true
	}
	return g.tiles[cell], true
}

func (g *Grid) SolidAt(row, col int) bool {
	t, _ := g.TileAt(row, col)
	return t.Solid()
}

func (g *Grid) SolidHorizAt(row, col int) bool {
	t, _ := g.HorizSegmentAt(row, col)
	return t.Solid()
}

func (g *Grid) SolidVertAt(row, col int) bool {
	t, _ := g.VertSegmentAt(row, col)
	return t.Solid()
}

// SolidAtWorld tests the tile under a world-space point.
func (g *Grid) SolidAtWorld(x, y float64) bool {
	return g.SolidAt(int(y)>>TileShift, int(x)>>TileShift)
}
