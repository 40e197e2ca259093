// Package maze holds the level grids: the hand-authored catalog, the
// procedural generator, connectivity checks and the pixel layout that maps
// cells onto the viewport.
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// CellKind is the content of one maze cell.
type CellKind uint8

const (
	Wall       CellKind = iota
	Path                // open, no item
	PickupPath          // open, spawns a pickup
	PowerPath           // open, spawns a power token
)

// Open reports whether entities can stand on the cell.
func (k CellKind) Open() bool {
	return k != Wall
}

func (k CellKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Path:
		return "path"
	case PickupPath:
		return "pickup"
	case PowerPath:
		return "power"
	default:
		return "unknown"
	}
}

// Point is a cell coordinate: X is the column, Y the row.
type Point struct {
	X, Y int
}

// Add returns the point offset by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

var axes = [4]Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// Grid is a fixed-size rectangle of cells, row-major.
type Grid struct {
	w, h  int
	cells []CellKind
}

// New returns a grid of the given size filled with walls.
func New(w, h int) *Grid {
	return &Grid{w: w, h: h, cells: make([]CellKind, w*h)}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

// Interior reports whether p lies strictly inside the border.
func (g *Grid) Interior(p Point) bool {
	return p.X > 0 && p.X < g.w-1 && p.Y > 0 && p.Y < g.h-1
}

// At returns the kind at p. Cells off the grid read as walls.
func (g *Grid) At(p Point) CellKind {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[p.Y*g.w+p.X]
}

// Set changes the kind at p. Writes off the grid are ignored.
func (g *Grid) Set(p Point, k CellKind) {
	if g.InBounds(p) {
		g.cells[p.Y*g.w+p.X] = k
	}
}

// Cells calls fn for every cell in row-major order.
func (g *Grid) Cells(fn func(p Point, k CellKind)) {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			fn(Point{X: x, Y: y}, g.cells[y*g.w+x])
		}
	}
}

// Count returns how many cells have the given kind.
func (g *Grid) Count(k CellKind) int {
	n := 0
	for _, c := range g.cells {
		if c == k {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{w: g.w, h: g.h, cells: make([]CellKind, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// BorderIsWall reports whether every edge cell is a wall.
func (g *Grid) BorderIsWall() bool {
	for x := 0; x < g.w; x++ {
		if g.At(Point{X: x, Y: 0}).Open() || g.At(Point{X: x, Y: g.h - 1}).Open() {
			return false
		}
	}
	for y := 0; y < g.h; y++ {
		if g.At(Point{X: 0, Y: y}).Open() || g.At(Point{X: g.w - 1, Y: y}).Open() {
			return false
		}
	}
	return true
}

var glyphs = map[CellKind]byte{
	Wall:       '#',
	Path:       ' ',
	PickupPath: '.',
	PowerPath:  'o',
}

// String renders the grid as ASCII rows ('#', ' ', '.', 'o').
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.w + 1) * g.h)
	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.w; x++ {
			sb.WriteByte(glyphs[g.cells[y*g.w+x]])
		}
	}
	return sb.String()
}

// ErrEmptyGrid is returned when parsing yields no cells.
var ErrEmptyGrid = errors.New("maze: empty grid")

// Parse builds a grid from text rows. Digits follow the legacy encoding
// (1 wall, 0 pickup path, 2 power path); the ASCII glyphs produced by
// String are accepted too. All rows must have the same width.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	g := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.w {
			return nil, fmt.Errorf("maze: row %d has width %d, expected %d", y, len(row), g.w)
		}
		for x := 0; x < len(row); x++ {
			var k CellKind
			switch row[x] {
			case '1', '#':
				k = Wall
			case '0', '.':
				k = PickupPath
			case '2', 'o':
				k = PowerPath
			case ' ', '_':
				k = Path
			default:
				return nil, fmt.Errorf("maze: unknown cell %q at row %d col %d", row[x], y, x)
			}
			g.Set(Point{X: x, Y: y}, k)
		}
	}
	return g, nil
}
