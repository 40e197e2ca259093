package maze

import (
	"math"

	"github.com/vovakirdan/turkeyrun/internal/core"
)

// Layout maps grid cells onto a pixel viewport. The grid is scaled by an
// integer tile size and centered.
type Layout struct {
	Tile    float64
	OffsetX float64
	OffsetY float64
	Cols    int
	Rows    int
}

// ComputeLayout picks the largest whole tile that fits cols x rows into a
// viewport of vw x vh pixels.
func ComputeLayout(cols, rows int, vw, vh float64) Layout {
	if cols <= 0 || rows <= 0 {
		return Layout{}
	}
	tile := math.Min(math.Floor(vw/float64(cols)), math.Floor(vh/float64(rows)))
	return Layout{
		Tile:    tile,
		OffsetX: (vw - float64(cols)*tile) / 2,
		OffsetY: (vh - float64(rows)*tile) / 2,
		Cols:    cols,
		Rows:    rows,
	}
}

// Center returns the pixel center of cell p.
func (l Layout) Center(p Point) core.Vec {
	return core.Vec{
		X: l.OffsetX + float64(p.X)*l.Tile + l.Tile/2,
		Y: l.OffsetY + float64(p.Y)*l.Tile + l.Tile/2,
	}
}

// CellAt returns the cell containing pixel position v.
func (l Layout) CellAt(v core.Vec) Point {
	if l.Tile <= 0 {
		return Point{}
	}
	return Point{
		X: int(math.Floor((v.X - l.OffsetX) / l.Tile)),
		Y: int(math.Floor((v.Y - l.OffsetY) / l.Tile)),
	}
}
