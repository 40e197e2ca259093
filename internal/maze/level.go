package maze

import (
	"fmt"
	"math/rand"
)

// Spec holds the per-level placement presets. Preset cells are authored
// against a RefWidth x RefHeight grid and rescaled for generated mazes.
type Spec struct {
	Gen        GenConfig
	FixedPower []Point // Power cells for catalog levels
	Pursuers   []Point
	Corners    []Point // Pursuer respawn corners, in priority order
	RefWidth   int
	RefHeight  int
}

// Level is a grid plus everything the spawner needs to populate it.
type Level struct {
	Number    int
	Name      string
	Grid      *Grid
	Spawn     Point
	Pursuers  []Point
	Corners   []Point
	Power     []Point
	Generated bool
}

// IsPower reports whether a power token spawns on p.
func (l *Level) IsPower(p Point) bool {
	for _, c := range l.Power {
		if c == p {
			return true
		}
	}
	return false
}

// Build returns level n: a catalog maze while one exists, a generated
// maze afterwards. Generated mazes are validated; callers fall back to
// Fallback on error.
func Build(n int, spec Spec, rng *rand.Rand) (*Level, error) {
	if n < 1 {
		return nil, fmt.Errorf("maze: invalid level %d", n)
	}
	if n <= CatalogSize() {
		return fromCatalog(n, n, spec)
	}

	g, err := Generate(spec.Gen, rng)
	if err != nil {
		return nil, err
	}
	spawn := SpawnCell(g)
	if err := Validate(g, spawn); err != nil {
		return nil, fmt.Errorf("maze: generated level %d: %w", n, err)
	}

	lvl := &Level{
		Number:    n,
		Name:      fmt.Sprintf("Field %d", n),
		Grid:      g,
		Spawn:     spawn,
		Generated: true,
	}
	g.Cells(func(p Point, k CellKind) {
		if k == PowerPath {
			lvl.Power = append(lvl.Power, p)
		}
	})
	lvl.Pursuers = snapAll(g, scaleAll(spec.Pursuers, spec, g))
	lvl.Corners = snapAll(g, []Point{
		{X: 1, Y: 1},
		{X: g.w - 2, Y: 1},
		{X: 1, Y: g.h - 2},
		{X: g.w - 2, Y: g.h - 2},
	})
	return lvl, nil
}

// Fallback returns the last catalog maze numbered as level n. It is the
// known-good replacement for a level that failed to build.
func Fallback(n int, spec Spec) (*Level, error) {
	last := CatalogSize()
	if last == 0 {
		return nil, fmt.Errorf("maze: catalog is empty")
	}
	return fromCatalog(n, last, spec)
}

func fromCatalog(number, entry int, spec Spec) (*Level, error) {
	g, name, err := CatalogGrid(entry)
	if err != nil {
		return nil, err
	}
	spawn := SpawnCell(g)
	if err := Validate(g, spawn); err != nil {
		return nil, fmt.Errorf("maze: catalog level %d: %w", entry, err)
	}
	lvl := &Level{
		Number:   number,
		Name:     name,
		Grid:     g,
		Spawn:    spawn,
		Pursuers: snapAll(g, spec.Pursuers),
		Corners:  snapAll(g, spec.Corners),
	}
	for _, p := range spec.FixedPower {
		if g.At(p).Open() {
			lvl.Power = append(lvl.Power, p)
		}
	}
	return lvl, nil
}

func scaleAll(pts []Point, spec Spec, g *Grid) []Point {
	if spec.RefWidth <= 0 || spec.RefHeight <= 0 {
		return pts
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X * g.w / spec.RefWidth, Y: p.Y * g.h / spec.RefHeight}
	}
	return out
}

func snapAll(g *Grid, pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if q, ok := NearestOpen(g, p); ok {
			out = append(out, q)
		}
	}
	return out
}
