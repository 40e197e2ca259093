package maze

import (
	"errors"
	"fmt"
)

// ErrDisconnected is returned by Validate when some open cell cannot be
// reached from the spawn.
var ErrDisconnected = errors.New("maze: open cells unreachable from spawn")

// SpawnCell returns the player's spawn: the geometric center of the grid.
func SpawnCell(g *Grid) Point {
	return Point{X: g.w / 2, Y: g.h / 2}
}

// Reachable returns the number of open cells connected to from
// (4-neighborhood). It is 0 when from is not open.
func Reachable(g *Grid, from Point) int {
	if !g.At(from).Open() {
		return 0
	}
	seen := make([]bool, len(g.cells))
	seen[from.Y*g.w+from.X] = true
	queue := []Point{from}
	n := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		n++
		for _, d := range axes {
			q := p.Add(d)
			if !g.At(q).Open() || seen[q.Y*g.w+q.X] {
				continue
			}
			seen[q.Y*g.w+q.X] = true
			queue = append(queue, q)
		}
	}
	return n
}

// Validate checks the level invariants: a solid border and every open
// cell reachable from spawn.
func Validate(g *Grid, spawn Point) error {
	if g == nil || g.w == 0 || g.h == 0 {
		return ErrEmptyGrid
	}
	if !g.BorderIsWall() {
		return errors.New("maze: border is not solid")
	}
	if !g.At(spawn).Open() {
		return fmt.Errorf("maze: spawn %v is a wall", spawn)
	}
	open := g.w*g.h - g.Count(Wall)
	if got := Reachable(g, spawn); got != open {
		return fmt.Errorf("%w: %d of %d reachable", ErrDisconnected, got, open)
	}
	return nil
}

// NearestOpen returns the open cell closest to p by breadth-first search
// over the whole grid, preferring the first found in axis order.
func NearestOpen(g *Grid, p Point) (Point, bool) {
	path := pathToOpen(g, p)
	if path == nil {
		return Point{}, false
	}
	return path[len(path)-1], true
}

// openSpawn makes sure the spawn is open and connected by carving the
// shortest interior run of walls to the nearest open cell.
func openSpawn(g *Grid, spawn Point) {
	if g.At(spawn).Open() {
		return
	}
	for _, p := range pathToOpen(g, spawn) {
		if g.Interior(p) && g.At(p) == Wall {
			g.Set(p, Path)
		}
	}
}

// pathToOpen returns the cells from p (inclusive) to the nearest open cell
// (inclusive), walking interior cells only. Nil if none exists.
func pathToOpen(g *Grid, p Point) []Point {
	if !g.InBounds(p) {
		return nil
	}
	if g.At(p).Open() {
		return []Point{p}
	}
	prev := make(map[Point]Point)
	seen := map[Point]bool{p: true}
	queue := []Point{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range axes {
			q := cur.Add(d)
			if !g.InBounds(q) || seen[q] {
				continue
			}
			seen[q] = true
			prev[q] = cur
			if g.At(q).Open() {
				path := []Point{q}
				for at := cur; at != p; at = prev[at] {
					path = append(path, at)
				}
				path = append(path, p)
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path
			}
			if g.Interior(q) {
				queue = append(queue, q)
			}
		}
	}
	return nil
}
