package maze

import (
	"fmt"
	"math/rand"
)

// GenConfig tunes the procedural generator.
type GenConfig struct {
	Width, Height   int
	Loops           int // Wall candidates tried by the loop pass
	PowerCount      int // Power paths to place
	PowerAttempts   int // Sampling budget for power paths
	MinPowerSpacing int // Minimum Manhattan distance between power paths, 0 = none
}

// DefaultGenConfig returns the generator settings used for levels past
// the catalog.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:           21,
		Height:          13,
		Loops:           10,
		PowerCount:      4,
		PowerAttempts:   100,
		MinPowerSpacing: 3,
	}
}

// MinGenSize is the smallest width or height Generate accepts.
const MinGenSize = 5

var carveSteps = [4]Point{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}}

// Generate carves a maze with an iterative randomized depth-first search
// from (1,1), adds loops, opens the spawn cell at the grid center, then
// places power paths. Every remaining open cell becomes a pickup path.
func Generate(cfg GenConfig, rng *rand.Rand) (*Grid, error) {
	if cfg.Width < MinGenSize || cfg.Height < MinGenSize {
		return nil, fmt.Errorf("maze: cannot generate %dx%d, minimum is %dx%d",
			cfg.Width, cfg.Height, MinGenSize, MinGenSize)
	}

	g := New(cfg.Width, cfg.Height)
	carve(g, Point{X: 1, Y: 1}, rng)
	addLoops(g, cfg.Loops, rng)
	openSpawn(g, SpawnCell(g))
	placePower(g, cfg, rng)

	g.Cells(func(p Point, k CellKind) {
		if k == Path {
			g.Set(p, PickupPath)
		}
	})
	return g, nil
}

// carve runs the backtracker. A neighbor two cells away is carved, along
// with the wall between, only when it is interior and still a wall.
func carve(g *Grid, start Point, rng *rand.Rand) {
	g.Set(start, Path)
	stack := []Point{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		dirs := carveSteps
		rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

		advanced := false
		for _, d := range dirs {
			next := cur.Add(d)
			if !g.Interior(next) || g.At(next) != Wall {
				continue
			}
			g.Set(Point{X: cur.X + d.X/2, Y: cur.Y + d.Y/2}, Path)
			g.Set(next, Path)
			stack = append(stack, next)
			advanced = true
			break
		}
		if !advanced {
			stack = stack[:len(stack)-1]
		}
	}
}

// addLoops knocks out interior walls that touch at least two paths.
func addLoops(g *Grid, tries int, rng *rand.Rand) {
	if g.w < 3 || g.h < 3 {
		return
	}
	for i := 0; i < tries; i++ {
		p := Point{X: 1 + rng.Intn(g.w-2), Y: 1 + rng.Intn(g.h-2)}
		if g.At(p) != Wall {
			continue
		}
		if openNeighbors(g, p) >= 2 {
			g.Set(p, Path)
		}
	}
}

func openNeighbors(g *Grid, p Point) int {
	n := 0
	for _, d := range axes {
		if g.At(p.Add(d)).Open() {
			n++
		}
	}
	return n
}

// placePower promotes random path cells by rejection sampling.
func placePower(g *Grid, cfg GenConfig, rng *rand.Rand) {
	spawn := SpawnCell(g)
	var chosen []Point
	for attempt := 0; attempt < cfg.PowerAttempts && len(chosen) < cfg.PowerCount; attempt++ {
		p := Point{X: rng.Intn(g.w), Y: rng.Intn(g.h)}
		if g.At(p) != Path || p == spawn || tooClose(p, chosen, cfg.MinPowerSpacing) {
			continue
		}
		g.Set(p, PowerPath)
		chosen = append(chosen, p)
	}
}

func tooClose(p Point, chosen []Point, spacing int) bool {
	for _, c := range chosen {
		if manhattan(p, c) < spacing {
			return true
		}
	}
	return false
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
