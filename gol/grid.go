package gol

import (
	"math/rand"

	"uk.ac.bris.cs/fastlife/util"
)

// Cell holds the visible state of a cell and the state being computed for the
// next generation.
type Cell struct {
	Current bool
	Next    bool
}

// grid is a dense row-major toroidal board
type grid struct {
	width  int
	height int
	cells  []Cell
}

func newGrid(width, height int) *grid {
	return &grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// randomise seeds every cell with an independent coin flip
func (g *grid) randomise(r *rand.Rand) {
	for i := range g.cells {
		g.cells[i].Current = r.Intn(2) == 1
	}
}

// wrap maps a coordinate at most one step outside the board onto the
// opposite edge
func wrap(v, size int) int {
	if v == -1 {
		return size - 1
	}
	if v == size {
		return 0
	}
	return v
}

func (g *grid) aliveAt(x, y int) bool {
	return g.cells[wrap(y, g.height)*g.width+wrap(x, g.width)].Current
}

func (g *grid) at(x, y int) Cell {
	return g.cells[y*g.width+x]
}

// countAliveNeighbours counts the alive cells in a 1 cell radius of (x, y),
// wrapping around edges
func (g *grid) countAliveNeighbours(x, y int) int {
	numNeighbours := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			// Ignore the centre cell
			if dx == 0 && dy == 0 {
				continue
			}
			if g.aliveAt(x+dx, y+dy) {
				numNeighbours++
			}
		}
	}
	return numNeighbours
}

// setNextState applies the Game of Life rules to (x, y) and stores the result
// in Next. Current is left untouched.
func (g *grid) setNextState(x, y int) {
	adj := g.countAliveNeighbours(x, y)
	c := &g.cells[y*g.width+x]
	if c.Current {
		// Only 2 or 3 neighbours keep a cell alive
		c.Next = adj == 2 || adj == 3
	} else {
		c.Next = adj == 3
	}
}

// calculateNextState computes Next for every cell in the fragment
func (g *grid) calculateNextState(f Fragment) {
	for y := f.StartRow; y < f.EndRow; y++ {
		for x := 0; x < g.width; x++ {
			g.setNextState(x, y)
		}
	}
}

// updateState commits Next into Current for every cell in the fragment
func (g *grid) updateState(f Fragment) {
	cells := g.cells[f.StartRow*g.width : f.EndRow*g.width]
	for i := range cells {
		cells[i].Current = cells[i].Next
	}
}

func (g *grid) snapshot() *util.BitBoard {
	b := util.NewBitBoard(g.height, g.width)
	for i, c := range g.cells {
		if c.Current {
			b.Set(i/g.width, i%g.width)
		}
	}
	return b
}

func (g *grid) aliveCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Current {
			n++
		}
	}
	return n
}

func (g *grid) aliveCells() []util.Cell {
	aliveCells := make([]util.Cell, 0)
	for i, c := range g.cells {
		if c.Current {
			aliveCells = append(aliveCells, util.Cell{X: i % g.width, Y: i / g.width})
		}
	}
	return aliveCells
}
