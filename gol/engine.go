package gol

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"uk.ac.bris.cs/fastlife/util"
)

// ErrInvalidSize is returned when a grid dimension is not positive
var ErrInvalidSize = errors.New("gol: grid dimensions must be positive")

// Config describes a new simulation session.
type Config struct {
	Width  int
	Height int
	// Threads is the number of workers. Zero or less selects runtime.NumCPU().
	// The count is always clamped to Height so every worker owns at least one row.
	Threads int
	// Seed for the initial random grid. Zero selects a time based seed.
	Seed int64
}

// Engine advances a toroidal Game of Life grid on a fixed pool of worker
// goroutines. The grid only moves forward when Tick is called.
//
// Tick, Close and the query methods must all be called from one controlling
// goroutine. Queries are safe whenever that goroutine is not inside Tick.
// Once closed the grid is gone: cell queries report an all-dead board while
// the dimensions, Generation and WorkerStates stay available.
type Engine struct {
	grid       *grid
	width      int
	height     int
	fragments  []Fragment
	workers    []*worker
	controller controllerRole
	barriers   [numPhases]*Barrier

	stopping   atomic.Bool
	wg         sync.WaitGroup
	generation int
	closed     bool
}

// New seeds a random grid and starts the worker pool
func New(c Config) (*Engine, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	threads := workerCount(c.Threads, c.Height)

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := newGrid(c.Width, c.Height)
	g.randomise(rand.New(rand.NewSource(seed)))
	return start(g, threads), nil
}

// NewFromBoard starts the worker pool on an explicit starting pattern.
// board is indexed board[y][x] and every row must have the same length.
func NewFromBoard(board [][]bool, threads int) (*Engine, error) {
	height := len(board)
	width := 0
	if height > 0 {
		width = len(board[0])
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	threads = workerCount(threads, height)

	g := newGrid(width, height)
	for y, row := range board {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, y, len(row), width)
		}
		for x, alive := range row {
			g.cells[y*width+x].Current = alive
		}
	}
	return start(g, threads), nil
}

// workerCount picks between 1 and height workers; height is already positive
func workerCount(threads, height int) int {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	// don't allow more workers than rows
	if threads > height {
		threads = height
	}
	return threads
}

// start spawns one worker per fragment and returns once they are all running
func start(g *grid, threads int) *Engine {
	e := &Engine{
		grid:      g,
		width:     g.width,
		height:    g.height,
		fragments: Fragments(g.height, threads),
	}

	roles := []role{e.controller}
	for _, f := range e.fragments {
		w := &worker{role: workerRole{fragment: f}}
		e.workers = append(e.workers, w)
		roles = append(roles, w.role)
	}
	for p := phase(0); p < numPhases; p++ {
		parties := 0
		for _, r := range roles {
			if r.joins(p) {
				parties++
			}
		}
		e.barriers[p] = NewBarrier(parties)
	}

	ready := make(chan struct{})
	e.wg.Add(len(e.workers))
	for _, w := range e.workers {
		go func(w *worker) {
			// Make sure the goroutine is scheduled before New returns
			ready <- struct{}{}
			w.run(e)
		}(w)
		<-ready
	}
	return e
}

// Tick advances the grid by exactly one generation and returns once every
// cell has been committed. Ticking a closed engine does nothing.
func (e *Engine) Tick() {
	if e.closed {
		return
	}
	e.barriers[phaseStart].Wait()
	e.barriers[phaseDone].Wait()
	e.generation++
}

// Close stops and joins every worker, then releases the grid.
// It must not run concurrently with Tick. Closing twice is a no-op.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.controller.leave(e)
	e.wg.Wait()
	e.grid = nil
}

// AliveAt reports whether (x, y) is alive. Coordinates one step outside the
// board wrap around to the opposite edge.
func (e *Engine) AliveAt(x, y int) bool {
	if e.grid == nil {
		return false
	}
	return e.grid.aliveAt(x, y)
}

// At returns the cell at (x, y), which must be inside the board
func (e *Engine) At(x, y int) Cell {
	if e.grid == nil {
		return Cell{}
	}
	return e.grid.at(x, y)
}

func (e *Engine) Width() int  { return e.width }
func (e *Engine) Height() int { return e.height }

// Threads returns the number of worker goroutines
func (e *Engine) Threads() int { return len(e.workers) }

// Generation returns the number of completed ticks
func (e *Engine) Generation() int { return e.generation }

// Fragments returns the row ranges owned by each worker
func (e *Engine) Fragments() []Fragment {
	return append([]Fragment(nil), e.fragments...)
}

// AliveCount returns the number of alive cells
func (e *Engine) AliveCount() int {
	if e.grid == nil {
		return 0
	}
	return e.grid.aliveCount()
}

// AliveCells returns the coordinates of every alive cell, row by row
func (e *Engine) AliveCells() []util.Cell {
	if e.grid == nil {
		return []util.Cell{}
	}
	return e.grid.aliveCells()
}

// Snapshot returns a packed copy of the current generation
func (e *Engine) Snapshot() *util.BitBoard {
	if e.grid == nil {
		return util.NewBitBoard(e.height, e.width)
	}
	return e.grid.snapshot()
}

// WorkerStates reports the lifecycle state of every worker
func (e *Engine) WorkerStates() []WorkerState {
	states := make([]WorkerState, len(e.workers))
	for i, w := range e.workers {
		states[i] = w.State()
	}
	return states
}
