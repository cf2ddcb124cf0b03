package gol

import (
	"errors"
	"fmt"
	"runtime"
	"testing"
	"time"
)

// parse builds a board from rows of '.' and '#'
func parse(rows ...string) [][]bool {
	board := make([][]bool, len(rows))
	for y, row := range rows {
		board[y] = make([]bool, len(row))
		for x, c := range row {
			board[y][x] = c == '#'
		}
	}
	return board
}

// board reads back the current generation of an engine
func board(e *Engine) [][]bool {
	b := make([][]bool, e.Height())
	for y := range b {
		b[y] = make([]bool, e.Width())
		for x := range b[y] {
			b[y][x] = e.AliveAt(x, y)
		}
	}
	return b
}

// referenceStep is a single-threaded Game of Life step on a torus
func referenceStep(in [][]bool) [][]bool {
	height, width := len(in), len(in[0])
	out := make([][]bool, height)
	for y := range in {
		out[y] = make([]bool, width)
		for x := range in[y] {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && in[(y+dy+height)%height][(x+dx+width)%width] {
						n++
					}
				}
			}
			out[y][x] = n == 3 || (n == 2 && in[y][x])
		}
	}
	return out
}

func assertBoard(t *testing.T, e *Engine, want [][]bool) {
	t.Helper()
	got := board(e)
	for y := range want {
		for x := range want[y] {
			if got[y][x] != want[y][x] {
				t.Fatalf("generation %d: cell (%d,%d) = %v, want %v", e.Generation(), x, y, got[y][x], want[y][x])
			}
		}
	}
}

func TestSmallTorusColumn(t *testing.T) {
	// On a 3x3 torus every cell neighbours every other cell
	for threads := 1; threads <= 3; threads++ {
		t.Run(fmt.Sprint(threads), func(t *testing.T) {
			e, err := NewFromBoard(parse(".#.", ".#.", ".#."), threads)
			if err != nil {
				t.Fatal(err)
			}
			defer e.Close()

			e.Tick()
			assertBoard(t, e, parse("###", "###", "###"))
			e.Tick()
			assertBoard(t, e, parse("...", "...", "..."))
		})
	}
}

func TestBlinker(t *testing.T) {
	vertical := parse(
		".....",
		"..#..",
		"..#..",
		"..#..",
		".....",
	)
	horizontal := parse(
		".....",
		".....",
		".###.",
		".....",
		".....",
	)
	for threads := 1; threads <= 5; threads++ {
		t.Run(fmt.Sprint(threads), func(t *testing.T) {
			e, err := NewFromBoard(vertical, threads)
			if err != nil {
				t.Fatal(err)
			}
			defer e.Close()

			for i := 0; i < 6; i++ {
				e.Tick()
				if i%2 == 0 {
					assertBoard(t, e, horizontal)
				} else {
					assertBoard(t, e, vertical)
				}
			}
			if e.Generation() != 6 {
				t.Errorf("Generation() = %d, want 6", e.Generation())
			}
		})
	}
}

func TestGliderWrapsAroundTorus(t *testing.T) {
	glider := parse(
		".#......",
		"..#.....",
		"###.....",
		"........",
		"........",
		"........",
		"........",
		"........",
	)
	e, err := NewFromBoard(glider, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	for i := 0; i < 4; i++ {
		e.Tick()
	}
	// A glider moves one cell diagonally every four generations
	assertBoard(t, e, parse(
		"........",
		"..#.....",
		"...#....",
		".###....",
		"........",
		"........",
		"........",
		"........",
	))

	// and is back where it started after crossing both edges
	for i := 0; i < 28; i++ {
		e.Tick()
	}
	assertBoard(t, e, glider)
}

func TestMatchesReference(t *testing.T) {
	for _, threads := range []int{1, 2, 3, 7, 8, 23} {
		t.Run(fmt.Sprint(threads), func(t *testing.T) {
			e, err := New(Config{Width: 37, Height: 23, Threads: threads, Seed: 42})
			if err != nil {
				t.Fatal(err)
			}
			defer e.Close()

			want := board(e)
			for gen := 0; gen < 50; gen++ {
				want = referenceStep(want)
				e.Tick()
				assertBoard(t, e, want)
			}
		})
	}
}

func TestSeedIsReproducible(t *testing.T) {
	a, err := New(Config{Width: 40, Height: 30, Threads: 2, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := New(Config{Width: 40, Height: 30, Threads: 5, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	for gen := 0; gen < 20; gen++ {
		sa, sb := a.Snapshot(), b.Snapshot()
		if len(sa.Flipped(sb)) != 0 {
			t.Fatalf("generation %d differs between engines with the same seed", gen)
		}
		a.Tick()
		b.Tick()
	}
}

func TestReadsBetweenTicksAreStable(t *testing.T) {
	e, err := New(Config{Width: 64, Height: 64, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	for gen := 0; gen < 10; gen++ {
		e.Tick()
		first := e.Snapshot()
		// Workers must stay parked until the next Tick
		time.Sleep(time.Millisecond)
		if flipped := e.Snapshot().Flipped(first); len(flipped) != 0 {
			t.Fatalf("grid changed between ticks: %v", flipped)
		}
		if e.Generation() != gen+1 {
			t.Fatalf("Generation() = %d, want %d", e.Generation(), gen+1)
		}
	}
}

func TestToroidalWrap(t *testing.T) {
	e, err := New(Config{Width: 9, Height: 6, Threads: 2, Seed: 11})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	w, h := e.Width(), e.Height()
	for y := 0; y < h; y++ {
		if e.AliveAt(-1, y) != e.AliveAt(w-1, y) || e.AliveAt(w, y) != e.AliveAt(0, y) {
			t.Errorf("row %d does not wrap horizontally", y)
		}
	}
	for x := 0; x < w; x++ {
		if e.AliveAt(x, -1) != e.AliveAt(x, h-1) || e.AliveAt(x, h) != e.AliveAt(x, 0) {
			t.Errorf("column %d does not wrap vertically", x)
		}
	}
	if e.AliveAt(-1, -1) != e.AliveAt(w-1, h-1) {
		t.Error("corner does not wrap")
	}
}

func TestAtCommitsNext(t *testing.T) {
	e, err := NewFromBoard(parse("....", ".##.", ".##.", "...."), 2)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	e.Tick()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := e.At(x, y)
			if c.Current != c.Next {
				t.Errorf("cell (%d,%d) = %+v, next not committed", x, y, c)
			}
		}
	}
	// A block is a still life
	if e.AliveCount() != 4 || !e.At(1, 1).Current || !e.At(2, 2).Current {
		t.Errorf("block changed: %v", e.AliveCells())
	}
}

func TestWorkerCount(t *testing.T) {
	e, err := New(Config{Width: 10, Height: 3, Threads: 16})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if e.Threads() != 3 {
		t.Errorf("Threads() = %d, want workers clamped to 3 rows", e.Threads())
	}

	auto, err := New(Config{Width: 10, Height: 1000})
	if err != nil {
		t.Fatal(err)
	}
	defer auto.Close()
	if auto.Threads() != runtime.NumCPU() {
		t.Errorf("Threads() = %d, want runtime.NumCPU() = %d", auto.Threads(), runtime.NumCPU())
	}
	if len(auto.Fragments()) != auto.Threads() {
		t.Errorf("%d fragments for %d workers", len(auto.Fragments()), auto.Threads())
	}

	for _, threads := range []int{0, -4} {
		if got := workerCount(threads, 1); got != 1 {
			t.Errorf("workerCount(%d, 1) = %d, want 1", threads, got)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	for _, c := range []Config{{Width: 0, Height: 5}, {Width: 5, Height: 0}, {Width: -1, Height: -1}} {
		if _, err := New(c); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%+v) error = %v, want ErrInvalidSize", c, err)
		}
	}
	if _, err := NewFromBoard(nil, 1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewFromBoard(nil) error = %v, want ErrInvalidSize", err)
	}
	if _, err := NewFromBoard(parse("...", ".."), 1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("ragged board error = %v, want ErrInvalidSize", err)
	}
}

func TestCloseStopsWorkers(t *testing.T) {
	e, err := New(Config{Width: 30, Height: 30, Threads: 4, Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range e.WorkerStates() {
		if s != Spinning {
			t.Fatalf("worker state %v before Close, want Spinning", s)
		}
	}
	e.Tick()
	e.Close()
	for i, s := range e.WorkerStates() {
		if s != Exited {
			t.Errorf("worker %d state %v after Close, want Exited", i, s)
		}
	}

	// Neither of these may block
	e.Tick()
	e.Close()
	if e.Generation() != 1 {
		t.Errorf("Generation() = %d after ticking a closed engine, want 1", e.Generation())
	}
}

// closeWithin fails the test if Close does not return before the deadline
func closeWithin(t *testing.T, e *Engine, d time.Duration) {
	t.Helper()
	closed := make(chan struct{})
	go func() {
		e.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(d):
		t.Fatalf("Close did not return, worker states %v", e.WorkerStates())
	}
}

func TestCloseRightAfterTick(t *testing.T) {
	// Workers released from the last rendezvous may not have looked at the
	// stop flag yet when Close starts. Every one of them must still stop
	// after the same generation.
	for i := 0; i < 200; i++ {
		e, err := NewFromBoard(parse(
			"...",
			"###",
			"...",
		), 3)
		if err != nil {
			t.Fatal(err)
		}
		e.Tick()
		closeWithin(t, e, 2*time.Second)
		for w, s := range e.WorkerStates() {
			if s != Exited {
				t.Fatalf("iteration %d: worker %d state %v after Close, want Exited", i, w, s)
			}
		}
	}
}

func TestQueriesAfterClose(t *testing.T) {
	e, err := NewFromBoard(parse(
		"##..",
		"##..",
		"....",
	), 2)
	if err != nil {
		t.Fatal(err)
	}
	e.Tick()
	e.Close()

	if e.Width() != 4 || e.Height() != 3 || e.Generation() != 1 {
		t.Errorf("closed engine is %dx%d at generation %d, want 4x3 at 1", e.Width(), e.Height(), e.Generation())
	}
	if e.AliveAt(0, 0) || e.At(1, 1).Current || e.AliveCount() != 0 || len(e.AliveCells()) != 0 {
		t.Error("closed engine still reports alive cells")
	}
	if b := e.Snapshot(); b.RowLength != 4 || b.NumRows != 3 || b.Count() != 0 {
		t.Errorf("Snapshot() of a closed engine = %+v, want an empty 4x3 board", b)
	}
}

func TestCloseWithoutTick(t *testing.T) {
	e, err := New(Config{Width: 8, Height: 8, Threads: 8})
	if err != nil {
		t.Fatal(err)
	}
	e.Close()
	for i, s := range e.WorkerStates() {
		if s != Exited {
			t.Errorf("worker %d state %v after Close, want Exited", i, s)
		}
	}
}

func TestRepeatedSessionsLeaveNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 25; i++ {
		e, err := New(Config{Width: 20 + i, Height: 10 + i, Threads: 1 + i%6})
		if err != nil {
			t.Fatal(err)
		}
		for j := 0; j < i%4; j++ {
			e.Tick()
		}
		e.Close()
	}

	// Exited workers may still be unwinding their deferred Done
	deadline := time.Now().Add(5 * time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := runtime.NumGoroutine(); n > before {
		t.Errorf("%d goroutines running after every session closed, started with %d", n, before)
	}
}

func BenchmarkTick(b *testing.B) {
	for threads := 1; threads <= 16; threads *= 2 {
		name := fmt.Sprintf("512x512-%d", threads)
		b.Run(name, func(b *testing.B) {
			e, err := New(Config{Width: 512, Height: 512, Threads: threads, Seed: 1})
			if err != nil {
				b.Fatal(err)
			}
			defer e.Close()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.Tick()
			}
		})
	}
}
