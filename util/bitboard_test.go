package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBitBoardSetFlipGet(t *testing.T) {
	board := [][]bool{
		{false, true, false, false, true},
		{true, false, false, false, false},
		{false, false, true, true, true},
	}
	b := NewBitBoard(3, 5)
	if len(b.Bytes) != 2 {
		t.Fatalf("15 cells should pack into 2 bytes, got %d", len(b.Bytes))
	}
	for row := range board {
		for col, alive := range board[row] {
			if alive {
				b.Set(row, col)
			}
		}
	}
	if b.Count() != 6 {
		t.Errorf("Count() = %d, want 6", b.Count())
	}
	for row := range board {
		for col := range board[row] {
			if got := b.Get(row, col); got != board[row][col] {
				t.Errorf("cell (%d,%d) = %v, want %v", col, row, got, board[row][col])
			}
		}
	}

	b.Flip(0, 1)
	b.Flip(1, 1)
	if b.Get(0, 1) || !b.Get(1, 1) || b.Count() != 6 {
		t.Errorf("Flip did not toggle cells, Count() = %d", b.Count())
	}
}

func TestBitBoardFlipped(t *testing.T) {
	prev := NewBitBoard(4, 4)
	prev.Set(0, 0)
	prev.Set(3, 3)
	next := NewBitBoard(4, 4)
	next.Set(0, 0)
	next.Set(1, 2)

	flipped := next.Flipped(prev)
	want := map[Cell]bool{{X: 2, Y: 1}: true, {X: 3, Y: 3}: true}
	if len(flipped) != len(want) {
		t.Fatalf("Flipped() = %v, want %v", flipped, want)
	}
	for _, c := range flipped {
		if !want[c] {
			t.Errorf("unexpected flipped cell %v", c)
		}
	}

	all := next.Flipped(nil)
	if len(all) != next.Count() {
		t.Errorf("Flipped(nil) returned %d cells, want %d", len(all), next.Count())
	}
}

func TestGetAliveCells(t *testing.T) {
	board := [][]bool{
		{false, true},
		{true, false},
	}
	cells := GetAliveCells(board)
	if len(cells) != 2 || cells[0] != (Cell{X: 1, Y: 0}) || cells[1] != (Cell{X: 0, Y: 1}) {
		t.Errorf("GetAliveCells() = %v", cells)
	}
}

func TestReadAliveCells(t *testing.T) {
	b := NewBitBoard(2, 3)
	b.Set(0, 2)
	b.Set(1, 0)

	path := filepath.Join(t.TempDir(), "3x2x0.pgm")
	data := append([]byte("P5\n3 2\n255\n"), b.Pixels()...)
	Check(os.WriteFile(path, data, 0644))

	cells, err := ReadAliveCells(path, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 2 || cells[0] != (Cell{X: 2, Y: 0}) || cells[1] != (Cell{X: 0, Y: 1}) {
		t.Errorf("ReadAliveCells() = %v", cells)
	}

	if _, err := ReadAliveCells(path, 4, 2); err == nil {
		t.Error("expected a width mismatch error")
	}
}
