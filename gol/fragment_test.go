package gol

import (
	"fmt"
	"testing"
)

func TestFragmentsCoverBoard(t *testing.T) {
	for height := 1; height <= 64; height++ {
		for workers := 1; workers <= height; workers++ {
			fragments := Fragments(height, workers)
			if len(fragments) != workers {
				t.Fatalf("Fragments(%d, %d) returned %d fragments", height, workers, len(fragments))
			}
			next := 0
			for i, f := range fragments {
				if f.StartRow != next {
					t.Fatalf("Fragments(%d, %d)[%d] starts at %d, want %d", height, workers, i, f.StartRow, next)
				}
				if f.Rows() < 1 {
					t.Fatalf("Fragments(%d, %d)[%d] is empty", height, workers, i)
				}
				next = f.EndRow
			}
			if next != height {
				t.Fatalf("Fragments(%d, %d) ends at %d", height, workers, next)
			}
		}
	}
}

func TestFragmentsRemainderGoesToLastWorker(t *testing.T) {
	fragments := Fragments(10, 4)
	want := []Fragment{{0, 2}, {2, 4}, {4, 6}, {6, 10}}
	if fmt.Sprint(fragments) != fmt.Sprint(want) {
		t.Errorf("Fragments(10, 4) = %v, want %v", fragments, want)
	}
}

func TestFragmentsRejectsTooManyWorkers(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for more workers than rows")
		}
	}()
	Fragments(3, 4)
}
