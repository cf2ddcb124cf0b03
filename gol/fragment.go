package gol

// Fragment is a half-open range of rows [StartRow, EndRow) owned by one worker
type Fragment struct {
	StartRow int
	EndRow   int
}

// Rows returns the number of rows in the fragment
func (f Fragment) Rows() int {
	return f.EndRow - f.StartRow
}

// Fragments divides height rows between workers.
// Every worker gets height/workers rows and the last one takes any remainder,
// so the fragments are contiguous and cover [0, height) exactly.
// workers must be between 1 and height.
func Fragments(height, workers int) []Fragment {
	if workers < 1 || workers > height {
		panic("gol: worker count must be between 1 and the grid height")
	}
	fragHeight := height / workers
	fragments := make([]Fragment, workers)
	for w := 0; w < workers; w++ {
		start := w * fragHeight
		end := (w + 1) * fragHeight

		// Give any remaining rows to the last worker
		if w == workers-1 {
			end = height
		}
		fragments[w] = Fragment{StartRow: start, EndRow: end}
	}
	return fragments
}
