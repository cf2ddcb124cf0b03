package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Cell is a grid coordinate. X is the column, Y is the row.
type Cell struct {
	X, Y int
}

// GetAliveCells returns all the alive cells in a board, row by row
func GetAliveCells(board [][]bool) []Cell {
	aliveCells := make([]Cell, 0)
	for row := range board {
		for col, alive := range board[row] {
			if alive {
				aliveCells = append(aliveCells, Cell{X: col, Y: row})
			}
		}
	}
	return aliveCells
}

// ReadAliveCells reads a P5 pgm written by the session and returns its alive cells.
// Any non-zero pixel is alive.
func ReadAliveCells(path string, width, height int) ([]Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// The header is four whitespace separated fields, the pixels follow
	// a single whitespace byte after maxval.
	fields := strings.SplitN(string(data), "\n", 4)
	if len(fields) != 4 || fields[0] != "P5" {
		return nil, fmt.Errorf("%s: not a pgm file", path)
	}

	dims := strings.Fields(fields[1])
	if len(dims) != 2 {
		return nil, fmt.Errorf("%s: malformed dimensions %q", path, fields[1])
	}
	imageWidth, _ := strconv.Atoi(dims[0])
	if imageWidth != width {
		return nil, fmt.Errorf("%s: incorrect width %d, want %d", path, imageWidth, width)
	}
	imageHeight, _ := strconv.Atoi(dims[1])
	if imageHeight != height {
		return nil, fmt.Errorf("%s: incorrect height %d, want %d", path, imageHeight, height)
	}

	maxval, _ := strconv.Atoi(fields[2])
	if maxval != 255 {
		return nil, fmt.Errorf("%s: incorrect maxval/bit depth %d", path, maxval)
	}

	image := []byte(fields[3])
	if len(image) != width*height {
		return nil, fmt.Errorf("%s: %d pixels, want %d", path, len(image), width*height)
	}

	var cells []Cell
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if image[y*width+x] != 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells, nil
}

// Check panics on a non-nil error
func Check(err error) {
	if err != nil {
		panic(err)
	}
}
