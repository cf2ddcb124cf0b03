package util

import "math/bits"

// BitBoard stores a whole board using individual bits instead of bytes
// This divides space required by 8
type BitBoard struct {
	RowLength int
	NumRows   int
	Bytes     []byte
}

// NewBitBoard allocates an all-dead board
func NewBitBoard(height, width int) *BitBoard {
	return &BitBoard{
		RowLength: width,
		NumRows:   height,
		Bytes:     make([]byte, (width*height+7)/8),
	}
}

// Get returns a cell as if the array was a 2d slice
func (b *BitBoard) Get(row, col int) bool {
	bit := uint(row*b.RowLength + col)
	// Perform bitwise operations to get the byte and bit indices
	return b.Bytes[bit>>3]&(1<<(bit&7)) != 0
}

// Set marks a cell alive
func (b *BitBoard) Set(row, col int) {
	bit := uint(row*b.RowLength + col)
	b.Bytes[bit>>3] |= 1 << (bit & 7)
}

// Flip toggles a cell between alive and dead
func (b *BitBoard) Flip(row, col int) {
	bit := uint(row*b.RowLength + col)
	b.Bytes[bit>>3] ^= 1 << (bit & 7)
}

// Count returns the number of alive cells
func (b *BitBoard) Count() int {
	n := 0
	for _, v := range b.Bytes {
		n += bits.OnesCount8(v)
	}
	return n
}

// Flipped returns the cells that differ between b and prev.
// A nil prev is treated as an all-dead board of the same size.
func (b *BitBoard) Flipped(prev *BitBoard) []Cell {
	flipped := make([]Cell, 0)
	for i, v := range b.Bytes {
		var old byte
		if prev != nil {
			old = prev.Bytes[i]
		}
		diff := v ^ old
		for diff != 0 {
			bit := i*8 + bits.TrailingZeros8(diff)
			flipped = append(flipped, Cell{X: bit % b.RowLength, Y: bit / b.RowLength})
			diff &= diff - 1
		}
	}
	return flipped
}

// Pixels returns the board as one byte per cell, 255 alive and 0 dead, for pgm output
func (b *BitBoard) Pixels() []byte {
	pixels := make([]byte, b.RowLength*b.NumRows)
	for i := range pixels {
		if b.Bytes[i>>3]&(1<<(uint(i)&7)) != 0 {
			pixels[i] = 255
		}
	}
	return pixels
}
