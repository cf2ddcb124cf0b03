package gol

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"uk.ac.bris.cs/fastlife/util"
)

// ioCommand allows requesting behaviour from the io (pgm) goroutine.
type ioCommand uint8

// This is a way of creating enums in Go.
// It will evaluate to:
//
//	ioOutput    = 0
//	ioCheckIdle = 1
//	ioQuit      = 2
const (
	ioOutput ioCommand = iota
	ioCheckIdle
	ioQuit
)

// ioImage is one generation to be written out
type ioImage struct {
	turn     int
	filename string
	board    *util.BitBoard
}

type ioChannels struct {
	command <-chan ioCommand
	idle    chan<- bool
	output  <-chan ioImage
	events  chan<- Event
}

// writePgmImage writes a board as a binary pgm, alive cells white.
func writePgmImage(dir string, image ioImage) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	path := filepath.Join(dir, image.filename+".pgm")
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	header := "P5\n" +
		strconv.Itoa(image.board.RowLength) + " " + strconv.Itoa(image.board.NumRows) + "\n" +
		strconv.Itoa(255) + "\n"
	if _, err = file.WriteString(header); err != nil {
		return "", err
	}
	if _, err = file.Write(image.board.Pixels()); err != nil {
		return "", err
	}
	return path, file.Sync()
}

// startIo should be the entrypoint of the io goroutine.
func startIo(p Params, c ioChannels) {
	for {
		// Block and wait for requests from the distributor
		switch <-c.command {
		case ioOutput:
			image := <-c.output
			path, err := writePgmImage(p.OutDir, image)
			if err != nil {
				fmt.Println("Error writing", image.filename+":", err)
				continue
			}
			fmt.Println("File", path, "output done!")
			c.events <- ImageOutputComplete{CompletedTurns: image.turn, Filename: image.filename}
		case ioCheckIdle:
			c.idle <- true
		case ioQuit:
			return
		}
	}
}
