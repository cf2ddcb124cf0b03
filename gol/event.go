package gol

import (
	"fmt"

	"uk.ac.bris.cs/fastlife/util"
)

// Event represents any Game of Life event that needs to be communicated to the user.
type Event interface {
	// Stringer allows each event to be printed by the GUI
	fmt.Stringer
	// GetCompletedTurns should return the number of fully completed turns.
	GetCompletedTurns() int
}

// State represents a change in the state of execution.
type State int

const (
	Paused State = iota
	Executing
	Quitting
)

// String methods allow the different types of Events and States to be printed.
func (state State) String() string {
	switch state {
	case Paused:
		return "Paused"
	case Executing:
		return "Executing"
	case Quitting:
		return "Quitting"
	default:
		return "Incorrect State"
	}
}

// SessionStarted is sent whenever a new engine starts, on startup and after
// every resize or reinitialize. Front ends should reset their canvas.
type SessionStarted struct {
	CompletedTurns int
	Width          int
	Height         int
	Threads        int
}

// CellsFlipped carries every cell whose state changed in CompletedTurns.
// The batch for turn 0 holds every initially alive cell.
type CellsFlipped struct {
	CompletedTurns int
	Cells          []util.Cell
}

// TurnComplete is sent once a generation has been committed.
type TurnComplete struct {
	CompletedTurns int
}

// AliveCellsCount is sent every 2 seconds.
type AliveCellsCount struct {
	CompletedTurns int
	CellsCount     int
}

// SpeedChanged is sent when the target ticks per second change.
type SpeedChanged struct {
	CompletedTurns int
	Speed          int
}

// StateChange is sent when the session is paused, resumed or quits.
type StateChange struct {
	CompletedTurns int
	NewState       State
}

// ImageOutputComplete is sent once a pgm has been written.
type ImageOutputComplete struct {
	CompletedTurns int
	Filename       string
}

// FinalTurnComplete is sent when the session ends, with every alive cell.
type FinalTurnComplete struct {
	CompletedTurns int
	Alive          []util.Cell
}

func (event SessionStarted) String() string {
	return fmt.Sprintf("%dx%d on %d workers", event.Width, event.Height, event.Threads)
}

func (event SessionStarted) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event CellsFlipped) String() string {
	return fmt.Sprintf("%d cells flipped", len(event.Cells))
}

func (event CellsFlipped) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event TurnComplete) String() string {
	return ""
}

func (event TurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event AliveCellsCount) String() string {
	return fmt.Sprintf("Alive Cells %v", event.CellsCount)
}

func (event AliveCellsCount) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event SpeedChanged) String() string {
	return fmt.Sprintf("Speed %d turns/s", event.Speed)
}

func (event SpeedChanged) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event StateChange) String() string {
	return fmt.Sprintf("%v", event.NewState)
}

func (event StateChange) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event ImageOutputComplete) String() string {
	return fmt.Sprintf("File %v Output Done", event.Filename)
}

func (event ImageOutputComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event FinalTurnComplete) String() string {
	return "Final Turn Complete"
}

func (event FinalTurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}
