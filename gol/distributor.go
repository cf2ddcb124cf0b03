package gol

import (
	"fmt"
	"strconv"
	"time"

	"uk.ac.bris.cs/fastlife/util"
)

type distributorChannels struct {
	events     chan<- Event
	ioCommand  chan<- ioCommand
	ioIdle     <-chan bool
	ioOutput   chan<- ioImage
	keyPresses <-chan rune
	resizes    <-chan Size
}

// session is the state the distributor carries between turns.
// The engine is replaced on every resize or reinitialize.
type session struct {
	p        Params
	c        distributorChannels
	engine   *Engine
	width    int
	height   int
	speed    int
	paused   bool
	previous *util.BitBoard
}

// distributor owns the engine, paces its ticks and handles key presses.
// It closes the events channel when the session ends.
func distributor(p Params, c distributorChannels) {
	s := &session{
		p:      p,
		c:      c,
		width:  p.ImageWidth,
		height: p.ImageHeight,
		speed:  p.Speed,
	}

	if err := s.restart(); err != nil {
		println("Error starting engine:", err.Error())
		s.finish()
		return
	}

	// Every ticker tick send an AliveCellsCount event
	aliveTicker := time.NewTicker(2 * time.Second)
	defer aliveTicker.Stop()

	// With no speed limit the turn channel is always ready
	unlimited := make(chan time.Time)
	close(unlimited)
	var turnTicker *time.Ticker
	if s.speed > 0 {
		turnTicker = time.NewTicker(interval(s.speed))
		defer turnTicker.Stop()
	}

	for p.Turns == 0 || s.engine.Generation() < p.Turns {
		var turns <-chan time.Time
		if !s.paused {
			if turnTicker != nil {
				turns = turnTicker.C
			} else {
				turns = unlimited
			}
		}

		select {
		case <-turns:
			s.step()
		case <-aliveTicker.C:
			c.events <- AliveCellsCount{
				CompletedTurns: s.engine.Generation(),
				CellsCount:     s.engine.AliveCount(),
			}
		case key := <-c.keyPresses:
			command, ok := keyCommands[key]
			if !ok {
				continue
			}
			if command == quit {
				s.finish()
				return
			}
			if err := s.handle(command, turnTicker); err != nil {
				println("Error restarting engine:", err.Error())
				s.finish()
				return
			}
		case size := <-c.resizes:
			if err := s.resizeTo(size.Width, size.Height); err != nil {
				println("Error restarting engine:", err.Error())
				s.finish()
				return
			}
		}
	}
	s.finish()
}

func interval(speed int) time.Duration {
	return time.Second / time.Duration(speed)
}

// restart tears down the current engine, if any, and starts a fresh random
// one at the session's size.
func (s *session) restart() error {
	if s.engine != nil {
		s.engine.Close()
		s.engine = nil
	}
	e, err := New(Config{
		Width:   s.width,
		Height:  s.height,
		Threads: s.p.Threads,
		Seed:    s.p.Seed,
	})
	if err != nil {
		return err
	}
	s.engine = e
	s.previous = nil
	println("Started", e.Width(), "x", e.Height(), "on", e.Threads(), "workers")

	s.c.events <- SessionStarted{
		CompletedTurns: 0,
		Width:          e.Width(),
		Height:         e.Height(),
		Threads:        e.Threads(),
	}
	s.report()
	return nil
}

// step advances the engine by one generation
func (s *session) step() {
	s.engine.Tick()
	s.report()
}

// report sends the flipped cells of the current generation, if wanted,
// followed by a TurnComplete
func (s *session) report() {
	turn := s.engine.Generation()
	if s.p.VisualUpdates {
		board := s.engine.Snapshot()
		s.c.events <- CellsFlipped{CompletedTurns: turn, Cells: board.Flipped(s.previous)}
		s.previous = board
	}
	s.c.events <- TurnComplete{CompletedTurns: turn}
}

func (s *session) handle(command keyCommand, turnTicker *time.Ticker) error {
	turn := s.engine.Generation()
	switch command {
	case save:
		s.save()
	case pause:
		s.paused = !s.paused
		if s.paused {
			println("Pausing on turn", turn)
			s.c.events <- StateChange{turn, Paused}
		} else {
			println("Continuing")
			s.c.events <- StateChange{turn, Executing}
		}
	case speedUp, slowDown:
		// An unlimited session has no speed to change
		if turnTicker == nil {
			return nil
		}
		if command == speedUp {
			s.speed++
		} else if s.speed > 1 {
			s.speed--
		}
		turnTicker.Reset(interval(s.speed))
		s.c.events <- SpeedChanged{turn, s.speed}
	case reinitialize:
		return s.restart()
	default:
		width, height, changed := resize(command, s.width, s.height)
		if changed {
			return s.resizeTo(width, height)
		}
	}
	return nil
}

// resizeTo restarts the session on a new random board of the given size.
// Sizes without a cell are ignored.
func (s *session) resizeTo(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	s.width, s.height = width, height
	return s.restart()
}

// save hands the current generation to the io goroutine
func (s *session) save() {
	turn := s.engine.Generation()
	filename := strconv.Itoa(s.width) + "x" + strconv.Itoa(s.height) + "x" + strconv.Itoa(turn)
	println("Saving to file", filename)
	s.c.ioCommand <- ioOutput
	s.c.ioOutput <- ioImage{turn: turn, filename: filename, board: s.engine.Snapshot()}
}

// finish reports the final state, saves it, stops the engine and closes the
// events channel
func (s *session) finish() {
	turn := 0
	if s.engine != nil {
		turn = s.engine.Generation()
		s.c.events <- FinalTurnComplete{
			CompletedTurns: turn,
			Alive:          s.engine.AliveCells(),
		}
		// Finally, save the image to a new file
		s.save()
		s.engine.Close()
	}

	// Make sure that the Io has finished any output before exiting.
	s.c.ioCommand <- ioCheckIdle
	<-s.c.ioIdle
	s.c.ioCommand <- ioQuit

	s.c.events <- StateChange{turn, Quitting}
	fmt.Println("Session finished after", turn, "turns")
	// Close the channel to stop the front end gracefully. Removing may cause deadlock.
	close(s.c.events)
}
