// Package term draws a session in the terminal. Each cell is two columns wide
// so the board keeps a square aspect.
package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"uk.ac.bris.cs/fastlife/gol"
	"uk.ac.bris.cs/fastlife/util"
)

var (
	aliveStyle = tcell.StyleDefault.Background(tcell.ColorGreen)
	deadStyle  = tcell.StyleDefault.Background(tcell.ColorBlack)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Run takes over the terminal until the events channel closes
func Run(events <-chan gol.Event, keyPresses chan<- rune) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err = screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	run(screen, events, keyPresses)
	return nil
}

type view struct {
	screen tcell.Screen
	board  *util.BitBoard
	status string
	turn   int
	speed  int
	state  gol.State
}

func run(screen tcell.Screen, events <-chan gol.Event, keyPresses chan<- rune) {
	done := make(chan struct{})
	defer close(done)
	go pollKeys(screen, keyPresses, done)

	v := &view{screen: screen, state: gol.Executing}
	screen.Clear()
	for event := range events {
		switch e := event.(type) {
		case gol.SessionStarted:
			v.board = util.NewBitBoard(e.Height, e.Width)
			v.turn = 0
			v.status = fmt.Sprintf("%dx%d on %d workers", e.Width, e.Height, e.Threads)
			screen.Clear()
		case gol.CellsFlipped:
			for _, c := range e.Cells {
				v.board.Flip(c.Y, c.X)
			}
		case gol.TurnComplete:
			v.turn = e.CompletedTurns
			v.draw()
		case gol.SpeedChanged:
			v.speed = e.Speed
		case gol.StateChange:
			v.state = e.NewState
			v.draw()
		case gol.ImageOutputComplete:
			v.status = e.String()
		}
	}
}

func (v *view) draw() {
	// A session that failed to start never sends a board
	if v.board == nil {
		v.board = util.NewBitBoard(0, 0)
	}
	for y := 0; y < v.board.NumRows; y++ {
		for x := 0; x < v.board.RowLength; x++ {
			style := deadStyle
			if v.board.Get(y, x) {
				style = aliveStyle
			}
			v.screen.SetContent(x*2, y, ' ', nil, style)
			v.screen.SetContent(x*2+1, y, ' ', nil, style)
		}
	}

	line := fmt.Sprintf("turn %d  alive %d  speed %d  %v  %s", v.turn, v.board.Count(), v.speed, v.state, v.status)
	y := v.board.NumRows
	width, _ := v.screen.Size()
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		v.screen.SetContent(x, y, r, nil, textStyle)
	}
	v.screen.Show()
}

// pollKeys forwards key presses until the screen is finalised or the view stops
func pollKeys(screen tcell.Screen, keyPresses chan<- rune, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}

		var r rune
		switch key.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			r = 'q'
		case tcell.KeyRune:
			r = key.Rune()
		default:
			continue
		}
		select {
		case keyPresses <- r:
		case <-done:
			return
		}
	}
}
