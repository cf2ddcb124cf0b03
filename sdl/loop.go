package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"uk.ac.bris.cs/fastlife/gol"
)

const defaultScale = 4

// Run opens a window and draws the session until the events channel closes.
// A left click asks for a board ending at the clicked cell.
// It must be called from the main goroutine.
func Run(p gol.Params, events <-chan gol.Event, keyPresses chan<- rune, resizes chan<- gol.Size) {
	w := NewWindow(int32(p.ImageWidth), int32(p.ImageHeight), defaultScale)
	defer w.Destroy()

	st := status{width: p.ImageWidth, height: p.ImageHeight, speed: p.Speed, state: gol.Executing}

sdlLoop:
	for {
		for event := w.PollEvent(); event != nil; event = w.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				send(keyPresses, 'q')
			case *sdl.MouseButtonEvent:
				if size, ok := clickSize(e); ok {
					select {
					case resizes <- size:
					default:
					}
				}
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					break
				}
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE:
					send(keyPresses, 'q')
				case sdl.K_r:
					w.RandomiseColours()
					w.RenderFrame()
				case sdl.K_b:
					w.SetScale(w.Scale + 1)
				case sdl.K_v:
					w.SetScale(w.Scale - 1)
				default:
					// Letters and digits share their ASCII codes
					if e.Keysym.Sym < 128 {
						send(keyPresses, rune(e.Keysym.Sym))
					}
				}
			}
		}

		select {
		case event, ok := <-events:
			if !ok {
				break sdlLoop
			}
			if st.update(event) {
				w.SetTitle(st.String())
			}
			switch e := event.(type) {
			case gol.SessionStarted:
				w.Resize(int32(e.Width), int32(e.Height))
			case gol.CellsFlipped:
				for _, c := range e.Cells {
					w.FlipPixel(c.X, c.Y)
				}
			case gol.TurnComplete:
				w.RenderFrame()
			case gol.StateChange, gol.AliveCellsCount, gol.ImageOutputComplete, gol.FinalTurnComplete:
				fmt.Printf("Completed Turns %-8v%v\n", e.GetCompletedTurns(), e)
			}
		default:
			sdl.Delay(1)
		}
	}
}

// status is what the window title shows about the session
type status struct {
	width, height int
	threads       int
	turn          int
	alive         int
	speed         int
	state         gol.State
}

// update folds an event into the status and reports whether the title changed
func (s *status) update(event gol.Event) bool {
	switch e := event.(type) {
	case gol.SessionStarted:
		s.width, s.height = e.Width, e.Height
		s.threads = e.Threads
		s.turn = 0
		s.alive = 0
	case gol.TurnComplete:
		// Counted every turn but only shown with the next title change
		s.turn = e.CompletedTurns
		return false
	case gol.SpeedChanged:
		s.speed = e.Speed
	case gol.StateChange:
		s.state = e.NewState
	case gol.AliveCellsCount:
		s.turn = e.CompletedTurns
		s.alive = e.CellsCount
	default:
		return false
	}
	return true
}

func (s *status) String() string {
	return fmt.Sprintf("Fast Life  %dx%d  %d workers  turn %d  alive %d  speed %d  %v",
		s.width, s.height, s.threads, s.turn, s.alive, s.speed, s.state)
}

// clickSize turns a left button release into a board size ending at the
// clicked cell. Mouse coordinates are in cells once the logical size is set.
func clickSize(e *sdl.MouseButtonEvent) (gol.Size, bool) {
	if e.Type != sdl.MOUSEBUTTONUP || e.Button != sdl.BUTTON_LEFT {
		return gol.Size{}, false
	}
	if e.X <= 0 || e.Y <= 0 {
		return gol.Size{}, false
	}
	return gol.Size{Width: int(e.X), Height: int(e.Y)}, true
}

// send drops the key if the session is not keeping up or has already ended
func send(keyPresses chan<- rune, r rune) {
	select {
	case keyPresses <- r:
	default:
	}
}
