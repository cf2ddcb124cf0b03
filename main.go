package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/cheggaaa/pb/v3"
	"github.com/gernest/wow"
	"github.com/gernest/wow/spin"
	"uk.ac.bris.cs/fastlife/gol"
	"uk.ac.bris.cs/fastlife/sdl"
	"uk.ac.bris.cs/fastlife/term"
)

func init() {
	// SDL must run on the main thread
	runtime.LockOSThread()
}

func main() {
	var params gol.Params

	flag.IntVar(&params.Threads, "t", runtime.NumCPU(),
		"Specify the number of worker goroutines to use. Clamped to the board height.")
	flag.IntVar(&params.ImageWidth, "w", gol.DefaultWidth,
		"Specify the width of the board.")
	flag.IntVar(&params.ImageHeight, "h", gol.DefaultHeight,
		"Specify the height of the board.")
	flag.IntVar(&params.Speed, "speed", gol.DefaultSpeed,
		"Specify the number of turns per second. 0 runs as fast as possible.")
	flag.IntVar(&params.Turns, "turns", 0,
		"Specify the number of turns to process. 0 runs until 'q'.")
	flag.Int64Var(&params.Seed, "seed", 0,
		"Specify the random seed for the board. 0 picks a new seed every session.")
	flag.StringVar(&params.OutDir, "out", gol.DefaultOutDir,
		"Specify the directory pgm files are written to.")
	headless := flag.Bool("headless", false,
		"Run without any display as fast as possible, showing a progress bar. Defaults to 1000 turns.")
	terminal := flag.Bool("term", false,
		"Draw the board in the terminal instead of a window.")
	noVis := flag.Bool("noVis", false,
		"Disables the display and prints events instead.")
	flag.Parse()

	if *headless {
		params.Speed = 0
		if params.Turns == 0 {
			params.Turns = 1000
		}
	}
	params.VisualUpdates = !*headless && !*noVis

	fmt.Println("Threads:", params.Threads)
	fmt.Println("Width:", params.ImageWidth)
	fmt.Println("Height:", params.ImageHeight)

	keyPresses := make(chan rune, 10)
	resizes := make(chan gol.Size, 1)
	events := make(chan gol.Event, 1000)

	gol.Run(params, events, keyPresses, resizes)
	switch {
	case *headless:
		runHeadless(params, events)
	case *terminal:
		if err := term.Run(events, keyPresses); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case *noVis:
		for event := range events {
			switch e := event.(type) {
			case gol.TurnComplete, gol.CellsFlipped:
			default:
				fmt.Printf("Completed Turns %-8v%v\n", e.GetCompletedTurns(), e)
			}
		}
	default:
		sdl.Run(params, events, keyPresses, resizes)
	}
}

// runHeadless shows a spinner while the workers start and stop and a progress
// bar over the turns in between
func runHeadless(p gol.Params, events <-chan gol.Event) {
	spinner := wow.New(os.Stdout, spin.Get(spin.Dots), " Starting workers")
	spinner.Start()
	var bar *pb.ProgressBar

	for event := range events {
		switch e := event.(type) {
		case gol.SessionStarted:
			spinner.PersistWith(spin.Spinner{Frames: []string{"✔"}}, " "+e.String())
			bar = pb.StartNew(p.Turns)
		case gol.TurnComplete:
			if bar != nil {
				bar.SetCurrent(int64(e.CompletedTurns))
			}
		case gol.FinalTurnComplete:
			if bar != nil {
				bar.Finish()
			}
			spinner = wow.New(os.Stdout, spin.Get(spin.Dots), " Stopping workers")
			spinner.Start()
			fmt.Println()
			fmt.Printf("Completed Turns %-8v%d alive\n", e.CompletedTurns, len(e.Alive))
		case gol.StateChange:
			if e.NewState == gol.Quitting {
				spinner.PersistWith(spin.Spinner{Frames: []string{"✔"}}, " Workers stopped")
			}
		case gol.ImageOutputComplete:
			fmt.Printf("Completed Turns %-8v%v\n", e.CompletedTurns, e)
		}
	}
}
