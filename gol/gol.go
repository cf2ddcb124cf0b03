package gol

// Params provides the details of how to run the Game of Life.
type Params struct {
	// Threads is the number of engine workers; zero uses every CPU.
	Threads     int
	ImageWidth  int
	ImageHeight int
	// Speed is the target turns per second; zero runs as fast as possible.
	Speed int
	// Turns stops the session after that many turns; zero runs until 'q'.
	Turns int
	// Seed for the random grid; zero picks a new one every session.
	Seed int64
	// VisualUpdates sends a CellsFlipped event every turn.
	VisualUpdates bool
	// OutDir is where pgm files are written.
	OutDir string
}

// Size is a board size requested by a front end, in cells
type Size struct {
	Width, Height int
}

const (
	DefaultWidth  = 210
	DefaultHeight = 120
	DefaultSpeed  = 121
	DefaultOutDir = "out"
)

// Run starts the processing of Game of Life. It starts the session and io
// goroutines and returns straight away; events is closed when the session ends.
// Each size received on resizes restarts the session at that size; either
// input channel may be nil.
func Run(p Params, events chan<- Event, keyPresses <-chan rune, resizes <-chan Size) {
	if p.ImageWidth == 0 {
		p.ImageWidth = DefaultWidth
	}
	if p.ImageHeight == 0 {
		p.ImageHeight = DefaultHeight
	}
	if p.OutDir == "" {
		p.OutDir = DefaultOutDir
	}

	ioCommand := make(chan ioCommand)
	ioIdle := make(chan bool)
	ioOutput := make(chan ioImage)

	ioChannels := ioChannels{
		command: ioCommand,
		idle:    ioIdle,
		output:  ioOutput,
		events:  events,
	}
	go startIo(p, ioChannels)

	distributorChannels := distributorChannels{
		events:     events,
		ioCommand:  ioCommand,
		ioIdle:     ioIdle,
		ioOutput:   ioOutput,
		keyPresses: keyPresses,
		resizes:    resizes,
	}
	go distributor(p, distributorChannels)
}
