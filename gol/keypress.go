package gol

// keyCommand is a session instruction decoded from a key press
type keyCommand uint8

const (
	save keyCommand = iota
	quit
	pause
	speedUp
	slowDown
	widen
	narrow
	heighten
	shorten
	reinitialize
)

// keyCommands maps the keys the session understands.
// Anything else is left to the front end.
var keyCommands = map[rune]keyCommand{
	's': save,
	'q': quit,
	'p': pause,
	'c': speedUp,
	'z': slowDown,
	'1': widen,
	'2': narrow,
	'3': heighten,
	'4': shorten,
	'x': reinitialize,
}

// resizeStep is how many cells a resize key adds or removes, and the
// smallest dimension a resize can reach.
const resizeStep = 5

// resize returns the new size for a resize command and whether it changed
func resize(command keyCommand, width, height int) (int, int, bool) {
	switch command {
	case widen:
		return width + resizeStep, height, true
	case narrow:
		if width > resizeStep {
			return width - resizeStep, height, true
		}
	case heighten:
		return width, height + resizeStep, true
	case shorten:
		if height > resizeStep {
			return width, height - resizeStep, true
		}
	}
	return width, height, false
}
