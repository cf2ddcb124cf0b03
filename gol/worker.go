package gol

import "sync/atomic"

// WorkerState is where a worker is in its lifecycle
type WorkerState int32

const (
	Spinning WorkerState = iota
	Stopping
	Exited
)

func (s WorkerState) String() string {
	switch s {
	case Spinning:
		return "Spinning"
	case Stopping:
		return "Stopping"
	case Exited:
		return "Exited"
	default:
		return "Incorrect State"
	}
}

// phase names one of the engine's three rendezvous points
type phase int

const (
	// phaseStart separates generations: nobody computes generation k+1
	// before everyone has committed generation k.
	phaseStart phase = iota
	// phaseCommit: nobody writes Current while a sibling may still be reading it.
	phaseCommit
	// phaseDone: the generation is fully committed.
	phaseDone
	numPhases
)

// role is a party to the rendezvous protocol. It is either a workerRole or the
// controllerRole.
type role interface {
	// joins reports whether the role arrives at the given rendezvous
	joins(p phase) bool
	// leave makes the role's final arrivals so nobody waits on it again
	leave(e *Engine)
}

type workerRole struct {
	fragment Fragment
}

func (workerRole) joins(phase) bool { return true }

// leave is called right after the worker passed phaseDone with the stop flag set
func (workerRole) leave(e *Engine) {
	e.barriers[phaseStart].Drop()
	e.barriers[phaseCommit].Drop()
	// Shutdown handshake with the controller and any siblings
	e.barriers[phaseDone].Wait()
}

// controllerRole is the caller of Tick and Close
type controllerRole struct{}

func (controllerRole) joins(p phase) bool { return p != phaseCommit }

// leave meets the idle workers at phaseStart, which proves every one of them
// has finished its previous flag check. Only then is the flag raised, so all
// workers see it after the same, last generation. The controller then waits
// for that generation to commit and withdraws from the final handshake.
func (controllerRole) leave(e *Engine) {
	e.barriers[phaseStart].Wait()
	e.stopping.Store(true)
	e.barriers[phaseStart].Drop()
	e.barriers[phaseDone].Wait()
	e.barriers[phaseDone].Drop()
}

type worker struct {
	role  workerRole
	state atomic.Int32
}

func (w *worker) setState(s WorkerState) {
	w.state.Store(int32(s))
}

func (w *worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// run is the worker loop. The worker only blocks at the three rendezvous
// points, and only looks at the stop flag after a generation is committed.
func (w *worker) run(e *Engine) {
	defer e.wg.Done()
	f := w.role.fragment
	for {
		e.barriers[phaseStart].Wait()
		e.grid.calculateNextState(f)
		e.barriers[phaseCommit].Wait()
		e.grid.updateState(f)
		e.barriers[phaseDone].Wait()

		if e.stopping.Load() {
			w.setState(Stopping)
			w.role.leave(e)
			w.setState(Exited)
			return
		}
	}
}
