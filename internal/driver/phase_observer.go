package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary of one compilation.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration // zero for PhaseStart
}

// PhaseObserver receives phase events emitted by Compilation.Evaluate.
type PhaseObserver func(PhaseEvent)
