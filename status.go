package subproc

import "fmt"

// State is the controller's lifecycle phase. Transitions are monotonic:
// StateNotStarted -> StateRunning -> StateTerminated, never backward.
type State int

const (
	// StateNotStarted means Start has not been called yet.
	StateNotStarted State = iota
	// StateRunning means the child process has been spawned and has not
	// been reaped.
	StateRunning
	// StateTerminated means the exit code has been reaped and all
	// termination listeners have been notified.
	StateTerminated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Status is the externally observable lifecycle value of a controller.
// ExitCode is meaningful only when State is StateTerminated; a process
// killed by a signal reports -1, matching os/exec.
type Status struct {
	State    State
	ExitCode int
}

// String formats the status for logs and error messages.
func (s Status) String() string {
	if s.State == StateTerminated {
		return fmt.Sprintf("terminated(%d)", s.ExitCode)
	}
	return s.State.String()
}
