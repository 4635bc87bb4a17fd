package subproc

import (
	"errors"
	"fmt"
)

var errProcessNotStarted = errors.New("process not started")

// ErrAlreadyStarted is returned by Start when the controller has already
// spawned its process. A controller is one-shot and cannot be reused.
var ErrAlreadyStarted = errors.New("process already started")

// CannotStartError reports a target that cannot be spawned: a missing or
// non-executable path discovered at construction, or an OS-level spawn
// rejection (permissions, missing interpreter) surfaced at Start.
type CannotStartError struct {
	Path string
	Err  error
}

func (e *CannotStartError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot start %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("cannot start %s", e.Path)
}

func (e *CannotStartError) Unwrap() error {
	return e.Err
}

// NonZeroExitError is returned by RunChecked when the child exits with a
// nonzero code. Run never inspects the exit code itself.
type NonZeroExitError struct {
	Code int
}

func (e *NonZeroExitError) Error() string {
	return fmt.Sprintf("process exited with code %d", e.Code)
}
