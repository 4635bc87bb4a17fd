// Package subproc runs a single local child process per controller:
// spawning it, streaming its stdout/stderr to registered listeners,
// waiting race-free for termination, and optionally enforcing an
// escalating-signal policy when the process is silent or runs too long.
package subproc

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/runger/subproc/internal/fsx"
)

// Controller owns one child process for its whole lifetime. It is
// one-shot: once the process has terminated the controller retains only
// its final status. Multiple controllers share no state and may run
// concurrently without contention.
type Controller struct {
	desc         Descriptor
	path         string // resolved executable path
	clock        Clock
	isExecutable func(string) bool

	mu       sync.Mutex
	state    State
	exitCode int
	cmd      *exec.Cmd

	startedAt    time.Time
	lastActivity atomicTime

	onStart  listenerList[*Controller]
	onStdout listenerList[[]byte]
	onStderr listenerList[[]byte]
	onSignal listenerList[os.Signal]
	onTerm   listenerList[*Controller]

	mon     *monitor
	readers sync.WaitGroup
}

// Option adjusts a controller's collaborators at construction.
type Option func(*Controller)

// WithClock replaces the wall clock used for start-time and
// last-activity bookkeeping.
func WithClock(c Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithExecutableCheck replaces the executability probe consulted at
// construction.
func WithExecutableCheck(fn func(string) bool) Option {
	return func(ctrl *Controller) { ctrl.isExecutable = fn }
}

// New validates the descriptor and returns a controller in the
// not-started state. It resolves bare command names through PATH and
// fails with *CannotStartError when the target does not resolve to an
// existing, executable file. No process is spawned.
func New(desc Descriptor, opts ...Option) (*Controller, error) {
	c := &Controller{
		desc:         desc,
		clock:        systemClock{},
		isExecutable: fsx.IsExecutable,
		state:        StateNotStarted,
	}
	for _, opt := range opts {
		opt(c)
	}

	if desc.Policy != nil {
		if err := desc.Policy.validate(); err != nil {
			return nil, err
		}
	}

	path, err := fsx.Resolve(desc.Path)
	if err != nil {
		return nil, &CannotStartError{Path: desc.Path, Err: err}
	}
	if !c.isExecutable(path) {
		return nil, &CannotStartError{Path: desc.Path, Err: errors.New("not an executable file")}
	}
	c.path = path

	return c, nil
}

// OnStart registers a listener fired synchronously from Start, after
// the process is confirmed spawned. Registering after Start has already
// fired means the listener never fires.
func (c *Controller) OnStart(fn func(*Controller, Unsubscribe)) {
	c.onStart.add(fn)
}

// OnStdout registers a listener for raw stdout chunks. Listeners run on
// the reader goroutine in registration order; a slow listener applies
// backpressure to the child.
func (c *Controller) OnStdout(fn func([]byte, Unsubscribe)) {
	c.onStdout.add(fn)
}

// OnStderr registers a listener for raw stderr chunks.
func (c *Controller) OnStderr(fn func([]byte, Unsubscribe)) {
	c.onStderr.add(fn)
}

// OnSignal registers a listener fired when the escalation policy sends
// its signal.
func (c *Controller) OnSignal(fn func(os.Signal, Unsubscribe)) {
	c.onSignal.add(fn)
}

// OnTermination registers a listener fired synchronously from the wait
// path after the exit code has been reaped and all output drained.
// Run does not return until every termination listener has completed.
func (c *Controller) OnTermination(fn func(*Controller, Unsubscribe)) {
	c.onTerm.add(fn)
}

// Start spawns the child process with the descriptor's arguments,
// environment and working directory, starts the output readers and the
// escalation monitor if a policy is configured, and fires on-start
// listeners. It returns once the process is confirmed spawned; it does
// not block for output or termination. Calling Start twice returns
// ErrAlreadyStarted.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.state != StateNotStarted {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}

	cmd := exec.Command(c.path, c.desc.Args...)
	cmd.Dir = c.desc.Dir
	cmd.Env = c.desc.environ()
	setSysProcAttr(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		c.mu.Unlock()
		return &CannotStartError{Path: c.desc.Path, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		c.mu.Unlock()
		return &CannotStartError{Path: c.desc.Path, Err: err}
	}

	if err := cmd.Start(); err != nil {
		c.mu.Unlock()
		return &CannotStartError{Path: c.desc.Path, Err: err}
	}

	now := c.clock.Now()
	c.startedAt = now
	c.lastActivity.store(now)
	c.cmd = cmd
	c.state = StateRunning

	c.readers.Add(2)
	go c.drain(stdout, &c.onStdout)
	go c.drain(stderr, &c.onStderr)

	if c.desc.Policy != nil {
		c.mon = newMonitor(*c.desc.Policy, c.clock, now, &c.lastActivity,
			func(sig syscall.Signal) error { return signalGroup(cmd, sig) },
			func() { killGroup(cmd) },
			&c.onSignal)
		go c.mon.run()
	}
	c.mu.Unlock()

	c.onStart.deliver(c)
	return nil
}

func (c *Controller) drain(r io.Reader, listeners *listenerList[[]byte]) {
	defer c.readers.Done()
	s := &streamer{r: r, listeners: listeners, lastActivity: &c.lastActivity, clock: c.clock}
	s.run()
}

// Run starts the process and blocks until it has exited, both output
// streams have drained to end-of-stream, the monitor has stopped, and
// every termination listener has returned. There is deliberately no
// timeout: a blocking termination listener blocks the caller.
func (c *Controller) Run() error {
	if err := c.Start(); err != nil {
		return err
	}
	c.wait()
	return nil
}

// RunChecked is Run plus an exit-code check: it fails with
// *NonZeroExitError when the child's exit code is not zero.
func (c *Controller) RunChecked() error {
	if err := c.Run(); err != nil {
		return err
	}
	if code := c.Status().ExitCode; code != 0 {
		return &NonZeroExitError{Code: code}
	}
	return nil
}

// wait reaps the process. Ordering matters: both pipes must reach EOF
// before exec.Cmd.Wait, and the monitor must be fully stopped before
// the exit code is reaped so no signal can ever target a reaped (and
// possibly reused) pid. Termination listeners fire before control
// returns.
func (c *Controller) wait() {
	c.readers.Wait()

	if c.mon != nil {
		c.mon.stop()
	}

	err := c.cmd.Wait()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}

	c.mu.Lock()
	c.state = StateTerminated
	c.exitCode = code
	c.mu.Unlock()

	c.onTerm.deliver(c)

	// Terminal event delivered; release every remaining entry.
	c.onStart.clear()
	c.onStdout.clear()
	c.onStderr.clear()
	c.onSignal.clear()
	c.onTerm.clear()
}

// Status returns the current lifecycle value. Non-blocking, callable at
// any time from any goroutine.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{State: c.state, ExitCode: c.exitCode}
}

// ForceKill sends an unconditional kill to the child's process group.
// It is a silent no-op on a not-yet-started or already-terminated
// controller, and idempotent.
func (c *Controller) ForceKill() {
	c.mu.Lock()
	cmd := c.cmd
	running := c.state == StateRunning
	c.mu.Unlock()

	if !running || cmd == nil || cmd.Process == nil {
		return
	}
	killGroup(cmd)
}
