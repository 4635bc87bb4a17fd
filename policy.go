package subproc

import (
	"fmt"
	"syscall"
	"time"
)

// DefaultGrace is the window between the policy's first signal and the
// unconditional SIGKILL when the process fails to exit. Overridable per
// policy via the Grace field.
const DefaultGrace = 5 * time.Second

// Trigger selects what elapsed duration a Policy measures.
type Trigger int

const (
	// TriggerSilence fires when no stdout/stderr chunk has arrived for
	// the policy interval, measured from the later of process start and
	// the last chunk's arrival.
	TriggerSilence Trigger = iota
	// TriggerRuntime fires when the interval has elapsed since process
	// start, regardless of output activity.
	TriggerRuntime
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerSilence:
		return "silence"
	case TriggerRuntime:
		return "runtime"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// Policy describes automatic management of a child process: when the
// trigger condition holds, Signal is sent to the process group once; if
// the process is still alive after the grace window, it is killed.
type Policy struct {
	Trigger  Trigger
	Signal   syscall.Signal // SIGINT or SIGTERM
	Interval time.Duration
	Grace    time.Duration // 0 means DefaultGrace
}

// KillOnSilence returns a policy that signals the process once its
// stdout and stderr have both been quiet for interval.
func KillOnSilence(sig syscall.Signal, interval time.Duration) *Policy {
	return &Policy{Trigger: TriggerSilence, Signal: sig, Interval: interval}
}

// KillAfterRuntime returns a policy that signals the process once
// interval has elapsed since start.
func KillAfterRuntime(sig syscall.Signal, interval time.Duration) *Policy {
	return &Policy{Trigger: TriggerRuntime, Signal: sig, Interval: interval}
}

func (p *Policy) validate() error {
	if p.Signal != syscall.SIGINT && p.Signal != syscall.SIGTERM {
		return fmt.Errorf("policy signal must be SIGINT or SIGTERM, got %v", p.Signal)
	}
	if p.Interval <= 0 {
		return fmt.Errorf("policy interval must be positive, got %v", p.Interval)
	}
	if p.Grace < 0 {
		return fmt.Errorf("policy grace must not be negative, got %v", p.Grace)
	}
	return nil
}

func (p *Policy) grace() time.Duration {
	if p.Grace > 0 {
		return p.Grace
	}
	return DefaultGrace
}

// pollInterval returns how often the monitor re-checks the trigger. Kept
// small relative to the configured interval so sub-10ms policies still
// fire promptly.
func (p *Policy) pollInterval() time.Duration {
	poll := p.Interval / 10
	if poll < 200*time.Microsecond {
		poll = 200 * time.Microsecond
	}
	if poll > 10*time.Millisecond {
		poll = 10 * time.Millisecond
	}
	return poll
}
