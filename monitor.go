package subproc

import (
	"os"
	"sync"
	"syscall"
	"time"
)

// monitor enforces a Policy against a running process. It polls the
// configured trigger on a fine-grained ticker, sends the policy signal
// at most once, and escalates to an unconditional kill if the process
// outlives the grace window.
//
// stop is exclusive with every signal-sending path via mu: once stop
// has returned, no signal can be sent and no on-signal listener can
// fire. The controller calls stop before declaring the process
// terminated, so a process that exits naturally is never signalled.
type monitor struct {
	policy       Policy
	clock        Clock
	startedAt    time.Time
	lastActivity *atomicTime
	sendSignal   func(syscall.Signal) error
	kill         func()
	onSignal     *listenerList[os.Signal]

	mu      sync.Mutex
	stopped bool
	fired   bool

	stopCh chan struct{}
	doneCh chan struct{}
}

func newMonitor(p Policy, clock Clock, startedAt time.Time, lastActivity *atomicTime,
	sendSignal func(syscall.Signal) error, kill func(), onSignal *listenerList[os.Signal]) *monitor {
	return &monitor{
		policy:       p,
		clock:        clock,
		startedAt:    startedAt,
		lastActivity: lastActivity,
		sendSignal:   sendSignal,
		kill:         kill,
		onSignal:     onSignal,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

func (m *monitor) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.policy.pollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			if m.due() {
				m.fire()
				return
			}
		}
	}
}

func (m *monitor) due() bool {
	now := m.clock.Now()
	switch m.policy.Trigger {
	case TriggerRuntime:
		return now.Sub(m.startedAt) >= m.policy.Interval
	default:
		return now.Sub(m.lastActivity.load()) >= m.policy.Interval
	}
}

// fire sends the policy signal and notifies on-signal listeners, then
// arms the grace watch. Listener delivery happens under mu so that once
// stop has returned, the signal is guaranteed not to have been reported
// either.
func (m *monitor) fire() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped || m.fired {
		return
	}
	m.fired = true
	_ = m.sendSignal(m.policy.Signal)
	m.onSignal.deliver(m.policy.Signal)
	go m.graceWatch()
}

// graceWatch kills the process if it is still being monitored when the
// grace window closes.
func (m *monitor) graceWatch() {
	timer := time.NewTimer(m.policy.grace())
	defer timer.Stop()

	select {
	case <-m.stopCh:
	case <-timer.C:
		m.mu.Lock()
		if !m.stopped {
			m.kill()
		}
		m.mu.Unlock()
	}
}

// stop shuts the monitor down and waits for its polling goroutine to
// exit. After stop returns, neither the policy signal nor the grace
// kill can be delivered.
func (m *monitor) stop() {
	m.mu.Lock()
	if !m.stopped {
		m.stopped = true
		close(m.stopCh)
	}
	m.mu.Unlock()
	<-m.doneCh
}
