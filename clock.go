package subproc

import (
	"sync/atomic"
	"time"
)

// Clock supplies timestamps for start-time and last-activity bookkeeping.
// Injected via WithClock so silence and runtime computations are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// atomicTime is a time.Time readable and writable from multiple
// goroutines without a lock. Stored as Unix nanoseconds.
type atomicTime struct {
	ns atomic.Int64
}

func (t *atomicTime) store(tm time.Time) {
	t.ns.Store(tm.UnixNano())
}

func (t *atomicTime) load() time.Time {
	return time.Unix(0, t.ns.Load())
}
