package subproc

import (
	"sync"
	"sync/atomic"
)

// Unsubscribe removes the listener it was handed to. Passed into every
// invocation so a callback can deregister itself before any subsequent
// event of its category is delivered. Safe to call more than once and
// from any goroutine.
type Unsubscribe func()

type listenerEntry[T any] struct {
	fn      func(T, Unsubscribe)
	removed atomic.Bool
}

// listenerList is one event category's ordered set of subscribers.
// Registration, unsubscription and delivery may happen concurrently from
// any goroutine, including from inside another listener's callback.
// Events of a single category come from a single producer, so no
// listener is ever invoked concurrently with itself.
type listenerList[T any] struct {
	mu      sync.Mutex
	entries []*listenerEntry[T]
}

func (l *listenerList[T]) add(fn func(T, Unsubscribe)) {
	e := &listenerEntry[T]{fn: fn}
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

// deliver invokes every live listener in registration order. The entry
// snapshot is taken up front: unsubscribing mid-delivery never disturbs
// the event currently being fanned out to other listeners, while the
// per-entry removed flag guarantees no delivery after unsubscription.
func (l *listenerList[T]) deliver(v T) {
	l.mu.Lock()
	snapshot := make([]*listenerEntry[T], len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	for _, e := range snapshot {
		if e.removed.Load() {
			continue
		}
		entry := e
		entry.fn(v, func() { l.remove(entry) })
	}
}

func (l *listenerList[T]) remove(e *listenerEntry[T]) {
	if e.removed.Swap(true) {
		return
	}
	l.mu.Lock()
	for i, cur := range l.entries {
		if cur == e {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}
	l.mu.Unlock()
}

// clear drops every entry so resources captured by callbacks become
// collectable once the category's terminal event has been delivered.
func (l *listenerList[T]) clear() {
	l.mu.Lock()
	entries := l.entries
	l.entries = nil
	l.mu.Unlock()
	for _, e := range entries {
		e.removed.Store(true)
	}
}

func (l *listenerList[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
