package subproc

import (
	"sync"
	"testing"
)

func TestListenersDeliverInRegistrationOrder(t *testing.T) {
	t.Parallel()

	var l listenerList[int]
	var order []string
	l.add(func(int, Unsubscribe) { order = append(order, "a") })
	l.add(func(int, Unsubscribe) { order = append(order, "b") })
	l.add(func(int, Unsubscribe) { order = append(order, "c") })

	l.deliver(1)

	if got := len(order); got != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("delivery order = %v, want [a b c]", order)
	}
}

func TestUnsubscribeMidDeliveryKeepsCurrentEventIntact(t *testing.T) {
	t.Parallel()

	var l listenerList[int]
	var got []string
	l.add(func(int, Unsubscribe) { got = append(got, "a") })
	l.add(func(v int, unsub Unsubscribe) {
		got = append(got, "b")
		unsub()
	})
	l.add(func(int, Unsubscribe) { got = append(got, "c") })

	// b unsubscribes during the first event; a and c still receive it.
	l.deliver(1)
	if len(got) != 3 {
		t.Fatalf("first event reached %v, want all three listeners", got)
	}

	got = nil
	l.deliver(2)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("second event reached %v, want [a c]", got)
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	var l listenerList[int]
	calls := 0
	l.add(func(v int, unsub Unsubscribe) {
		calls++
		unsub()
		unsub()
	})
	l.add(func(int, Unsubscribe) {})

	l.deliver(1)
	l.deliver(2)

	if calls != 1 {
		t.Fatalf("unsubscribed listener called %d times, want 1", calls)
	}
	if n := l.len(); n != 1 {
		t.Fatalf("registry holds %d entries, want 1", n)
	}
}

func TestRegisterFromInsideCallbackSeesNextEvent(t *testing.T) {
	t.Parallel()

	var l listenerList[int]
	var late []int
	registered := false
	l.add(func(v int, _ Unsubscribe) {
		if !registered {
			registered = true
			l.add(func(v int, _ Unsubscribe) { late = append(late, v) })
		}
	})

	l.deliver(1)
	l.deliver(2)

	// The listener registered during event 1 sees event 2 onward.
	if len(late) != 1 || late[0] != 2 {
		t.Fatalf("late listener saw %v, want [2]", late)
	}
}

func TestClearDropsAllEntries(t *testing.T) {
	t.Parallel()

	var l listenerList[int]
	calls := 0
	l.add(func(int, Unsubscribe) { calls++ })
	l.add(func(int, Unsubscribe) { calls++ })

	l.clear()
	l.deliver(1)

	if calls != 0 {
		t.Fatalf("listeners fired %d times after clear, want 0", calls)
	}
	if n := l.len(); n != 0 {
		t.Fatalf("registry holds %d entries after clear, want 0", n)
	}
}

func TestConcurrentRegistrationAndDelivery(t *testing.T) {
	t.Parallel()

	var l listenerList[int]
	var mu sync.Mutex
	seen := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.add(func(int, Unsubscribe) {
				mu.Lock()
				seen++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	// Single-producer delivery, as in the real controller.
	l.deliver(1)

	mu.Lock()
	defer mu.Unlock()
	if seen != 50 {
		t.Fatalf("delivery reached %d listeners, want 50", seen)
	}
}
