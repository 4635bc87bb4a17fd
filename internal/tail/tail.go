// Package tail provides a fixed-capacity tail buffer for capturing the
// end of a process's output stream.
package tail

import "sync"

// DefaultSize is the default buffer capacity (4KB).
const DefaultSize = 4096

// Buffer is an io.Writer that retains only the last N bytes written,
// discarding the oldest bytes when full. Safe for concurrent use; the
// stdout and stderr reader goroutines may share one logging path.
type Buffer struct {
	mu       sync.Mutex
	buf      []byte
	capacity int
	size     int
}

// New creates a buffer with the given capacity. Non-positive capacities
// fall back to DefaultSize.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultSize
	}
	return &Buffer{
		buf:      make([]byte, capacity),
		capacity: capacity,
	}
}

// Write implements io.Writer. Always returns len(p), nil.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(p)
	if n == 0 {
		return 0, nil
	}

	if n >= b.capacity {
		// Larger than the whole buffer: keep only the final bytes.
		copy(b.buf, p[n-b.capacity:])
		b.size = b.capacity
		return n, nil
	}

	avail := b.capacity - b.size
	if n <= avail {
		copy(b.buf[b.size:], p)
		b.size += n
	} else {
		// Shift the oldest bytes out to make room.
		discard := n - avail
		copy(b.buf, b.buf[discard:b.size])
		b.size -= discard
		copy(b.buf[b.size:], p)
		b.size += n
	}

	return n, nil
}

// Bytes returns a copy of the retained tail.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]byte, b.size)
	copy(out, b.buf[:b.size])
	return out
}

// String returns the retained tail as a string.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Len returns the number of bytes currently retained.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}
