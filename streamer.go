package subproc

import "io"

// readChunkSize is how many bytes a reader pulls per blocking read.
// Correctness does not depend on the value; byte order within a stream
// is preserved regardless of how writes are chunked.
const readChunkSize = 4096

// streamer drains one of the child's output pipes. Each non-empty chunk
// first bumps the shared last-activity timestamp, then is handed to the
// stream's listeners synchronously on this goroutine, so a slow listener
// applies backpressure all the way to the child's writes.
type streamer struct {
	r            io.Reader
	listeners    *listenerList[[]byte]
	lastActivity *atomicTime
	clock        Clock
}

// run reads until end-of-stream. Read errors are treated the same as
// EOF: the child's own exit is the authoritative termination signal.
func (s *streamer) run() {
	buf := make([]byte, readChunkSize)
	for {
		n, err := s.r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			s.lastActivity.store(s.clock.Now())
			s.listeners.deliver(chunk)
		}
		if err != nil {
			return
		}
	}
}
