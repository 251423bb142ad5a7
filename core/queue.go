package orchestration

import (
	"sync"

	"github.com/orpilot/orvoice-core/core/segment"
)

const defaultQueueSize = 8

// windowQueue is the bounded buffer between the segmenter and the inference
// worker. When capture outpaces inference the oldest queued window is
// discarded: the most recent command matters more than a stale one.
type windowQueue struct {
	mu      sync.Mutex
	windows chan segment.Window
	closed  bool
	onDrop  func(segment.Window)
}

func newWindowQueue(size int, onDrop func(segment.Window)) *windowQueue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &windowQueue{
		windows: make(chan segment.Window, size),
		onDrop:  onDrop,
	}
}

// push enqueues a window, evicting the oldest queued window when full.
// It never blocks the caller.
func (q *windowQueue) push(w segment.Window) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}

	for {
		select {
		case q.windows <- w:
			return
		default:
		}
		select {
		case dropped := <-q.windows:
			if q.onDrop != nil {
				q.onDrop(dropped)
			}
		default:
			// The worker drained the queue between the two selects.
		}
	}
}

// close stops accepting windows. Queued windows remain readable so the
// worker can drain before shutting down.
func (q *windowQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.windows)
	}
}
