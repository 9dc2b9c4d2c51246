package realtime

import (
	"errors"
	"fmt"
	"sync"
)

// Errors returned by sendQueue.Enqueue.
var (
	ErrQueueClosed = errors.New("send queue is closed")
	ErrQueueFull   = errors.New("send queue is full")
)

// sendQueue is the bounded outbox of one connection. Enqueue never blocks.
type sendQueue struct {
	mu     sync.Mutex
	frames chan []byte
	closed bool
}

func newSendQueue(size int) *sendQueue {
	if size <= 0 {
		size = 1
	}
	return &sendQueue{frames: make(chan []byte, size)}
}

// Enqueue adds a frame, or fails when the queue is full or closed.
func (q *sendQueue) Enqueue(frame []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.frames <- frame:
		return nil
	default:
		return fmt.Errorf("%w: capacity %d reached", ErrQueueFull, cap(q.frames))
	}
}

// Close stops further enqueues. Frames already queued can still be drained.
func (q *sendQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.frames)
	}
}

// Chan returns the channel the writer drains.
func (q *sendQueue) Chan() <-chan []byte {
	return q.frames
}

// Len reports how many frames are waiting.
func (q *sendQueue) Len() int {
	return len(q.frames)
}
