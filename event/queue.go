package event

import (
	"sync/atomic"

	"github.com/ericre997/RatioRage/parameter"
)

// Queue is a lock-free MPSC ring buffer for game events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (input goroutine, frame loop)
//   - Consume: Single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type Queue struct {
	events    [parameter.EventQueueSize]GameEvent
	published [parameter.EventQueueSize]atomic.Bool
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
	dropped   atomic.Uint64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{}
}

// Push adds an event; safe for concurrent producers
func (q *Queue) Push(ev GameEvent) {
	for {
		tail := q.tail.Load()
		next := tail + 1
		if !q.tail.CompareAndSwap(tail, next) {
			continue
		}

		idx := tail & parameter.EventBufferMask
		q.events[idx] = ev
		q.published[idx].Store(true) // MUST be after write

		// Advance head if overwriting unread events
		head := q.head.Load()
		if next-head > parameter.EventQueueSize {
			if q.head.CompareAndSwap(head, next-parameter.EventQueueSize) {
				q.dropped.Add(1)
			}
		}
		return
	}
}

// Consume returns all fully published events in FIFO order
// Single consumer only
func (q *Queue) Consume() []GameEvent {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return nil
		}

		avail := tail - head
		if avail > parameter.EventQueueSize {
			avail = parameter.EventQueueSize
			head = tail - parameter.EventQueueSize
		}

		out := make([]GameEvent, 0, avail)
		for i := uint64(0); i < avail; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !q.published[idx].Load() {
				break // Writer incomplete
			}
			out = append(out, q.events[idx])
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate pending count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Dropped returns how many unread events were overwritten
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
