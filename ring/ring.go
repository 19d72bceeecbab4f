// Package ring implements the bounded byte queue between the asynchronous byte source and the
// sign's main loop.
//
// A Queue is safe for exactly one producer goroutine calling Push and one consumer goroutine
// calling Pop. The producer only ever writes the tail index and the consumer only ever writes the
// head index; each index is published with an atomic store after the slot it guards has been
// written or read, so no lock is needed.
package ring

import (
	"fmt"
	"sync/atomic"
)

// DefaultSize is the slot count used by the sign, holding up to 199 bytes.
const DefaultSize = 200

// Queue is a fixed-capacity single-producer/single-consumer byte ring. One slot is always kept
// free to tell a full queue from an empty one, so a queue of size N holds at most N-1 bytes.
type Queue struct {
	buf     []byte
	head    atomic.Uint32 // next slot to read, owned by the consumer
	tail    atomic.Uint32 // next slot to write, owned by the producer
	dropped atomic.Uint64
}

// New returns a queue with size slots. Size must be at least 2.
func New(size int) *Queue {
	if size < 2 {
		panic(fmt.Sprintf("ring: size %d too small", size))
	}
	return &Queue{buf: make([]byte, size)}
}

// Size is the number of slots; Cap is Size-1.
func (q *Queue) Size() int { return len(q.buf) }

// Cap is the maximum number of bytes held at once.
func (q *Queue) Cap() int { return len(q.buf) - 1 }

func (q *Queue) next(i uint32) uint32 {
	if i++; int(i) == len(q.buf) {
		return 0
	}
	return i
}

// Push appends b. If the queue is full the byte is dropped, counted, and Push returns false.
// Push must only be called from the producer.
func (q *Queue) Push(b byte) bool {
	tail := q.tail.Load()
	next := q.next(tail)
	if next == q.head.Load() {
		q.dropped.Add(1)
		return false
	}
	q.buf[tail] = b
	q.tail.Store(next)
	return true
}

// Pop removes and returns the oldest byte. The returned ok is false if the queue is empty.
// Pop must only be called from the consumer.
func (q *Queue) Pop() (b byte, ok bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return 0, false
	}
	b = q.buf[head]
	q.head.Store(q.next(head))
	return b, true
}

// IsEmpty reports whether there is nothing to pop.
func (q *Queue) IsEmpty() bool {
	return q.head.Load() == q.tail.Load()
}

// IsFull reports whether the next Push would drop its byte.
func (q *Queue) IsFull() bool {
	return q.head.Load() == q.next(q.tail.Load())
}

// Len is the number of bytes currently queued. It is a snapshot and may be stale by the time it
// is used if the other side is running.
func (q *Queue) Len() int {
	head, tail := int(q.head.Load()), int(q.tail.Load())
	if tail >= head {
		return tail - head
	}
	return len(q.buf) - head + tail
}

// Dropped is the number of bytes rejected by Push since the queue was created.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
