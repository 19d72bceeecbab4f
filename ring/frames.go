package ring

import "sync/atomic"

// FrameCounter counts frame terminators that have been received but not yet consumed. The
// producer increments it, the consumer decrements it; both are single atomic read-modify-write
// operations so neither side can lose the other's update.
type FrameCounter struct {
	n atomic.Int32
}

// Add records a received terminator.
func (c *FrameCounter) Add() {
	c.n.Add(1)
}

// Done records a consumed terminator. The count never goes below zero.
func (c *FrameCounter) Done() {
	for {
		n := c.n.Load()
		if n <= 0 {
			return
		}
		if c.n.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Pending is the number of queued terminators.
func (c *FrameCounter) Pending() int {
	return int(c.n.Load())
}
