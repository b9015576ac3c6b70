package event

import "sync"

// Queue is a double-buffered input queue. Platform goroutines Push at any
// time; the frame loop calls Swap once per frame and reads a stable batch.
// Inputs pushed in frame N are delivered in frame N+1.
type Queue struct {
	mu    sync.Mutex // protects back
	front []Input
	back  []Input
}

func NewQueue() *Queue {
	return &Queue{
		front: make([]Input, 0, 16),
		back:  make([]Input, 0, 16),
	}
}

// Push queues an input into the back buffer.
func (q *Queue) Push(in Input) {
	q.mu.Lock()
	q.back = append(q.back, in)
	q.mu.Unlock()
}

// Swap rotates back→front and clears the new back buffer. The returned
// slice is valid until the next Swap.
func (q *Queue) Swap() []Input {
	q.mu.Lock()
	q.front, q.back = q.back, q.front[:0]
	q.mu.Unlock()
	return q.front
}

// Pending returns how many inputs wait for the next Swap.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.back)
}
