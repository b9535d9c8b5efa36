package input

import "sync"

// pendingQueue is an unbounded FIFO of commands. Any goroutine may push;
// only the owning manager drains.
//
// Contract:
//   - commands pushed before Drain returns are in its snapshot or the next one, never both.
//   - Drain clears the queue.
type pendingQueue struct {
	mu    sync.Mutex
	items []Command
	spare []Command
}

func (q *pendingQueue) Push(c Command) {
	q.mu.Lock()
	q.items = append(q.items, c)
	q.mu.Unlock()
}

// Drain returns every queued command in arrival order. The returned slice
// is only valid until the next call to Drain.
func (q *pendingQueue) Drain() []Command {
	q.mu.Lock()
	out := q.items
	clear(q.spare)
	q.items = q.spare[:0]
	q.spare = out
	q.mu.Unlock()
	return out
}

func (q *pendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
