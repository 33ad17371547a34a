// devosync/queue.go
package devosync

import "sync"

// taskQueue is a thread-safe FIFO of apply closures. It is unbounded so a
// listener callback can always enqueue without blocking, which keeps the
// store's delivery path free of lock-ordering hazards. The run loop drains it
// on the coordination goroutine.
type taskQueue struct {
	mu     sync.Mutex
	tasks  []func()
	closed bool
	signal chan struct{} // buffered size 1, signals availability
}

func newTaskQueue() *taskQueue {
	return &taskQueue{
		tasks:  make([]func(), 0, 16),
		signal: make(chan struct{}, 1),
	}
}

func (q *taskQueue) push(t func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// pop returns the next task, or nil when the queue is currently empty.
func (q *taskQueue) pop() func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return nil
	}
	t := q.tasks[0]
	q.tasks = q.tasks[1:]
	return t
}

func (q *taskQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.tasks = nil
	q.mu.Unlock()
}
