package pool

// queue is a FIFO of pending tasks. It is not safe for concurrent use;
// the pool guards it with its mutex.
type queue struct {
	tasks []Task
	head  int
}

func (q *queue) push(t Task) {
	q.tasks = append(q.tasks, t)
}

// pop removes the head task. The queue must not be empty.
func (q *queue) pop() Task {
	t := q.tasks[q.head]
	q.tasks[q.head] = nil
	q.head++

	if q.head == len(q.tasks) {
		q.tasks = q.tasks[:0]
		q.head = 0
	} else if q.head > len(q.tasks)/2 && q.head >= 64 {
		n := copy(q.tasks, q.tasks[q.head:])
		clear(q.tasks[n:])
		q.tasks = q.tasks[:n]
		q.head = 0
	}

	return t
}

func (q *queue) len() int {
	return len(q.tasks) - q.head
}

func (q *queue) reset() {
	q.tasks = nil
	q.head = 0
}
