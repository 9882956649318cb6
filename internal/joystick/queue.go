package joystick

// QueueCapacity is the number of moves the queue holds.
const QueueCapacity = 8

// Queue is a fixed-capacity FIFO of moves.
// Pushing onto a full queue drops the move; input is lossy, never blocking.
type Queue struct {
	slots [QueueCapacity]Move
	head  int // index of the oldest move
	n     int
}

// Push appends a move. It returns false if the queue was full and the move
// was dropped.
func (q *Queue) Push(m Move) bool {
	if q.n == QueueCapacity {
		return false
	}
	q.slots[(q.head+q.n)%QueueCapacity] = m
	q.n++
	return true
}

// Pop removes and returns the oldest move, or MoveNone if the queue is empty.
func (q *Queue) Pop() Move {
	if q.n == 0 {
		return MoveNone
	}
	m := q.slots[q.head]
	q.slots[q.head] = MoveNone
	q.head = (q.head + 1) % QueueCapacity
	q.n--
	return m
}

// Len returns the number of queued moves.
func (q *Queue) Len() int {
	return q.n
}

// Full reports whether another Push would be dropped.
func (q *Queue) Full() bool {
	return q.n == QueueCapacity
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.slots = [QueueCapacity]Move{}
	q.head = 0
	q.n = 0
}

// Snapshot returns the queued moves, oldest first.
func (q *Queue) Snapshot() []Move {
	out := make([]Move, q.n)
	for i := range out {
		out[i] = q.slots[(q.head+i)%QueueCapacity]
	}
	return out
}
