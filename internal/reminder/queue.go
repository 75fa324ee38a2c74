package reminder

import "time"

// task is one pending reminder firing for a user.
type task struct {
	fireAt time.Time
	seq    uint64 // insertion order, tiebreak for equal fire times
	userID string
}

// taskQueue is a min-heap of tasks ordered by fire time, then insertion
// order. Implements container/heap.Interface.
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].fireAt.Equal(q[j].fireAt) {
		return q[i].seq < q[j].seq
	}
	return q[i].fireAt.Before(q[j].fireAt)
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) {
	*q = append(*q, x.(*task))
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
