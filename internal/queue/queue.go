// Package queue provides the pending job queue.
package queue

import (
	"context"
	"sync"

	"github.com/kyiku/jatext/internal/model"
)

// QueuedJob represents a job waiting to be processed.
type QueuedJob struct {
	ID   string
	Conn model.WebSocketConn // Optional subscriber for position updates
}

// JobQueue is a FIFO of pending jobs.
type JobQueue struct {
	jobs   []*QueuedJob
	mu     sync.RWMutex
	notify chan struct{}
}

// NewJobQueue creates a new empty job queue.
func NewJobQueue() *JobQueue {
	return &JobQueue{
		jobs:   make([]*QueuedJob, 0),
		notify: make(chan struct{}, 1),
	}
}

// Add adds a job to the end of the queue by ID and subscriber connection.
// It returns the 1-indexed position the job was queued at.
func (q *JobQueue) Add(jobID string, conn model.WebSocketConn) int {
	return q.AddJob(&QueuedJob{ID: jobID, Conn: conn})
}

// AddJob adds a QueuedJob to the end of the queue and returns its position.
func (q *JobQueue) AddJob(job *QueuedJob) int {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	position := len(q.jobs)
	q.mu.Unlock()

	q.signal()
	return position
}

// Remove removes a job from the queue by ID.
// Returns false if the job was not queued.
func (q *JobQueue) Remove(jobID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, j := range q.jobs {
		if j.ID == jobID {
			q.jobs = append(q.jobs[:i], q.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Detach clears conn from every queued job so no more position updates
// are written to it.
func (q *JobQueue) Detach(conn model.WebSocketConn) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, j := range q.jobs {
		if j.Conn == conn {
			j.Conn = nil
		}
	}
}

// GetPosition returns the position of a job in the queue (1-indexed).
// Returns 0 and false if the job is not found.
func (q *JobQueue) GetPosition(jobID string) (int, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for i, j := range q.jobs {
		if j.ID == jobID {
			return i + 1, true
		}
	}
	return 0, false
}

// Len returns the number of jobs in the queue.
func (q *JobQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.jobs)
}

// PopFront removes and returns the first job in the queue.
// Returns nil if the queue is empty.
func (q *JobQueue) PopFront() *QueuedJob {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.jobs) == 0 {
		return nil
	}

	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job
}

// Pop blocks until a job is available or ctx is done.
func (q *JobQueue) Pop(ctx context.Context) (*QueuedJob, error) {
	for {
		if job := q.PopFront(); job != nil {
			// Wake another waiter if more work is pending.
			if q.Len() > 0 {
				q.signal()
			}
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		}
	}
}

type positionUpdate struct {
	conn     model.WebSocketConn
	jobID    string
	position int
}

// BroadcastPositions sends position updates to every subscribed job.
// Writes happen after the lock is released so a slow client does not
// block the queue.
func (q *JobQueue) BroadcastPositions() {
	q.mu.RLock()
	total := len(q.jobs)
	updates := make([]positionUpdate, 0, total)
	for i, job := range q.jobs {
		if job.Conn != nil {
			updates = append(updates, positionUpdate{conn: job.Conn, jobID: job.ID, position: i + 1})
		}
	}
	q.mu.RUnlock()

	for _, u := range updates {
		_ = u.conn.WriteJSON(map[string]interface{}{
			"type":     "queueUpdate",
			"job_id":   u.jobID,
			"position": u.position,
			"total":    total,
		})
	}
}

func (q *JobQueue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
