// Package jobs provides batch normalization job management.
package jobs

import (
	"errors"
	"sync"
	"time"

	"github.com/kyiku/jatext/internal/model"
)

// ErrJobNotFound is returned when a job does not exist or has expired.
var ErrJobNotFound = errors.New("job not found")

// jobEntry holds a job and its creation time for expiry checking.
type jobEntry struct {
	Job       *model.Job
	CreatedAt time.Time
}

// Store manages jobs in memory.
// Jobs are only mutated through Update, so readers always get a snapshot.
type Store struct {
	jobs   map[string]*jobEntry
	mu     sync.RWMutex
	expiry time.Duration // 0 means no expiry
}

// NewStore creates a new Store with no expiry.
func NewStore() *Store {
	return &Store{
		jobs:   make(map[string]*jobEntry),
		expiry: 0,
	}
}

// NewStoreWithExpiry creates a new Store with the specified expiry duration.
func NewStoreWithExpiry(expiry time.Duration) *Store {
	return &Store{
		jobs:   make(map[string]*jobEntry),
		expiry: expiry,
	}
}

// Create registers a new queued job and returns a snapshot of it.
func (s *Store) Create(inputKey string, operations []string) model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := model.NewJob(inputKey, operations)
	s.jobs[job.ID] = &jobEntry{
		Job:       job,
		CreatedAt: time.Now(),
	}

	return job.Snapshot()
}

// Get retrieves a snapshot of a job by ID.
// Returns false if the job does not exist or has expired.
func (s *Store) Get(jobID string) (model.Job, bool) {
	s.mu.RLock()
	entry, exists := s.jobs[jobID]
	var snap model.Job
	if exists {
		snap = entry.Job.Snapshot()
	}
	s.mu.RUnlock()

	if !exists {
		return model.Job{}, false
	}

	if s.expired(entry) {
		s.Delete(jobID)
		return model.Job{}, false
	}

	return snap, true
}

// Update applies fn to the job under the store lock and returns the
// resulting snapshot. The job is left untouched if fn returns an error.
func (s *Store) Update(jobID string, fn func(*model.Job) error) (model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.jobs[jobID]
	if !exists || s.expired(entry) {
		return model.Job{}, ErrJobNotFound
	}

	working := entry.Job.Snapshot()
	if err := fn(&working); err != nil {
		return model.Job{}, err
	}
	*entry.Job = working

	return working.Snapshot(), nil
}

// Subscribe attaches a WebSocket connection to a job's status updates.
func (s *Store) Subscribe(jobID string, conn model.WebSocketConn) bool {
	_, err := s.Update(jobID, func(j *model.Job) error {
		j.Conn = conn
		return nil
	})
	return err == nil
}

// Unsubscribe detaches conn from every job it is subscribed to.
func (s *Store) Unsubscribe(conn model.WebSocketConn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.jobs {
		if entry.Job.Conn == conn {
			entry.Job.Conn = nil
		}
	}
}

// Delete removes a job by ID.
func (s *Store) Delete(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
}

// Count returns the number of stored jobs.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// PurgeExpired removes every expired job and returns how many were removed.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.jobs {
		if s.expired(entry) {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

func (s *Store) expired(entry *jobEntry) bool {
	return s.expiry > 0 && time.Since(entry.CreatedAt) > s.expiry
}
