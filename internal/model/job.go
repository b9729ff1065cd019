// Package model provides data models for the application.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyiku/jatext/kana"
)

// Status constants for job state
const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// ErrInvalidTransition is returned when a job cannot move to a status.
var ErrInvalidTransition = errors.New("invalid status transition")

// WebSocketConn defines the interface for WebSocket connections.
type WebSocketConn interface {
	WriteMessage(messageType int, data []byte) error
	WriteJSON(v interface{}) error
	Close() error
}

// Job represents a batch normalization of one stored text object.
type Job struct {
	ID         string    // UUID
	InputKey   string    // Object key of the source text
	Operations []string  // Pipeline operation names
	Status     string    // Current status
	CreatedAt  time.Time // When the job was submitted
	UpdatedAt  time.Time // Last status change

	// Result fields
	OutputKey string               // Object key of the normalized text
	Counts    *kana.CharacterTypes // Character tally of the normalized text
	Error     string               // Failure reason

	// WebSocket connection subscribed to status updates
	Conn WebSocketConn
}

// NewJob creates a new queued Job.
func NewJob(inputKey string, operations []string) *Job {
	now := time.Now()
	return &Job{
		ID:         uuid.New().String(),
		InputKey:   inputKey,
		Operations: append([]string(nil), operations...),
		Status:     StatusQueued,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// validTransitions defines allowed status transitions.
var validTransitions = map[string][]string{
	StatusQueued:  {StatusRunning, StatusFailed},
	StatusRunning: {StatusDone, StatusFailed},
	StatusDone:    {},
	StatusFailed:  {},
}

// CanTransitionTo checks if the job can transition to the given status.
func (j *Job) CanTransitionTo(status string) bool {
	allowedStatuses, ok := validTransitions[j.Status]
	if !ok {
		return false
	}

	for _, allowed := range allowedStatuses {
		if allowed == status {
			return true
		}
	}
	return false
}

// TransitionTo moves the job to the given status.
func (j *Job) TransitionTo(status string) error {
	if !j.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.Status, status)
	}
	j.Status = status
	j.UpdatedAt = time.Now()
	return nil
}

// Complete marks a running job as done with its result.
func (j *Job) Complete(outputKey string, counts kana.CharacterTypes) error {
	if err := j.TransitionTo(StatusDone); err != nil {
		return err
	}
	j.OutputKey = outputKey
	j.Counts = &counts
	return nil
}

// Fail marks the job as failed with the given reason.
func (j *Job) Fail(reason string) error {
	if err := j.TransitionTo(StatusFailed); err != nil {
		return err
	}
	j.Error = reason
	return nil
}

// IsFinished reports whether the job reached a terminal status.
func (j *Job) IsFinished() bool {
	return j.Status == StatusDone || j.Status == StatusFailed
}

// Snapshot returns a copy of the job that is safe to hand out.
func (j *Job) Snapshot() Job {
	cp := *j
	cp.Operations = append([]string(nil), j.Operations...)
	if j.Counts != nil {
		counts := *j.Counts
		cp.Counts = &counts
	}
	return cp
}
