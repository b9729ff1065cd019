package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kyiku/jatext/internal/model"
	"github.com/kyiku/jatext/internal/pipeline"
	"github.com/kyiku/jatext/internal/queue"
	"github.com/kyiku/jatext/kana"
)

// ErrNotCancelable is returned when cancelling a job that already left the queue.
var ErrNotCancelable = errors.New("job is not queued")

// cancelReason is recorded on jobs cancelled by a client.
const cancelReason = "canceled"

// Normalizer applies a pipeline to a stored text object.
type Normalizer interface {
	NormalizeObject(ctx context.Context, key string, p pipeline.Pipeline) (outputKey, normalized string, err error)
}

// Service runs batch normalization jobs with a pool of workers.
type Service struct {
	store       *Store
	queue       *queue.JobQueue
	normalizer  Normalizer
	workers     int
	logger      *zap.Logger
	purgeTicker time.Duration
}

// NewService creates a new Service. workers below 1 is treated as 1.
func NewService(store *Store, q *queue.JobQueue, normalizer Normalizer, workers int, logger *zap.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:       store,
		queue:       q,
		normalizer:  normalizer,
		workers:     workers,
		logger:      logger,
		purgeTicker: time.Minute,
	}
}

// Submit validates the operations, stores a new job and queues it.
// It returns the job and its 1-indexed queue position.
func (s *Service) Submit(inputKey string, operations []string, conn model.WebSocketConn) (model.Job, int, error) {
	if _, err := pipeline.Parse(operations); err != nil {
		return model.Job{}, 0, err
	}

	job := s.store.Create(inputKey, operations)
	if conn != nil {
		s.store.Subscribe(job.ID, conn)
	}
	position := s.queue.Add(job.ID, conn)
	s.logger.Info("job queued",
		zap.String("job_id", job.ID),
		zap.String("input_key", inputKey),
		zap.Int("position", position),
	)

	return job, position, nil
}

// Status returns a job snapshot and its queue position (0 once dequeued).
func (s *Service) Status(jobID string) (model.Job, int, bool) {
	job, ok := s.store.Get(jobID)
	if !ok {
		return model.Job{}, 0, false
	}
	position, _ := s.queue.GetPosition(jobID)
	return job, position, true
}

// Subscribe attaches conn to the job's status updates.
func (s *Service) Subscribe(jobID string, conn model.WebSocketConn) bool {
	return s.store.Subscribe(jobID, conn)
}

// Unsubscribe detaches conn from every job and from queue position updates.
func (s *Service) Unsubscribe(conn model.WebSocketConn) {
	s.store.Unsubscribe(conn)
	s.queue.Detach(conn)
}

// Cancel fails a job that is still waiting in the queue and removes it.
// Jobs that are running or finished return ErrNotCancelable.
func (s *Service) Cancel(jobID string) (model.Job, error) {
	job, err := s.store.Update(jobID, func(j *model.Job) error {
		if j.Status != model.StatusQueued {
			return fmt.Errorf("%w: %s", ErrNotCancelable, j.Status)
		}
		return j.Fail(cancelReason)
	})
	if err != nil {
		return model.Job{}, err
	}

	if s.queue.Remove(jobID) {
		s.queue.BroadcastPositions()
	}
	notify(job)

	s.logger.Info("job canceled", zap.String("job_id", jobID))
	return job, nil
}

// Run processes queued jobs until ctx is done.
func (s *Service) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			s.work(ctx, worker)
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.purge(ctx)
	}()

	wg.Wait()
}

func (s *Service) work(ctx context.Context, worker int) {
	logger := s.logger.With(zap.Int("worker", worker))
	for {
		queued, err := s.queue.Pop(ctx)
		if err != nil {
			logger.Debug("worker stopped", zap.Error(err))
			return
		}
		s.queue.BroadcastPositions()
		s.Process(ctx, queued.ID)
	}
}

// purge removes expired jobs periodically.
func (s *Service) purge(ctx context.Context) {
	ticker := time.NewTicker(s.purgeTicker)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.store.PurgeExpired(); removed > 0 {
				s.logger.Info("expired jobs removed", zap.Int("count", removed))
			}
		}
	}
}

// Process runs a single job to completion.
func (s *Service) Process(ctx context.Context, jobID string) {
	logger := s.logger.With(zap.String("job_id", jobID))

	job, err := s.store.Update(jobID, func(j *model.Job) error {
		return j.TransitionTo(model.StatusRunning)
	})
	if err != nil {
		logger.Warn("job cannot start", zap.Error(err))
		return
	}
	notify(job)

	p, err := pipeline.Parse(job.Operations)
	if err != nil {
		s.fail(jobID, err, logger)
		return
	}

	outputKey, normalized, err := s.normalizer.NormalizeObject(ctx, job.InputKey, p)
	if err != nil {
		s.fail(jobID, err, logger)
		return
	}

	counts := kana.CountCharacterTypes(normalized)
	job, err = s.store.Update(jobID, func(j *model.Job) error {
		return j.Complete(outputKey, counts)
	})
	if err != nil {
		logger.Warn("failed to complete job", zap.Error(err))
		return
	}
	notify(job)

	logger.Info("job done",
		zap.String("output_key", outputKey),
		zap.Int("characters", counts.Total),
	)
}

func (s *Service) fail(jobID string, cause error, logger *zap.Logger) {
	logger.Error("job failed", zap.Error(cause))

	job, err := s.store.Update(jobID, func(j *model.Job) error {
		return j.Fail(cause.Error())
	})
	if err != nil {
		logger.Warn("failed to mark job as failed", zap.Error(err))
		return
	}
	notify(job)
}

func notify(job model.Job) {
	if job.Conn != nil {
		_ = job.Conn.WriteJSON(StatusPayload(job, 0))
	}
}

// StatusPayload builds the JSON body describing a job.
func StatusPayload(job model.Job, position int) map[string]interface{} {
	payload := map[string]interface{}{
		"type":       "jobUpdate",
		"job_id":     job.ID,
		"status":     job.Status,
		"input_key":  job.InputKey,
		"operations": job.Operations,
	}
	if position > 0 {
		payload["position"] = position
	}
	if job.OutputKey != "" {
		payload["output_key"] = job.OutputKey
	}
	if job.Counts != nil {
		payload["counts"] = job.Counts
	}
	if job.Error != "" {
		payload["reason"] = job.Error
	}
	return payload
}
