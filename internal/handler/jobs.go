package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kyiku/jatext/internal/jobs"
	"github.com/kyiku/jatext/internal/model"
	"github.com/kyiku/jatext/internal/pipeline"
	"github.com/kyiku/jatext/internal/response"
)

// JobServiceInterface defines the batch job operations used over HTTP.
type JobServiceInterface interface {
	Submit(inputKey string, operations []string, conn model.WebSocketConn) (model.Job, int, error)
	Status(jobID string) (model.Job, int, bool)
	Cancel(jobID string) (model.Job, error)
}

// TextListerInterface lists stored text objects.
type TextListerInterface interface {
	ListTexts(ctx context.Context, prefix string) ([]string, error)
}

// JobHandler handles batch normalization jobs.
type JobHandler struct {
	service JobServiceInterface
	presets *pipeline.Presets
	lister  TextListerInterface
	logger  *zap.Logger
}

// NewJobHandler creates a new JobHandler. A nil service disables jobs.
func NewJobHandler(service JobServiceInterface, presets *pipeline.Presets, logger *zap.Logger) *JobHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobHandler{
		service: service,
		presets: presets,
		logger:  logger,
	}
}

// SetTextLister sets the store used by ListTexts.
func (h *JobHandler) SetTextLister(lister TextListerInterface) {
	h.lister = lister
}

// CreateJobRequest represents a request to normalize a stored object.
type CreateJobRequest struct {
	Key    string   `json:"key"`
	Ops    []string `json:"ops"`
	Preset string   `json:"preset"`
}

// Create queues a normalization job for an S3 object.
func (h *JobHandler) Create(c echo.Context) error {
	if h.service == nil {
		return jobsDisabled(c)
	}

	var req CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeBadRequest, "リクエストの解析に失敗しました")
	}
	if req.Key == "" {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeBadRequest, "key は必須です")
	}

	p, err := h.presets.Resolve(req.Preset, req.Ops)
	if err != nil {
		return pipelineError(c, err)
	}

	job, position, err := h.service.Submit(req.Key, p.Names(), nil)
	if err != nil {
		return pipelineError(c, err)
	}

	return response.SuccessWithStatus(c, http.StatusAccepted, map[string]interface{}{
		"job_id":   job.ID,
		"status":   job.Status,
		"position": position,
	})
}

// Get returns the status of a job.
func (h *JobHandler) Get(c echo.Context) error {
	if h.service == nil {
		return jobsDisabled(c)
	}

	job, position, ok := h.service.Status(c.Param("id"))
	if !ok {
		return response.ErrorWithCode(c, http.StatusNotFound, response.CodeJobNotFound, "ジョブが見つかりません")
	}

	payload := jobs.StatusPayload(job, position)
	delete(payload, "type")
	return response.Success(c, payload)
}

// Cancel cancels a job that is still waiting in the queue.
func (h *JobHandler) Cancel(c echo.Context) error {
	if h.service == nil {
		return jobsDisabled(c)
	}

	job, err := h.service.Cancel(c.Param("id"))
	switch {
	case errors.Is(err, jobs.ErrJobNotFound):
		return response.ErrorWithCode(c, http.StatusNotFound, response.CodeJobNotFound, "ジョブが見つかりません")
	case errors.Is(err, jobs.ErrNotCancelable):
		return response.ErrorWithCode(c, http.StatusConflict, response.CodeJobNotCancelable, "実行中または終了したジョブは取り消せません")
	case err != nil:
		h.logger.Error("failed to cancel job", zap.String("job_id", c.Param("id")), zap.Error(err))
		return response.ErrorWithCode(c, http.StatusInternalServerError, response.CodeInternalError, "ジョブの取り消しに失敗しました")
	}

	payload := jobs.StatusPayload(job, 0)
	delete(payload, "type")
	return response.Success(c, payload)
}

// ListTexts returns the .txt object keys under the "prefix" query parameter.
func (h *JobHandler) ListTexts(c echo.Context) error {
	if h.lister == nil {
		return jobsDisabled(c)
	}

	keys, err := h.lister.ListTexts(c.Request().Context(), c.QueryParam("prefix"))
	if err != nil {
		h.logger.Error("failed to list texts",
			zap.String("prefix", c.QueryParam("prefix")),
			zap.Error(err),
		)
		return response.ErrorWithCode(c, http.StatusBadGateway, response.CodeInternalError, "オブジェクト一覧の取得に失敗しました")
	}

	return response.Success(c, map[string]interface{}{
		"keys": keys,
	})
}

func jobsDisabled(c echo.Context) error {
	return response.ErrorWithCode(c, http.StatusServiceUnavailable, response.CodeJobsDisabled, "S3 が設定されていないためバッチジョブは無効です")
}
