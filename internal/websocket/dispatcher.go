// Package websocket routes messages received over a client connection.
package websocket

import (
	"encoding/json"
	"errors"

	"github.com/kyiku/jatext/internal/jobs"
	"github.com/kyiku/jatext/internal/model"
	"github.com/kyiku/jatext/internal/pipeline"
	"github.com/kyiku/jatext/kana"
)

// Message types.
const (
	TypePing       = "ping"
	TypePong       = "pong"
	TypeNormalize  = "normalize"
	TypeResult     = "result"
	TypeCount      = "count"
	TypeCounts     = "counts"
	TypeSubmit     = "submit"
	TypeQueued     = "queued"
	TypeSubscribe  = "subscribe"
	TypeSubscribed = "subscribed"
	TypeCancel     = "cancel"
	TypeCanceled   = "canceled"
	TypeError      = "error"
)

// Message is a request received from a client.
type Message struct {
	Type   string   `json:"type"`
	ID     string   `json:"id,omitempty"`
	Text   string   `json:"text,omitempty"`
	Ops    []string `json:"ops,omitempty"`
	Preset string   `json:"preset,omitempty"`
	Key    string   `json:"key,omitempty"`
	JobID  string   `json:"job_id,omitempty"`
}

// JobService is the batch job API reachable over a connection.
type JobService interface {
	Submit(inputKey string, operations []string, conn model.WebSocketConn) (model.Job, int, error)
	Subscribe(jobID string, conn model.WebSocketConn) bool
	Unsubscribe(conn model.WebSocketConn)
	Cancel(jobID string) (model.Job, error)
}

// Dispatcher routes messages from one connection.
type Dispatcher struct {
	conn      model.WebSocketConn
	presets   *pipeline.Presets
	jobs      JobService
	maxLength int
}

// NewDispatcher creates a Dispatcher for conn. jobs may be nil when batch
// jobs are disabled.
func NewDispatcher(conn model.WebSocketConn, presets *pipeline.Presets, jobs JobService, maxLength int) *Dispatcher {
	return &Dispatcher{
		conn:      conn,
		presets:   presets,
		jobs:      jobs,
		maxLength: maxLength,
	}
}

// Handle processes a single raw message. Failures are reported to the client
// as error messages; the connection stays open.
func (d *Dispatcher) Handle(raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		d.sendError("", "メッセージの解析に失敗しました")
		return
	}

	switch msg.Type {
	case TypePing:
		_ = d.conn.WriteJSON(map[string]interface{}{"type": TypePong})
	case TypeNormalize:
		d.normalize(msg)
	case TypeCount:
		d.count(msg)
	case TypeSubmit:
		d.submit(msg)
	case TypeSubscribe:
		d.subscribe(msg)
	case TypeCancel:
		d.cancel(msg)
	default:
		d.sendError(msg.ID, "未知のメッセージ種別です: "+msg.Type)
	}
}

// Close releases job subscriptions held by the connection.
func (d *Dispatcher) Close() {
	if d.jobs != nil {
		d.jobs.Unsubscribe(d.conn)
	}
}

func (d *Dispatcher) normalize(msg Message) {
	if err := pipeline.CheckLength(msg.Text, d.maxLength); err != nil {
		d.sendError(msg.ID, "テキストが長すぎます")
		return
	}

	p, err := d.presets.Resolve(msg.Preset, msg.Ops)
	if err != nil {
		d.sendError(msg.ID, pipelineErrorMessage(err))
		return
	}

	_ = d.conn.WriteJSON(map[string]interface{}{
		"type":   TypeResult,
		"id":     msg.ID,
		"result": p.Apply(msg.Text),
		"ops":    p.Names(),
	})
}

func (d *Dispatcher) count(msg Message) {
	if err := pipeline.CheckLength(msg.Text, d.maxLength); err != nil {
		d.sendError(msg.ID, "テキストが長すぎます")
		return
	}

	_ = d.conn.WriteJSON(map[string]interface{}{
		"type":   TypeCounts,
		"id":     msg.ID,
		"counts": kana.CountCharacterTypes(msg.Text),
	})
}

func (d *Dispatcher) submit(msg Message) {
	if d.jobs == nil {
		d.sendError(msg.ID, "バッチジョブは無効です")
		return
	}
	if msg.Key == "" {
		d.sendError(msg.ID, "key は必須です")
		return
	}

	p, err := d.presets.Resolve(msg.Preset, msg.Ops)
	if err != nil {
		d.sendError(msg.ID, pipelineErrorMessage(err))
		return
	}

	job, position, err := d.jobs.Submit(msg.Key, p.Names(), d.conn)
	if err != nil {
		d.sendError(msg.ID, pipelineErrorMessage(err))
		return
	}

	_ = d.conn.WriteJSON(map[string]interface{}{
		"type":     TypeQueued,
		"id":       msg.ID,
		"job_id":   job.ID,
		"position": position,
	})
}

func (d *Dispatcher) subscribe(msg Message) {
	if d.jobs == nil {
		d.sendError(msg.ID, "バッチジョブは無効です")
		return
	}
	if !d.jobs.Subscribe(msg.JobID, d.conn) {
		d.sendError(msg.ID, "ジョブが見つかりません")
		return
	}

	_ = d.conn.WriteJSON(map[string]interface{}{
		"type":   TypeSubscribed,
		"id":     msg.ID,
		"job_id": msg.JobID,
	})
}

func (d *Dispatcher) cancel(msg Message) {
	if d.jobs == nil {
		d.sendError(msg.ID, "バッチジョブは無効です")
		return
	}

	job, err := d.jobs.Cancel(msg.JobID)
	switch {
	case errors.Is(err, jobs.ErrJobNotFound):
		d.sendError(msg.ID, "ジョブが見つかりません")
		return
	case errors.Is(err, jobs.ErrNotCancelable):
		d.sendError(msg.ID, "実行中または終了したジョブは取り消せません")
		return
	case err != nil:
		d.sendError(msg.ID, err.Error())
		return
	}

	_ = d.conn.WriteJSON(map[string]interface{}{
		"type":   TypeCanceled,
		"id":     msg.ID,
		"job_id": job.ID,
	})
}

func (d *Dispatcher) sendError(id, message string) {
	payload := map[string]interface{}{
		"type":    TypeError,
		"message": message,
	}
	if id != "" {
		payload["id"] = id
	}
	_ = d.conn.WriteJSON(payload)
}

func pipelineErrorMessage(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrUnknownPreset):
		return "未知のプリセットです: " + err.Error()
	case errors.Is(err, pipeline.ErrUnknownOperation), errors.Is(err, pipeline.ErrEmptyPipeline):
		return "不正な操作です: " + err.Error()
	default:
		return err.Error()
	}
}
