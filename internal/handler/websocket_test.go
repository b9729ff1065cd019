package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyiku/jatext/internal/jobs"
	"github.com/kyiku/jatext/internal/model"
	"github.com/kyiku/jatext/internal/pipeline"
	"github.com/kyiku/jatext/internal/queue"
	"github.com/kyiku/jatext/internal/storage"
	"github.com/kyiku/jatext/internal/testutil"
	ws "github.com/kyiku/jatext/internal/websocket"
)

func newWebSocketServer(t *testing.T, svc ws.JobService) *httptest.Server {
	t.Helper()
	presets, err := pipeline.NewPresets(nil)
	require.NoError(t, err)

	e := echo.New()
	h := NewWebSocketHandler(presets, svc, 100, []string{"https://jatext.example.com"}, nil)
	e.GET("/ws", h.Connect)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, origin string) (*gorilla.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return gorilla.DefaultDialer.Dial(url, header)
}

func readJSON(t *testing.T, conn *gorilla.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketHandler_Origin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		wantErr bool
	}{
		{name: "正常系: 許可されたオリジン", origin: "https://jatext.example.com", wantErr: false},
		{name: "正常系: Origin なし", origin: "", wantErr: false},
		{name: "異常系: 不正なオリジン", origin: "https://malicious-site.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newWebSocketServer(t, nil)

			conn, resp, err := dial(t, srv, tt.origin)
			if tt.wantErr {
				require.Error(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
				return
			}
			require.NoError(t, err)
			conn.Close()
		})
	}
}

func TestWebSocketHandler_Messages(t *testing.T) {
	srv := newWebSocketServer(t, nil)
	conn, _, err := dial(t, srv, "")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "ping"}))
	assert.Equal(t, "pong", readJSON(t, conn)["type"])

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": "normalize",
		"id":   "n1",
		"text": "ﾊﾟﾝ〜",
	}))
	msg := readJSON(t, conn)
	assert.Equal(t, "result", msg["type"])
	assert.Equal(t, "n1", msg["id"])
	assert.Equal(t, "パンー", msg["result"])

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "count", "text": "あア"}))
	msg = readJSON(t, conn)
	assert.Equal(t, "counts", msg["type"])

	// ジョブ無効時の submit はエラーで、接続は維持される
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "submit", "key": "a.txt"}))
	assert.Equal(t, "error", readJSON(t, conn)["type"])

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "ping"}))
	assert.Equal(t, "pong", readJSON(t, conn)["type"])
}

func TestWebSocketHandler_JobUpdates(t *testing.T) {
	client := testutil.NewMockS3Client()
	client.Objects["inbox/a.txt"] = []byte("ｶﾞｲﾄﾞ")

	store := jobs.NewStore()
	svc := jobs.NewService(store, queue.NewJobQueue(), storage.NewTextStore(client, "test-bucket"), 1, nil)

	srv := newWebSocketServer(t, svc)
	conn, _, err := dial(t, srv, "")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type": "submit",
		"id":   "j1",
		"key":  "inbox/a.txt",
	}))
	queued := readJSON(t, conn)
	require.Equal(t, "queued", queued["type"])
	jobID, _ := queued["job_id"].(string)
	require.NotEmpty(t, jobID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go svc.Run(ctx)

	// queueUpdate と jobUpdate が届き、最後は done になる
	var last map[string]interface{}
	for i := 0; i < 5; i++ {
		msg := readJSON(t, conn)
		if msg["type"] == "jobUpdate" && msg["status"] == model.StatusDone {
			last = msg
			break
		}
	}
	require.NotNil(t, last)
	assert.Equal(t, jobID, last["job_id"])

	data, ok := client.Uploaded(last["output_key"].(string))
	require.True(t, ok)
	assert.Equal(t, "ガイド", string(data))
}
