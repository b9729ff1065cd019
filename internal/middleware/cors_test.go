package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/kyiku/jatext/internal/testutil"
)

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name              string
		origin            string
		method            string
		wantAllowOrigin   string
		wantAllowCreds    string
		wantOptionsStatus int
	}{
		{
			name:              "正常系: 許可されたオリジン",
			origin:            "https://jatext.example.com",
			method:            http.MethodGet,
			wantAllowOrigin:   "https://jatext.example.com",
			wantAllowCreds:    "true",
			wantOptionsStatus: http.StatusNoContent,
		},
		{
			name:              "正常系: localhostオリジン",
			origin:            "http://localhost:3000",
			method:            http.MethodGet,
			wantAllowOrigin:   "http://localhost:3000",
			wantAllowCreds:    "true",
			wantOptionsStatus: http.StatusNoContent,
		},
		{
			name:              "正常系: PREFLIGHTリクエスト",
			origin:            "https://jatext.example.com",
			method:            http.MethodOptions,
			wantAllowOrigin:   "https://jatext.example.com",
			wantAllowCreds:    "true",
			wantOptionsStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContext(tt.method, "/api/convert", nil)
			tc.Request.Header.Set("Origin", tt.origin)

			middleware := CORSMiddleware("https://jatext.example.com/")

			handler := middleware(func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			})

			err := handler(tc.Context)

			if tt.method == http.MethodOptions {
				assert.Equal(t, tt.wantOptionsStatus, tc.Recorder.Code)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantAllowOrigin, tc.Recorder.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, tc.Recorder.Header().Get("Access-Control-Allow-Methods"), "GET")
			assert.Contains(t, tc.Recorder.Header().Get("Access-Control-Allow-Methods"), "POST")
			assert.Equal(t, tt.wantAllowCreds, tc.Recorder.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestCORSMiddleware_InvalidOrigin(t *testing.T) {
	tc := testutil.NewTestContext(http.MethodGet, "/api/convert", nil)
	tc.Request.Header.Set("Origin", "https://malicious-site.com")

	middleware := CORSMiddleware("https://jatext.example.com")

	handler := middleware(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	_ = handler(tc.Context)

	// 不正なオリジンにはCORSヘッダーが設定されない
	allowOrigin := tc.Recorder.Header().Get("Access-Control-Allow-Origin")
	assert.NotEqual(t, "https://malicious-site.com", allowOrigin)
}

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{name: "空のオリジン", origin: "", allowed: []string{"*"}, want: false},
		{name: "localhost", origin: "http://localhost:5173", allowed: nil, want: true},
		{name: "完全一致", origin: "https://a.example.com", allowed: []string{"https://a.example.com"}, want: true},
		{name: "大文字小文字を区別しない", origin: "https://A.example.com", allowed: []string{"https://a.example.com"}, want: true},
		{name: "ワイルドカード", origin: "https://any.example.org", allowed: []string{"*"}, want: true},
		{name: "不一致", origin: "https://b.example.com", allowed: []string{"https://a.example.com"}, want: false},
		{name: "https の localhost は設定が必要", origin: "https://localhost:5173", allowed: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedOrigin(tt.origin, tt.allowed))
		})
	}
}
