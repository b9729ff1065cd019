package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "ALLOWED_ORIGIN", "AWS_REGION", "S3_BUCKET", "LOG_LEVEL", "PRESETS_FILE",
	"RATE_LIMIT", "RATE_WINDOW", "MAX_TEXT_LENGTH", "JOB_WORKERS", "JOB_EXPIRY",
}

// clearEnv resets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name          string
		envVars       map[string]string
		wantPort      string
		wantBucket    string
		wantRateLimit int
		wantWindow    time.Duration
		wantWorkers   int
		wantErr       bool
	}{
		{
			name: "すべての環境変数が設定されている",
			envVars: map[string]string{
				"PORT":            "8080",
				"ALLOWED_ORIGIN":  "http://localhost:5173",
				"AWS_REGION":      "ap-northeast-1",
				"S3_BUCKET":       "test-bucket",
				"RATE_LIMIT":      "10",
				"RATE_WINDOW":     "30s",
				"MAX_TEXT_LENGTH": "500",
				"JOB_WORKERS":     "4",
				"JOB_EXPIRY":      "10m",
			},
			wantPort:      "8080",
			wantBucket:    "test-bucket",
			wantRateLimit: 10,
			wantWindow:    30 * time.Second,
			wantWorkers:   4,
		},
		{
			name:          "デフォルト値が使用される",
			envVars:       map[string]string{},
			wantPort:      "8080", // デフォルト
			wantRateLimit: 60,
			wantWindow:    time.Minute,
			wantWorkers:   2,
		},
		{
			name: "PORTのみカスタム",
			envVars: map[string]string{
				"PORT": "3000",
			},
			wantPort:      "3000",
			wantRateLimit: 60,
			wantWindow:    time.Minute,
			wantWorkers:   2,
		},
		{
			name: "異常系: RATE_LIMIT が数値ではない",
			envVars: map[string]string{
				"RATE_LIMIT": "many",
			},
			wantErr: true,
		},
		{
			name: "異常系: JOB_EXPIRY が期間ではない",
			envVars: map[string]string{
				"JOB_EXPIRY": "1 hour",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.Port)
			assert.Equal(t, tt.wantBucket, cfg.S3Bucket)
			assert.Equal(t, tt.wantRateLimit, cfg.RateLimit)
			assert.Equal(t, tt.wantWindow, cfg.RateWindow)
			assert.Equal(t, tt.wantWorkers, cfg.JobWorkers)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// デフォルト値の確認
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ap-northeast-1", cfg.AWSRegion)
	assert.Equal(t, "http://localhost:5173", cfg.AllowedOrigin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100000, cfg.MaxTextLength)
	assert.Equal(t, time.Hour, cfg.JobExpiry)
	assert.Empty(t, cfg.PresetsFile)
	assert.False(t, cfg.JobsEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validation(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:          "8080",
			AllowedOrigin: "http://localhost:5173",
			AWSRegion:     "ap-northeast-1",
			RateLimit:     60,
			RateWindow:    time.Minute,
			MaxTextLength: 100000,
			JobWorkers:    2,
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "有効な設定",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "不正なポート（文字列）",
			modify:  func(c *Config) { c.Port = "invalid" },
			wantErr: true,
		},
		{
			name:    "空のポート",
			modify:  func(c *Config) { c.Port = "" },
			wantErr: true,
		},
		{
			name:    "レート制限が0",
			modify:  func(c *Config) { c.RateLimit = 0 },
			wantErr: true,
		},
		{
			name:    "ウィンドウが負",
			modify:  func(c *Config) { c.RateWindow = -time.Second },
			wantErr: true,
		},
		{
			name:    "最大文字数が0",
			modify:  func(c *Config) { c.MaxTextLength = 0 },
			wantErr: true,
		},
		{
			name:    "ワーカー数が0",
			modify:  func(c *Config) { c.JobWorkers = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
