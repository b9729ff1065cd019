package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/kyiku/jatext/internal/config"
	"github.com/kyiku/jatext/internal/handler"
	"github.com/kyiku/jatext/internal/jobs"
	"github.com/kyiku/jatext/internal/logging"
	"github.com/kyiku/jatext/internal/middleware"
	"github.com/kyiku/jatext/internal/pipeline"
	"github.com/kyiku/jatext/internal/queue"
	"github.com/kyiku/jatext/internal/storage"
	"github.com/kyiku/jatext/internal/websocket"
)

// S3Adapter adapts AWS S3 client to our interface
type S3Adapter struct {
	client *s3.Client
	bucket string
}

func (a *S3Adapter) GetObject(ctx context.Context, key string) ([]byte, error) {
	output, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}
	defer output.Body.Close()
	return io.ReadAll(output.Body)
}

func (a *S3Adapter) PutObject(ctx context.Context, key string, data []byte) error {
	contentType := "text/plain; charset=utf-8"
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	return err
}

func (a *S3Adapter) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: &a.bucket,
		Prefix: &prefix,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	presets, err := loadPresets(cfg.PresetsFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Batch jobs need S3; without a bucket the job endpoints answer 503.
	var (
		jobService *jobs.Service
		textStore  *storage.TextStore
		httpJobs   handler.JobServiceInterface
		wsJobs     websocket.JobService
	)
	if cfg.JobsEnabled() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logger.Warn("failed to load AWS config, batch jobs disabled", zap.Error(err))
		} else {
			textStore = storage.NewTextStore(&S3Adapter{
				client: s3.NewFromConfig(awsCfg),
				bucket: cfg.S3Bucket,
			}, cfg.S3Bucket)

			jobService = jobs.NewService(
				jobs.NewStoreWithExpiry(cfg.JobExpiry),
				queue.NewJobQueue(),
				textStore,
				cfg.JobWorkers,
				logger.Named("jobs"),
			)
			httpJobs = jobService
			wsJobs = jobService
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	// Middleware
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger.Named("http")))
	e.Use(echomw.Recover())
	e.Use(middleware.CORSMiddleware(cfg.AllowedOrigin))

	healthHandler := handler.NewHealthHandler(jobService != nil)
	textHandler := handler.NewTextHandler(presets, cfg.MaxTextLength)
	jobHandler := handler.NewJobHandler(httpJobs, presets, logger.Named("jobs"))
	if textStore != nil {
		jobHandler.SetTextLister(textStore)
		logger.Info("batch jobs enabled", zap.String("bucket", textStore.Bucket()))
	}
	wsHandler := handler.NewWebSocketHandler(presets, wsJobs, cfg.MaxTextLength,
		[]string{cfg.AllowedOrigin}, logger.Named("ws"))

	// Health check (root level for ALB)
	e.GET("/health", healthHandler.Check)

	// WebSocket endpoint
	e.GET("/ws", wsHandler.Connect)

	// API routes
	api := e.Group("/api", limiter.Middleware())
	api.GET("/health", healthHandler.Check)
	api.GET("/presets", textHandler.Presets)
	api.POST("/convert", textHandler.Convert)
	api.POST("/classify", textHandler.Classify)
	api.POST("/count", textHandler.Count)
	api.POST("/match", textHandler.Match)
	api.POST("/jobs", jobHandler.Create)
	api.GET("/jobs/:id", jobHandler.Get)
	api.DELETE("/jobs/:id", jobHandler.Cancel)
	api.GET("/texts", jobHandler.ListTexts)

	if jobService != nil {
		go jobService.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.Port),
			zap.Bool("jobs", jobService != nil),
			zap.Strings("presets", presets.Names()),
		)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func loadPresets(path string) (*pipeline.Presets, error) {
	var extra map[string][]string
	if path != "" {
		loaded, err := pipeline.LoadPresetsFile(path)
		if err != nil {
			return nil, err
		}
		extra = loaded
	}

	presets, err := pipeline.NewPresets(extra)
	if err != nil {
		return nil, fmt.Errorf("invalid presets: %w", err)
	}
	return presets, nil
}
