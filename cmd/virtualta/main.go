package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/virtualta/internal/config"
	dbRedis "github.com/kailas-cloud/virtualta/internal/db/redis"
	logpkg "github.com/kailas-cloud/virtualta/internal/logger"
	"github.com/kailas-cloud/virtualta/internal/metrics"
	"github.com/kailas-cloud/virtualta/internal/repository/questionlog"
	chiTransport "github.com/kailas-cloud/virtualta/internal/transport/chi"
	healthuc "github.com/kailas-cloud/virtualta/internal/usecase/health"
	"github.com/kailas-cloud/virtualta/internal/usecase/matcher"
	questionuc "github.com/kailas-cloud/virtualta/internal/usecase/question"
	"github.com/kailas-cloud/virtualta/internal/version"
)

// questionLog is what both the question and health services need from a log backend.
type questionLog interface {
	questionuc.Log
	healthuc.Pinger
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting Virtual TA API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("question_log_driver", cfg.QuestionLog.Driver),
	)

	metrics.RegisterHTTPMetrics()
	metrics.RegisterAnswerMetrics()

	log, closeLog := buildQuestionLog(cfg.QuestionLog, logger)
	defer closeLog()

	m := matcher.NewDefault()

	questionSvc := questionuc.New(m, log, logger).WithDelay(
		time.Duration(cfg.MinDelayMs())*time.Millisecond,
		time.Duration(cfg.MaxDelayMs())*time.Millisecond,
	)
	healthSvc := healthuc.New(log)

	server := chiTransport.NewServer(questionSvc, healthSvc, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)

	router := chiTransport.NewRouter(server, logger, chiTransport.RouterOptions{
		CORS: chiTransport.CORSOptions{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowCredentials: cfg.CORS.AllowCredentials,
		},
		RateLimitPerMinute: cfg.RateLimit.RequestsPerMinute,
		RateLimitBurst:     cfg.RateLimit.Burst,
		APIKeys:            cfg.Auth.APIKeys,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(router, "virtualta"),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildQuestionLog creates the configured log backend and its cleanup func.
func buildQuestionLog(cfg config.QuestionLogConfig, logger *zap.Logger) (questionLog, func()) {
	switch cfg.Driver {
	case config.DriverRedis:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Addrs))

		return questionlog.NewRedis(store, cfg.KeyPrefix, cfg.MaxRecords), store.Close
	default:
		logger.Info("Using in-memory question log", zap.Int("max_records", cfg.MaxRecords))
		return questionlog.NewMemory(cfg.MaxRecords), func() {}
	}
}
