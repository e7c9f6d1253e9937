package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/briangreenhill/athletiq/internal/app"
	"github.com/briangreenhill/athletiq/internal/config"
	"github.com/briangreenhill/athletiq/internal/jobs"
	"github.com/briangreenhill/athletiq/internal/logging"
	"github.com/briangreenhill/athletiq/internal/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	a, err := app.New(ctx, cfg, app.Options{Logger: logger, Recorder: m, RequireProvider: true})
	if err != nil {
		logger.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close()

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			jobs.QueuePlans: 1,
		},
		Logger: asynqLogger{logger.With().Str("component", "asynq").Logger()},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TaskGeneratePlan, jobs.NewGeneratePlanHandler(a.Service, logger))

	if addr := cfg.WorkerMetricsAddr; addr != "" {
		go func() {
			logger.Info().Str("addr", addr).Msg("serving worker metrics")
			if err := http.ListenAndServe(addr, m.Handler()); err != nil {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	logger.Info().Str("redis", cfg.RedisAddr).Str("provider", a.Provider.Name()).Msg("worker running")
	if err := srv.Start(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker start failed")
	}
	<-ctx.Done()
	srv.Shutdown()
}
