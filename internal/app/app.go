// Package app wires configuration into a ready plan.Service for the binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/briangreenhill/athletiq/internal/config"
	"github.com/briangreenhill/athletiq/internal/jobs"
	"github.com/briangreenhill/athletiq/internal/plan"
	"github.com/briangreenhill/athletiq/internal/prompt"
	"github.com/briangreenhill/athletiq/internal/providers"
	"github.com/briangreenhill/athletiq/internal/store"
)

// App holds the long-lived dependencies of a binary.
type App struct {
	Service  *plan.Service
	Provider providers.Provider // nil when no provider is configured
	Store    plan.Store
	Queue    *jobs.Client // nil unless async generation is enabled

	closers []func()
}

type Options struct {
	Logger   zerolog.Logger
	Recorder plan.Recorder
	// RequireProvider makes a missing provider an error instead of a warning.
	RequireProvider bool
	// Enqueue connects the asynq client when cfg.AsyncEnabled is set.
	Enqueue bool
}

// New builds the provider, prompt builder, store and service from cfg.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	a := &App{}

	builder, err := prompt.FromConfig(cfg.Prompt)
	if err != nil {
		return nil, err
	}

	registry, err := providers.Setup(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p, err := providers.Select(registry, cfg)
	if err != nil {
		if opts.RequireProvider {
			return nil, err
		}
		opts.Logger.Warn().Err(err).Msg("plan generation disabled")
	} else {
		a.Provider = p
	}

	st, closeStore, err := store.Open(ctx, cfg.DatabaseURL, cfg.PlanDir)
	if err != nil {
		return nil, fmt.Errorf("open plan store: %w", err)
	}
	a.Store = st
	a.closers = append(a.closers, closeStore)

	svcOpts := []plan.Option{
		plan.WithStore(st),
		plan.WithLogger(opts.Logger),
		plan.WithRecorder(opts.Recorder),
	}
	if opts.Enqueue && cfg.AsyncEnabled {
		// the task deadline covers the generation timeout plus store round trips
		a.Queue = jobs.NewClient(cfg.RedisAddr, cfg.Generation.Timeout+30*time.Second)
		a.closers = append(a.closers, func() {
			if err := a.Queue.Close(); err != nil {
				opts.Logger.Error().Err(err).Msg("close asynq client")
			}
		})
		svcOpts = append(svcOpts, plan.WithEnqueuer(a.Queue))
	}

	a.Service = plan.NewService(builder, a.Provider, providers.ConfigFrom(cfg.Generation), svcOpts...)
	return a, nil
}

// Close releases resources in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
