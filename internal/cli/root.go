// Package cli implements the athletiq command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/briangreenhill/athletiq/internal/app"
	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/config"
	"github.com/briangreenhill/athletiq/internal/logging"
	"github.com/briangreenhill/athletiq/internal/plan"
)

// Generator is the part of plan.Service the plan command needs.
type Generator interface {
	Generate(ctx context.Context, p athlete.Profile) (*plan.Plan, error)
}

// ServiceFactory opens a Generator and returns a function releasing it.
type ServiceFactory func(ctx context.Context, cfg config.Config) (Generator, func(), error)

type root struct {
	cfg        config.Config
	newService ServiceFactory
	jsonOutput bool
}

type Option func(*root)

// WithServiceFactory replaces the default service wiring, mainly for tests.
func WithServiceFactory(f ServiceFactory) Option {
	return func(r *root) { r.newService = f }
}

// NewRootCmd builds the command tree around cfg.
func NewRootCmd(cfg config.Config, opts ...Option) *cobra.Command {
	r := &root{cfg: cfg, newService: defaultService}
	for _, o := range opts {
		o(r)
	}

	cmd := &cobra.Command{
		Use:   "athletiq",
		Short: "Training plans for youth athletes",
		Long: `athletiq classifies an athlete's BMI, builds the coaching prompt and asks a
text generation provider for a personalised training plan.

Environment Variables:
  GENERATION_PROVIDER  gemini or anthropic (default: gemini)
  GEMINI_API_KEY       API key for Gemini
  ANTHROPIC_API_KEY    API key for Anthropic`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&r.jsonOutput, "json", false, "Output JSON instead of human-readable text")

	cmd.AddCommand(r.newBMICmd(), r.newPromptCmd(), r.newPlanCmd())
	return cmd
}

// Execute loads configuration and runs the command line.
func Execute() error {
	return NewRootCmd(config.Load()).Execute()
}

func defaultService(ctx context.Context, cfg config.Config) (Generator, func(), error) {
	// stdout carries the plan
	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel, "console")
	a, err := app.New(ctx, cfg, app.Options{Logger: logger, RequireProvider: true})
	if err != nil {
		return nil, nil, err
	}
	return a.Service, a.Close, nil
}
