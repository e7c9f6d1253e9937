package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/prompt"
	"github.com/briangreenhill/athletiq/internal/providers"
)

// Store persists plans by ID.
type Store interface {
	Save(ctx context.Context, p *Plan) error
	Get(ctx context.Context, id uuid.UUID) (*Plan, error)
}

// Enqueuer hands a pending plan to a background worker.
type Enqueuer interface {
	EnqueueGenerate(ctx context.Context, id uuid.UUID) error
}

// Recorder receives one observation per generation call.
type Recorder interface {
	ObserveGeneration(provider, outcome string, d time.Duration)
	ObserveBMI(c bmi.Category)
}

type nopRecorder struct{}

func (nopRecorder) ObserveGeneration(string, string, time.Duration) {}
func (nopRecorder) ObserveBMI(bmi.Category)                          {}

// Service builds prompts and runs generation requests. It keeps no record of
// past results; every call returns its plan to the caller.
type Service struct {
	builder  *prompt.Builder
	provider providers.Provider
	genCfg   providers.Config
	store    Store
	queue    Enqueuer
	recorder Recorder
	log      zerolog.Logger
	now      func() time.Time
}

type Option func(*Service)

// WithStore keeps generated plans so they can be fetched or downloaded later.
func WithStore(s Store) Option {
	return func(svc *Service) { svc.store = s }
}

// WithEnqueuer enables Enqueue.
func WithEnqueuer(q Enqueuer) Option {
	return func(svc *Service) { svc.queue = q }
}

func WithRecorder(r Recorder) Option {
	return func(svc *Service) {
		if r != nil {
			svc.recorder = r
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(svc *Service) { svc.log = l }
}

// NewService creates a Service. provider may be nil for offline use, in
// which case only Assess works.
func NewService(builder *prompt.Builder, provider providers.Provider, genCfg providers.Config, opts ...Option) *Service {
	if builder == nil {
		builder = prompt.New()
	}
	s := &Service{
		builder:  builder,
		provider: provider,
		genCfg:   genCfg,
		recorder: nopRecorder{},
		log:      zerolog.Nop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Assess classifies BMI and renders the prompt without calling a provider.
func (s *Service) Assess(p athlete.Profile) (bmi.Result, string, error) {
	r, err := bmi.Classify(p.HeightCm, p.WeightKg)
	if err != nil {
		return bmi.Result{}, "", err
	}
	s.recorder.ObserveBMI(r.Category)
	return r, s.builder.Build(p, r), nil
}

// Generate runs one blocking generation request. When the provider fails,
// the returned plan still carries the BMI reading and prompt, its Status is
// failed, and the error matches providers.ErrGeneration. A plan that could
// not be stored is still returned with Unsaved set.
func (s *Service) Generate(ctx context.Context, p athlete.Profile) (*Plan, error) {
	pl, err := s.newPlan(p)
	if err != nil {
		return nil, err
	}
	genErr := s.run(ctx, pl)
	_ = s.save(ctx, pl)
	return pl, genErr
}

// Enqueue stores a pending plan and hands its ID to the background worker.
func (s *Service) Enqueue(ctx context.Context, p athlete.Profile) (*Plan, error) {
	if s.queue == nil || s.store == nil {
		return nil, errors.New("async generation is not configured")
	}
	pl, err := s.newPlan(p)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, pl); err != nil {
		return nil, fmt.Errorf("save pending plan: %w", err)
	}
	if err := s.queue.EnqueueGenerate(ctx, pl.ID); err != nil {
		return nil, fmt.Errorf("enqueue plan %s: %w", pl.ID, err)
	}
	s.log.Info().Str("plan_id", pl.ID.String()).Msg("plan enqueued")
	return pl, nil
}

// Complete generates a stored pending plan. Plans that are no longer
// pending are returned unchanged. A result that cannot be stored is reported
// as an error matching ErrNotSaved, since the stored copy stays pending.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Plan, error) {
	if s.store == nil {
		return nil, errors.New("no plan store configured")
	}
	pl, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if pl.Status != StatusPending {
		return pl, nil
	}
	genErr := s.run(ctx, pl)
	if err := s.save(ctx, pl); err != nil {
		return pl, fmt.Errorf("plan %s: %w", pl.ID, err)
	}
	return pl, genErr
}

// Get loads a stored plan.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Plan, error) {
	if s.store == nil {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

func (s *Service) newPlan(p athlete.Profile) (*Plan, error) {
	r, text, err := s.Assess(p)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &Plan{
		ID:        uuid.New(),
		Status:    StatusPending,
		Profile:   p,
		BMI:       r,
		Prompt:    text,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *Service) run(ctx context.Context, pl *Plan) error {
	if s.provider == nil {
		err := &providers.Error{Provider: "none", Message: "no generation provider is configured"}
		pl.Provider = "none"
		pl.Status = StatusFailed
		pl.Error = err.Message
		pl.UpdatedAt = s.now()
		s.recorder.ObserveGeneration(pl.Provider, "error", 0)
		s.log.Warn().Err(err).Str("plan_id", pl.ID.String()).Msg("plan generation skipped")
		return err
	}

	cfg := s.genCfg
	if cfg.Model == "" {
		cfg.Model = s.provider.DefaultModel()
	}
	pl.Provider = s.provider.Name()
	pl.Model = cfg.Model

	start := time.Now()
	text, genErr := providers.Generate(ctx, s.provider, pl.Prompt, cfg)
	elapsed := time.Since(start)

	pl.UpdatedAt = s.now()
	logEvt := s.log.Info()
	if genErr != nil {
		pl.Status = StatusFailed
		pl.Error = userMessage(genErr)
		s.recorder.ObserveGeneration(pl.Provider, "error", elapsed)
		logEvt = s.log.Warn().Err(genErr)
	} else {
		pl.Status = StatusReady
		pl.Text = text
		s.recorder.ObserveGeneration(pl.Provider, "ok", elapsed)
	}
	logEvt.
		Str("plan_id", pl.ID.String()).
		Str("provider", pl.Provider).
		Str("model", pl.Model).
		Str("status", string(pl.Status)).
		Dur("duration", elapsed).
		Msg("plan generation finished")
	return genErr
}

// save persists a finished plan. On failure the plan is marked Unsaved and
// the error wraps ErrNotSaved.
func (s *Service) save(ctx context.Context, pl *Plan) error {
	if s.store == nil {
		pl.Unsaved = true
		return nil
	}
	if err := s.store.Save(ctx, pl); err != nil {
		pl.Unsaved = true
		s.log.Error().Err(err).Str("plan_id", pl.ID.String()).Str("status", string(pl.Status)).Msg("save plan failed")
		return fmt.Errorf("%w: %w", ErrNotSaved, err)
	}
	pl.Unsaved = false
	return nil
}

// userMessage returns the readable part of a generation error.
func userMessage(err error) string {
	var gerr *providers.Error
	if errors.As(err, &gerr) {
		return gerr.Message
	}
	return err.Error()
}
