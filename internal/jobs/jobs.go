// Package jobs moves plan generation onto an asynq worker.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/athletiq/internal/plan"
)

// Client enqueues generation tasks.
type Client struct {
	client  *asynq.Client
	timeout time.Duration
}

// NewClient connects to Redis at addr. timeout bounds one task run and
// should cover the generation timeout.
func NewClient(addr string, timeout time.Duration) *Client {
	return &Client{
		client:  asynq.NewClient(asynq.RedisClientOpt{Addr: addr}),
		timeout: timeout,
	}
}

func (c *Client) Close() error { return c.client.Close() }

// EnqueueGenerate schedules generation of a stored pending plan. Tasks are
// never retried; a failed plan is resubmitted by the athlete.
func (c *Client) EnqueueGenerate(ctx context.Context, id uuid.UUID) error {
	task, err := NewGeneratePlanTask(id)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueuePlans),
		asynq.MaxRetry(0),
		asynq.Timeout(c.timeout),
	)
	return err
}

func NewGeneratePlanTask(id uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(GeneratePlanPayload{PlanID: id.String()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGeneratePlan, payload), nil
}

// Completer is implemented by plan.Service.
type Completer interface {
	Complete(ctx context.Context, id uuid.UUID) (*plan.Plan, error)
}

// NewGeneratePlanHandler returns the worker handler for TaskGeneratePlan.
// A failed generation is recorded on the plan and is not a task error. A
// plan that could not be stored is, since its stored copy is still pending.
func NewGeneratePlanHandler(c Completer, log zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p GeneratePlanPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("bad payload: %v: %w", err, asynq.SkipRetry)
		}
		id, err := uuid.Parse(p.PlanID)
		if err != nil {
			return fmt.Errorf("bad plan id %q: %w", p.PlanID, asynq.SkipRetry)
		}

		log.Info().Str("plan_id", id.String()).Msg("generate start")
		start := time.Now()
		pl, err := c.Complete(ctx, id)
		switch {
		case errors.Is(err, plan.ErrNotFound):
			return fmt.Errorf("plan %s: %w", id, asynq.SkipRetry)
		case errors.Is(err, plan.ErrNotSaved), err != nil && pl == nil:
			return err
		}
		log.Info().
			Str("plan_id", id.String()).
			Str("status", string(pl.Status)).
			Dur("duration", time.Since(start)).
			Msg("generate done")
		return nil
	}
}
