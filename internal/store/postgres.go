package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/plan"
)

//go:embed schema.sql
var schema string

// Postgres stores plans in the plans table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to databaseURL.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (pg *Postgres) Close() { pg.pool.Close() }

// Migrate creates the plans table if it does not exist.
func (pg *Postgres) Migrate(ctx context.Context) error {
	if _, err := pg.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate plans: %w", err)
	}
	return nil
}

const upsertPlan = `
INSERT INTO plans (id, status, profile, bmi_value, bmi_category, prompt, text, error, provider, model, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
    status = EXCLUDED.status,
    text = EXCLUDED.text,
    error = EXCLUDED.error,
    provider = EXCLUDED.provider,
    model = EXCLUDED.model,
    updated_at = EXCLUDED.updated_at`

// Save inserts the plan or updates its outcome.
func (pg *Postgres) Save(ctx context.Context, p *plan.Plan) error {
	profile, err := json.Marshal(p.Profile)
	if err != nil {
		return err
	}
	_, err = pg.pool.Exec(ctx, upsertPlan,
		p.ID, string(p.Status), profile, p.BMI.Value, p.BMI.Category.String(), p.Prompt,
		p.Text, p.Error, p.Provider, p.Model, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}
	return nil
}

const selectPlan = `
SELECT id, status, profile, bmi_value, bmi_category, prompt, text, error, provider, model, created_at, updated_at
FROM plans WHERE id = $1`

// Get loads a plan by ID.
func (pg *Postgres) Get(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	var (
		p        plan.Plan
		status   string
		profile  []byte
		category string
	)
	err := pg.pool.QueryRow(ctx, selectPlan, id).Scan(
		&p.ID, &status, &profile, &p.BMI.Value, &category, &p.Prompt,
		&p.Text, &p.Error, &p.Provider, &p.Model, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, plan.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	p.Status = plan.Status(status)
	if err := json.Unmarshal(profile, &p.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	var c bmi.Category
	if err := c.UnmarshalText([]byte(category)); err != nil {
		return nil, err
	}
	p.BMI.Category = c
	return &p, nil
}
