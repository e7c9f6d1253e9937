package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/config"
	"github.com/briangreenhill/athletiq/internal/plan"
)

func testConfig(t *testing.T) config.Config {
	return config.Config{
		PlanDir:    t.TempDir(),
		Generation: config.GenerationConfig{Provider: "gemini"},
		Prompt:     config.PromptConfig{Persona: "ATHLETIQ AI", WordLimit: 400, Layout: "sections"},
	}
}

func TestNewWithoutProvider(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), Options{Logger: zerolog.Nop()})
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Provider)
	assert.Nil(t, a.Queue)

	_, text, err := a.Service.Assess(athlete.Default())
	require.NoError(t, err)
	assert.Contains(t, text, "BMI: 19.5 (Normal)")

	pl, err := a.Service.Generate(context.Background(), athlete.Default())
	require.Error(t, err)
	assert.Equal(t, plan.StatusFailed, pl.Status)
}

func TestNewRequireProvider(t *testing.T) {
	_, err := New(context.Background(), testConfig(t), Options{Logger: zerolog.Nop(), RequireProvider: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNewWithGemini(t *testing.T) {
	cfg := testConfig(t)
	cfg.Gemini.APIKey = "test-key"
	a, err := New(context.Background(), cfg, Options{Logger: zerolog.Nop(), RequireProvider: true})
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.Provider)
	assert.Equal(t, "gemini", a.Provider.Name())
}

func TestNewBadPromptLayout(t *testing.T) {
	cfg := testConfig(t)
	cfg.Prompt.Layout = "poem"
	_, err := New(context.Background(), cfg, Options{Logger: zerolog.Nop()})
	require.Error(t, err)
}
