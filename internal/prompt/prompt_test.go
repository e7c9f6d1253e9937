package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/config"
)

const canonical = `You are ATHLETIQ AI, an expert youth sports coach.

Athlete Details:
Sport: Football
Position: unspecified
Age: 15
BMI: 19.5 (Normal)
Goal: Build stamina
Injury history: None
Diet preference: Vegetarian

Provide:
1. Warm-up
2. Main workout
3. Injury precautions
4. Skill/tactical advice
5. Nutrition tips
6. Cool-down routine

Keep the whole plan under 400 words.
Keep advice safe, motivating, and youth-appropriate.
`

func TestBuildCanonicalTemplate(t *testing.T) {
	got := New().Build(athlete.Default(), bmi.Result{Value: 19.5, Category: bmi.Normal})
	assert.Equal(t, canonical, got)
}

func TestBuildIsDeterministic(t *testing.T) {
	p := athlete.Profile{
		Sport:       athlete.Cricket,
		Position:    "Fast bowler",
		Age:         17,
		HeightCm:    182,
		WeightKg:    70,
		Goal:        athlete.IncreaseStrength,
		Diet:        athlete.NonVegetarian,
		InjuryNotes: "lower back stiffness",
	}
	r, err := bmi.Classify(p.HeightCm, p.WeightKg)
	require.NoError(t, err)

	b := New(WithLayout(LayoutTable))
	assert.Equal(t, b.Build(p, r), b.Build(p, r))
	assert.Equal(t, New(WithLayout(LayoutTable)).Build(p, r), b.Build(p, r))
}

func TestBuildEmbedsFields(t *testing.T) {
	p := athlete.Profile{
		Sport:       athlete.Hockey,
		Position:    "Goalkeeper",
		Age:         12,
		Goal:        athlete.ImproveAgility,
		Diet:        athlete.Vegan,
		InjuryNotes: "ankle sprain",
	}
	got := New().Build(p, bmi.Result{Value: 25.0, Category: bmi.Overweight})

	for _, want := range []string{
		"Sport: Hockey\n",
		"Position: Goalkeeper\n",
		"Age: 12\n",
		"BMI: 25.0 (Overweight)\n",
		"Goal: Improve agility\n",
		"Injury history: ankle sprain\n",
		"Diet preference: Vegan\n",
	} {
		assert.Contains(t, got, want)
	}
}

func TestBuildSubstitutesDefaults(t *testing.T) {
	p := athlete.Default()
	p.InjuryNotes = ""
	p.Position = "  "
	got := New().Build(p, bmi.Result{Value: 19.5, Category: bmi.Normal})

	assert.Contains(t, got, "Injury history: None\n")
	assert.Contains(t, got, "Position: unspecified\n")
	assert.NotContains(t, got, "Injury history: \n")

	empty := New().Build(athlete.Profile{}, bmi.Result{})
	assert.Contains(t, empty, "Sport: unspecified\n")
	assert.Contains(t, empty, "Goal: unspecified\n")
	assert.Contains(t, empty, "Diet preference: unspecified\n")
}

func TestBuildSectionsInOrder(t *testing.T) {
	got := New().Build(athlete.Default(), bmi.Result{Value: 19.5, Category: bmi.Normal})
	last := -1
	for _, s := range Sections {
		idx := strings.Index(got, s)
		require.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestOptions(t *testing.T) {
	b := New(WithPersona("Coach Kanga"), WithWordLimit(250), WithLayout(LayoutTable))
	got := b.Build(athlete.Default(), bmi.Result{Value: 19.5, Category: bmi.Normal})

	assert.True(t, strings.HasPrefix(got, "You are Coach Kanga, an expert youth sports coach.\n"))
	assert.Contains(t, got, "Keep the whole plan under 250 words.\n")
	assert.Contains(t, got, "Section | Exercises | Duration | Notes")
	assert.Contains(t, got, "at most 5 bullet-point tips")
	assert.NotContains(t, got, "Provide:\n")

	// Invalid values keep the defaults.
	d := New(WithPersona(" "), WithWordLimit(0), WithLayout("poster"))
	assert.Equal(t, DefaultPersona, d.Persona())
	assert.Equal(t, DefaultWordLimit, d.WordLimit())
	assert.Equal(t, LayoutSections, d.Layout())
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutSections, l)

	l, err = ParseLayout(" TABLE ")
	require.NoError(t, err)
	assert.Equal(t, LayoutTable, l)

	_, err = ParseLayout("poster")
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	b, err := FromConfig(config.PromptConfig{Persona: "Coach", WordLimit: 300, Layout: "table"})
	require.NoError(t, err)
	assert.Equal(t, "Coach", b.Persona())
	assert.Equal(t, 300, b.WordLimit())
	assert.Equal(t, LayoutTable, b.Layout())

	b, err = FromConfig(config.PromptConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPersona, b.Persona())

	_, err = FromConfig(config.PromptConfig{Layout: "poster"})
	assert.Error(t, err)
}
