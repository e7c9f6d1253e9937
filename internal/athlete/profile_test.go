package athlete

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profile)
		field  string
	}{
		{"age too young", func(p *Profile) { p.Age = 9 }, "age"},
		{"age too old", func(p *Profile) { p.Age = 21 }, "age"},
		{"height too short", func(p *Profile) { p.HeightCm = 119.9 }, "height_cm"},
		{"height too tall", func(p *Profile) { p.HeightCm = 221 }, "height_cm"},
		{"weight too light", func(p *Profile) { p.WeightKg = 24 }, "weight_kg"},
		{"weight too heavy", func(p *Profile) { p.WeightKg = 151 }, "weight_kg"},
		{"unknown sport", func(p *Profile) { p.Sport = "Curling" }, "sport"},
		{"unknown goal", func(p *Profile) { p.Goal = "Get famous" }, "goal"},
		{"unknown diet", func(p *Profile) { p.Diet = "Keto" }, "diet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)

			err := p.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Len(t, verr.Fields, 1)
		})
	}
}

func TestValidateBoundsInclusive(t *testing.T) {
	p := Default()
	p.Age, p.HeightCm, p.WeightKg = MinAge, MinHeightCm, MinWeightKg
	assert.NoError(t, p.Validate())

	p.Age, p.HeightCm, p.WeightKg = MaxAge, MaxHeightCm, MaxWeightKg
	assert.NoError(t, p.Validate())
}

func TestValidationErrorMessageIsSorted(t *testing.T) {
	p := Profile{}
	err := p.Validate()
	require.Error(t, err)
	assert.Equal(t,
		"invalid profile: age: must be between 10 and 20; diet: unknown diet \"\"; goal: unknown goal \"\"; "+
			"height_cm: must be between 120 and 220; sport: unknown sport \"\"; weight_kg: must be between 25 and 150",
		err.Error())
}

func TestDefaults(t *testing.T) {
	p := Default()
	assert.Equal(t, "unspecified", p.PositionOrDefault())
	assert.Equal(t, "None", p.InjuryOrDefault())

	p.InjuryNotes = "   "
	assert.Equal(t, "None", p.InjuryOrDefault())

	p.Position = " Striker "
	p.InjuryNotes = "knee strain"
	assert.Equal(t, "Striker", p.PositionOrDefault())
	assert.Equal(t, "knee strain", p.InjuryOrDefault())
}

func TestParse(t *testing.T) {
	s, err := ParseSport("basketball")
	require.NoError(t, err)
	assert.Equal(t, Basketball, s)

	g, err := ParseGoal(" post-injury RECOVERY ")
	require.NoError(t, err)
	assert.Equal(t, PostInjuryRecovery, g)

	d, err := ParseDiet("non-vegetarian")
	require.NoError(t, err)
	assert.Equal(t, NonVegetarian, d)

	_, err = ParseSport("")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	p := Profile{Sport: "hockey", Goal: "overall fitness", Diet: "vegan", Position: " Goalkeeper ", InjuryNotes: "\n"}
	n := p.Normalize()
	assert.Equal(t, Hockey, n.Sport)
	assert.Equal(t, OverallFitness, n.Goal)
	assert.Equal(t, Vegan, n.Diet)
	assert.Equal(t, "Goalkeeper", n.Position)
	assert.Equal(t, "", n.InjuryNotes)

	bad := Profile{Sport: "Curling"}.Normalize()
	assert.Equal(t, Sport("Curling"), bad.Sport)
}
