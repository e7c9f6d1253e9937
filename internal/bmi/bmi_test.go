package bmi

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		height   float64
		weight   float64
		value    float64
		category Category
	}{
		{"normal", 160, 50, 19.5, Normal},
		{"obese rounds half up", 160, 80, 31.3, Obese},
		{"underweight", 150, 40, 17.8, Underweight},
		{"exactly 18.5", 200, 74, 18.5, Normal},
		{"exactly 25.0", 160, 64, 25.0, Overweight},
		{"exactly 30.0", 200, 120, 30.0, Obese},
		{"rounded up into normal", 170, 53.5, 18.5, Normal},
		{"upper form bound", 120, 150, 104.2, Obese},
		{"lower form bound", 220, 25, 5.2, Underweight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.height, tt.weight)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got.Value)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestClassifyInvalidInput(t *testing.T) {
	tests := []struct {
		height, weight float64
	}{
		{0, 50},
		{-160, 50},
		{160, 0},
		{160, -1},
		{math.NaN(), 50},
		{160, math.Inf(1)},
		{math.Inf(1), 50},
		{1e-200, 50},
	}

	for _, tt := range tests {
		_, err := Classify(tt.height, tt.weight)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Classify(%v, %v) error = %v, want ErrInvalidInput", tt.height, tt.weight, err)
		}
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{24.95, 25.0},
		{31.25, 31.3},
		{18.45, 18.5},
		{29.95, 30.0},
		{17.777, 17.8},
		{19.53125, 19.5},
		{22.0, 22.0},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCategoryOfPartitionsDomain(t *testing.T) {
	prev := Underweight
	// Walk the domain in 0.01 steps; the band must never go backwards or skip.
	for i := 0; i <= 6000; i++ {
		v := float64(i) / 100
		c := CategoryOf(v)
		require.GreaterOrEqual(t, int(c), int(prev), "band went backwards at %v", v)
		require.LessOrEqual(t, int(c)-int(prev), 1, "band skipped at %v", v)
		prev = c
	}
	assert.Equal(t, Obese, prev)

	assert.Equal(t, Underweight, CategoryOf(18.49))
	assert.Equal(t, Normal, CategoryOf(18.5))
	assert.Equal(t, Normal, CategoryOf(24.99))
	assert.Equal(t, Overweight, CategoryOf(25.0))
	assert.Equal(t, Overweight, CategoryOf(29.9))
	assert.Equal(t, Overweight, CategoryOf(29.95))
	assert.Equal(t, Obese, CategoryOf(30.0))
}

func TestClassifyIsDeterministic(t *testing.T) {
	for h := 120.0; h <= 220; h += 7 {
		for w := 25.0; w <= 150; w += 11 {
			a, err := Classify(h, w)
			require.NoError(t, err)
			b, err := Classify(h, w)
			require.NoError(t, err)
			assert.Equal(t, a, b)
			assert.Equal(t, CategoryOf(a.Value), a.Category)
		}
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Normal", Normal.String())
	assert.Equal(t, "Healthy Range", Normal.Label(LabelsCoaching))
	assert.Equal(t, "Review Build", Obese.Label(LabelsCoaching))
	assert.Equal(t, "Obese", Obese.Label(LabelsStandard))
	assert.Equal(t, "Category(9)", Category(9).String())
}

func TestResultJSON(t *testing.T) {
	r := Result{Value: 25.0, Category: Overweight}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":25,"category":"Overweight"}`, string(b))

	var back Result
	require.NoError(t, json.Unmarshal([]byte(`{"value":31.3,"category":"Review Build"}`), &back))
	assert.Equal(t, Result{Value: 31.3, Category: Obese}, back)

	assert.Error(t, json.Unmarshal([]byte(`{"value":1,"category":"Huge"}`), &back))
	assert.Equal(t, "25.0 (Overweight)", r.String())
}
