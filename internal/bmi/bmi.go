// Package bmi computes Body Mass Index values and classifies them into the
// four canonical bands used when shaping a training plan.
package bmi

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when height or weight cannot produce a finite BMI.
var ErrInvalidInput = errors.New("invalid input")

// Disclaimer is shown next to every BMI reading for youth athletes.
const Disclaimer = "BMI is a general health indicator. For youth athletes, performance and growth patterns matter more than numbers."

// Band lower bounds, inclusive.
const (
	NormalMin     = 18.5
	OverweightMin = 25.0
	ObeseMin      = 30.0
)

// Category is one of the four ordered BMI bands.
type Category int

const (
	Underweight Category = iota
	Normal
	Overweight
	Obese
)

// LabelSet maps every category to the string a presentation layer displays.
type LabelSet [4]string

var (
	// LabelsStandard are the canonical labels, also used inside prompts.
	LabelsStandard = LabelSet{"Underweight", "Normal", "Overweight", "Obese"}
	// LabelsCoaching soften the upper bands for athlete-facing screens.
	LabelsCoaching = LabelSet{"Underweight", "Healthy Range", "Overweight", "Review Build"}
)

// String returns the canonical label.
func (c Category) String() string {
	return c.Label(LabelsStandard)
}

// Label returns the display string for c from the given set.
func (c Category) Label(set LabelSet) string {
	if c < Underweight || c > Obese {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return set[c]
}

// MarshalText lets categories travel as their canonical label in JSON.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a canonical or coaching label.
func (c *Category) UnmarshalText(b []byte) error {
	s := string(b)
	for i := Underweight; i <= Obese; i++ {
		if s == LabelsStandard[i] || s == LabelsCoaching[i] {
			*c = i
			return nil
		}
	}
	return fmt.Errorf("unknown bmi category %q", s)
}

// Result is a rounded BMI value together with its band.
type Result struct {
	Value    float64  `json:"value"`
	Category Category `json:"category"`
}

// Classify computes BMI from height in centimetres and weight in kilograms,
// rounds it to one decimal and assigns the band of the rounded value.
func Classify(heightCm, weightKg float64) (Result, error) {
	if math.IsNaN(heightCm) || math.IsInf(heightCm, 0) || heightCm <= 0 {
		return Result{}, fmt.Errorf("%w: height must be a positive number of centimetres, got %v", ErrInvalidInput, heightCm)
	}
	if math.IsNaN(weightKg) || math.IsInf(weightKg, 0) || weightKg <= 0 {
		return Result{}, fmt.Errorf("%w: weight must be a positive number of kilograms, got %v", ErrInvalidInput, weightKg)
	}

	// weight / (cm/100)^2, kept in centimetres so 160 cm squares exactly.
	raw := weightKg * 10000 / (heightCm * heightCm)
	if math.IsInf(raw, 0) {
		return Result{}, fmt.Errorf("%w: bmi overflows for height %v and weight %v", ErrInvalidInput, heightCm, weightKg)
	}

	v := Round1(raw)
	return Result{Value: v, Category: CategoryOf(v)}, nil
}

// CategoryOf places a BMI value into its band. Bands are half-open with an
// inclusive lower bound, so every value belongs to exactly one band.
func CategoryOf(v float64) Category {
	switch {
	case v < NormalMin:
		return Underweight
	case v < OverweightMin:
		return Normal
	case v < ObeseMin:
		return Overweight
	default:
		return Obese
	}
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// String formats the value with exactly one decimal, e.g. "25.0 (Overweight)".
func (r Result) String() string {
	return fmt.Sprintf("%.1f (%s)", r.Value, r.Category)
}
