// Package athlete describes the form inputs for one athlete: sport, body
// measurements and training preferences.
package athlete

import (
	"fmt"
	"sort"
	"strings"
)

// Input bounds enforced by the presentation layers.
const (
	MinAge      = 10
	MaxAge      = 20
	MinHeightCm = 120
	MaxHeightCm = 220
	MinWeightKg = 25
	MaxWeightKg = 150
)

// Placeholders substituted for optional free-text fields.
const (
	PositionUnspecified = "unspecified"
	InjuryNone          = "None"
)

type Sport string

const (
	Football   Sport = "Football"
	Cricket    Sport = "Cricket"
	Basketball Sport = "Basketball"
	Athletics  Sport = "Athletics"
	Badminton  Sport = "Badminton"
	Hockey     Sport = "Hockey"
)

type Goal string

const (
	BuildStamina       Goal = "Build stamina"
	IncreaseStrength   Goal = "Increase strength"
	PostInjuryRecovery Goal = "Post-injury recovery"
	ImproveAgility     Goal = "Improve agility"
	MatchPerformance   Goal = "Match performance"
	OverallFitness     Goal = "Overall fitness"
)

type Diet string

const (
	Vegetarian    Diet = "Vegetarian"
	NonVegetarian Diet = "Non-Vegetarian"
	Vegan         Diet = "Vegan"
)

// Sports returns the supported sports in display order.
func Sports() []Sport {
	return []Sport{Football, Cricket, Basketball, Athletics, Badminton, Hockey}
}

// Goals returns the supported training goals in display order.
func Goals() []Goal {
	return []Goal{BuildStamina, IncreaseStrength, PostInjuryRecovery, ImproveAgility, MatchPerformance, OverallFitness}
}

// Diets returns the supported diet preferences in display order.
func Diets() []Diet {
	return []Diet{Vegetarian, NonVegetarian, Vegan}
}

// ParseSport matches s case-insensitively against the supported sports.
func ParseSport(s string) (Sport, error) {
	for _, v := range Sports() {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown sport %q", s)
}

// ParseGoal matches s case-insensitively against the supported goals.
func ParseGoal(s string) (Goal, error) {
	for _, v := range Goals() {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown goal %q", s)
}

// ParseDiet matches s case-insensitively against the supported diets.
func ParseDiet(s string) (Diet, error) {
	for _, v := range Diets() {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown diet %q", s)
}

// Profile is one snapshot of the athlete form. It is built fresh for every
// submission and not modified afterwards.
type Profile struct {
	Sport       Sport   `json:"sport"`
	Position    string  `json:"position,omitempty"`
	Age         int     `json:"age"`
	HeightCm    float64 `json:"height_cm"`
	WeightKg    float64 `json:"weight_kg"`
	Goal        Goal    `json:"goal"`
	Diet        Diet    `json:"diet"`
	InjuryNotes string  `json:"injury_notes,omitempty"`
}

// Default returns the values the form starts with.
func Default() Profile {
	return Profile{
		Sport:    Football,
		Age:      15,
		HeightCm: 160,
		WeightKg: 50,
		Goal:     BuildStamina,
		Diet:     Vegetarian,
	}
}

// PositionOrDefault returns the trimmed playing position or "unspecified".
func (p Profile) PositionOrDefault() string {
	if s := strings.TrimSpace(p.Position); s != "" {
		return s
	}
	return PositionUnspecified
}

// InjuryOrDefault returns the trimmed injury notes or "None".
func (p Profile) InjuryOrDefault() string {
	if s := strings.TrimSpace(p.InjuryNotes); s != "" {
		return s
	}
	return InjuryNone
}

// ValidationError collects one message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// Validate checks the profile against the form bounds and closed value sets.
func (p Profile) Validate() error {
	fields := map[string]string{}

	if _, err := ParseSport(string(p.Sport)); err != nil {
		fields["sport"] = err.Error()
	}
	if _, err := ParseGoal(string(p.Goal)); err != nil {
		fields["goal"] = err.Error()
	}
	if _, err := ParseDiet(string(p.Diet)); err != nil {
		fields["diet"] = err.Error()
	}
	if p.Age < MinAge || p.Age > MaxAge {
		fields["age"] = fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)
	}
	if p.HeightCm < MinHeightCm || p.HeightCm > MaxHeightCm {
		fields["height_cm"] = fmt.Sprintf("must be between %d and %d", MinHeightCm, MaxHeightCm)
	}
	if p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg {
		fields["weight_kg"] = fmt.Sprintf("must be between %d and %d", MinWeightKg, MaxWeightKg)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Normalize canonicalises enum spelling so "football" becomes "Football".
// Unknown values are left as they are for Validate to report.
func (p Profile) Normalize() Profile {
	if s, err := ParseSport(string(p.Sport)); err == nil {
		p.Sport = s
	}
	if g, err := ParseGoal(string(p.Goal)); err == nil {
		p.Goal = g
	}
	if d, err := ParseDiet(string(p.Diet)); err == nil {
		p.Diet = d
	}
	p.Position = strings.TrimSpace(p.Position)
	p.InjuryNotes = strings.TrimSpace(p.InjuryNotes)
	return p
}
