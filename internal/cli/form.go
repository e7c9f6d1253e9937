package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/briangreenhill/athletiq/internal/athlete"
)

// profileForm holds the string values huh edits.
type profileForm struct {
	sport    athlete.Sport
	position string
	age      string
	height   string
	weight   string
	goal     athlete.Goal
	diet     athlete.Diet
	injury   string
}

func newProfileForm(p athlete.Profile) *profileForm {
	return &profileForm{
		sport:    p.Sport,
		position: p.Position,
		age:      strconv.Itoa(p.Age),
		height:   strconv.FormatFloat(p.HeightCm, 'f', -1, 64),
		weight:   strconv.FormatFloat(p.WeightKg, 'f', -1, 64),
		goal:     p.Goal,
		diet:     p.Diet,
		injury:   p.InjuryNotes,
	}
}

func (f *profileForm) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[athlete.Sport]().
				Title("Sport").
				Options(huh.NewOptions(athlete.Sports()...)...).
				Value(&f.sport),
			huh.NewInput().
				Title("Position").
				Placeholder("e.g. Striker").
				Value(&f.position),
			huh.NewInput().
				Title("Age").
				Value(&f.age).
				Validate(intBetween(athlete.MinAge, athlete.MaxAge)),
		).Title("Athlete"),
		huh.NewGroup(
			huh.NewInput().
				Title("Height (cm)").
				Value(&f.height).
				Validate(numberBetween(athlete.MinHeightCm, athlete.MaxHeightCm)),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&f.weight).
				Validate(numberBetween(athlete.MinWeightKg, athlete.MaxWeightKg)),
		).Title("Body"),
		huh.NewGroup(
			huh.NewSelect[athlete.Goal]().
				Title("Goal").
				Options(huh.NewOptions(athlete.Goals()...)...).
				Value(&f.goal),
			huh.NewSelect[athlete.Diet]().
				Title("Diet preference").
				Options(huh.NewOptions(athlete.Diets()...)...).
				Value(&f.diet),
			huh.NewText().
				Title("Injury history").
				Description("Leave empty if none").
				Value(&f.injury),
		).Title("Plan"),
	)
}

// profile converts the edited values. Inputs have passed their validators.
func (f *profileForm) profile() athlete.Profile {
	age, _ := strconv.Atoi(strings.TrimSpace(f.age))
	height, _ := strconv.ParseFloat(strings.TrimSpace(f.height), 64)
	weight, _ := strconv.ParseFloat(strings.TrimSpace(f.weight), 64)
	return athlete.Profile{
		Sport:       f.sport,
		Position:    f.position,
		Age:         age,
		HeightCm:    height,
		WeightKg:    weight,
		Goal:        f.goal,
		Diet:        f.diet,
		InjuryNotes: f.injury,
	}.Normalize()
}

func runProfileForm(start athlete.Profile) (athlete.Profile, error) {
	f := newProfileForm(start)
	if err := f.form().Run(); err != nil {
		return athlete.Profile{}, err
	}
	return f.profile(), nil
}

func intBetween(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if v < lo || v > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func numberBetween(lo, hi float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if v < lo || v > hi {
			return fmt.Errorf("must be between %g and %g", lo, hi)
		}
		return nil
	}
}
