package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/briangreenhill/athletiq/internal/athlete"
)

// profileFlags holds the raw flag values for one athlete profile.
type profileFlags struct {
	sport    string
	position string
	age      int
	height   float64
	weight   float64
	goal     string
	diet     string
	injury   string
}

func (f *profileFlags) register(fs *pflag.FlagSet) {
	d := athlete.Default()
	fs.StringVar(&f.sport, "sport", string(d.Sport), "Sport ("+joinNames(athlete.Sports())+")")
	fs.StringVar(&f.position, "position", "", "Playing position")
	fs.IntVar(&f.age, "age", d.Age, "Age in years")
	fs.Float64Var(&f.height, "height", d.HeightCm, "Height in cm")
	fs.Float64Var(&f.weight, "weight", d.WeightKg, "Weight in kg")
	fs.StringVar(&f.goal, "goal", string(d.Goal), "Training goal ("+joinNames(athlete.Goals())+")")
	fs.StringVar(&f.diet, "diet", string(d.Diet), "Diet preference ("+joinNames(athlete.Diets())+")")
	fs.StringVar(&f.injury, "injury", "", "Injury history or concerns")
}

func (f *profileFlags) profile() athlete.Profile {
	return athlete.Profile{
		Sport:       athlete.Sport(f.sport),
		Position:    f.position,
		Age:         f.age,
		HeightCm:    f.height,
		WeightKg:    f.weight,
		Goal:        athlete.Goal(f.goal),
		Diet:        athlete.Diet(f.diet),
		InjuryNotes: f.injury,
	}.Normalize()
}

func joinNames[T ~string](vals []T) string {
	names := make([]string, len(vals))
	for i, v := range vals {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
