// Package prompt turns an athlete profile and its BMI reading into the
// instruction text sent to a generation provider.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/config"
)

// Layout selects how the model is asked to format the plan.
type Layout string

const (
	// LayoutSections asks for a numbered list of plan sections.
	LayoutSections Layout = "sections"
	// LayoutTable asks for a Markdown table plus a short list of tips.
	LayoutTable Layout = "table"
)

// ParseLayout accepts "sections" or "table"; empty means sections.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case "", LayoutSections:
		return LayoutSections, nil
	case LayoutTable:
		return LayoutTable, nil
	default:
		return "", fmt.Errorf("unknown prompt layout %q", s)
	}
}

// Builder renders prompts. It has no mutable state and is safe to share.
type Builder struct {
	persona   string
	wordLimit int
	layout    Layout
}

type Option func(*Builder)

func WithPersona(persona string) Option {
	return func(b *Builder) {
		if p := strings.TrimSpace(persona); p != "" {
			b.persona = p
		}
	}
}

func WithWordLimit(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.wordLimit = n
		}
	}
}

func WithLayout(l Layout) Option {
	return func(b *Builder) {
		if l == LayoutSections || l == LayoutTable {
			b.layout = l
		}
	}
}

// New creates a Builder with the default persona, word limit and layout,
// then applies opts.
func New(opts ...Option) *Builder {
	b := &Builder{
		persona:   DefaultPersona,
		wordLimit: DefaultWordLimit,
		layout:    LayoutSections,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Builder) Persona() string { return b.persona }
func (b *Builder) WordLimit() int  { return b.wordLimit }
func (b *Builder) Layout() Layout  { return b.layout }

// Build renders the prompt. Identical inputs always give identical output.
func (b *Builder) Build(p athlete.Profile, r bmi.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s, an expert youth sports coach.\n\n", b.persona)

	sb.WriteString("Athlete Details:\n")
	fmt.Fprintf(&sb, "Sport: %s\n", orDefault(string(p.Sport), "unspecified"))
	fmt.Fprintf(&sb, "Position: %s\n", p.PositionOrDefault())
	fmt.Fprintf(&sb, "Age: %d\n", p.Age)
	fmt.Fprintf(&sb, "BMI: %s\n", r)
	fmt.Fprintf(&sb, "Goal: %s\n", orDefault(string(p.Goal), "unspecified"))
	fmt.Fprintf(&sb, "Injury history: %s\n", p.InjuryOrDefault())
	fmt.Fprintf(&sb, "Diet preference: %s\n\n", orDefault(string(p.Diet), "unspecified"))

	switch b.layout {
	case LayoutTable:
		fmt.Fprintf(&sb, "Respond with a Markdown table with the columns %s and one row for each of: %s.\n",
			strings.Join(TableColumns, " | "), strings.Join(Sections, ", "))
		fmt.Fprintf(&sb, "After the table, add at most %d bullet-point tips. No other text.\n\n", MaxTips)
	default:
		sb.WriteString("Provide:\n")
		for i, s := range Sections {
			sb.WriteString(strconv.Itoa(i+1) + ". " + s + "\n")
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Keep the whole plan under %d words.\n", b.wordLimit)
	sb.WriteString(safetyLine + "\n")

	return sb.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// FromConfig creates a Builder from the prompt section of the application
// configuration. Zero values fall back to the defaults.
func FromConfig(cfg config.PromptConfig) (*Builder, error) {
	layout, err := ParseLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}
	return New(
		WithPersona(cfg.Persona),
		WithWordLimit(cfg.WordLimit),
		WithLayout(layout),
	), nil
}
