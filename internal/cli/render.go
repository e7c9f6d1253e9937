package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/briangreenhill/athletiq/internal/bmi"
	"github.com/briangreenhill/athletiq/internal/plan"
)

var (
	primaryColor = lipgloss.Color("#7C3AED")
	okColor      = lipgloss.Color("#10B981")
	warnColor    = lipgloss.Color("#F59E0B")
	dangerColor  = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(dangerColor)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)
)

// categoryStyle colours a BMI band like a status indicator.
func categoryStyle(c bmi.Category) lipgloss.Style {
	switch c {
	case bmi.Normal:
		return lipgloss.NewStyle().Bold(true).Foreground(okColor)
	case bmi.Underweight, bmi.Overweight:
		return lipgloss.NewStyle().Bold(true).Foreground(warnColor)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(dangerColor)
	}
}

func renderBMI(w io.Writer, r bmi.Result) {
	card := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("BMI %.1f", r.Value)),
		categoryStyle(r.Category).Render(r.Category.Label(bmi.LabelsCoaching)),
	)
	fmt.Fprintln(w, panelStyle.Render(card))
	fmt.Fprintln(w, mutedStyle.Render(bmi.Disclaimer))
}

func renderPlan(w io.Writer, p *plan.Plan) {
	renderBMI(w, p.BMI)
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render(p.Title()))
	switch p.Status {
	case plan.StatusReady:
		fmt.Fprintln(w, strings.TrimSpace(p.Text))
	default:
		fmt.Fprintln(w, errorStyle.Render(p.Error))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
