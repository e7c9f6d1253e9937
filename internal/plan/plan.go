// Package plan ties the BMI classifier, the prompt builder and a generation
// provider together into one training plan request.
package plan

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/briangreenhill/athletiq/internal/athlete"
	"github.com/briangreenhill/athletiq/internal/bmi"
)

// ErrNotFound is returned by a Store for unknown plan IDs.
var ErrNotFound = errors.New("plan not found")

// ErrNotSaved is returned when a finished plan could not be stored.
var ErrNotSaved = errors.New("plan not saved")

type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Plan is the outcome of one generation request. Text is set when Status is
// ready, Error holds a readable cause when it is failed.
type Plan struct {
	ID        uuid.UUID       `json:"id"`
	Status    Status          `json:"status"`
	Profile   athlete.Profile `json:"profile"`
	BMI       bmi.Result      `json:"bmi"`
	Prompt    string          `json:"prompt"`
	Text      string          `json:"text,omitempty"`
	Error     string          `json:"error,omitempty"`
	Provider  string          `json:"provider,omitempty"`
	Model     string          `json:"model,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Unsaved is set when the plan was generated but never reached the store,
	// so it cannot be fetched or downloaded later.
	Unsaved bool `json:"-"`
}

// Title is the short label shown above a plan, e.g. "Football • Build stamina".
func (p *Plan) Title() string {
	return string(p.Profile.Sport) + " • " + string(p.Profile.Goal)
}

// Filename is the download name, e.g. "Athletiq_AI_Football_Plan.txt".
func (p *Plan) Filename(appName string) string {
	return Filename(appName, p.Profile.Sport)
}

// Filename builds "<AppName>_<sport>_Plan.txt" with spaces replaced.
func Filename(appName string, sport athlete.Sport) string {
	name := strings.Join([]string{
		strings.TrimSpace(appName),
		strings.TrimSpace(string(sport)),
		"Plan",
	}, "_")
	name = strings.Join(strings.Fields(name), "_")
	return strings.ReplaceAll(name, "/", "-") + ".txt"
}

// Export renders the plan as the plain text offered for download.
func (p *Plan) Export() string {
	var sb strings.Builder
	sb.WriteString(p.Title() + "\n")
	sb.WriteString("BMI: " + p.BMI.String() + "\n\n")
	sb.WriteString(strings.TrimSpace(p.Text) + "\n")
	return sb.String()
}
