package onboarding

import "github.com/Talha-Bayansar/moskent-backend/internal/organization"

// Status classifies how a submission ended. Best-effort steps (setting the
// active organization, team creation) never fail the whole flow; they
// downgrade the outcome to StatusDegraded so callers cannot mistake a
// swallowed failure for full success.
type Status int

const (
	// StatusOK means every step of the submission succeeded.
	StatusOK Status = iota
	// StatusDegraded means the organization was created but a best-effort
	// step failed; details are in Warnings.
	StatusDegraded
)

// Outcome is the result of a successful (possibly degraded) wizard
// submission. Team is nil when no team was requested or its creation failed.
type Outcome struct {
	Status       Status
	Organization *organization.Organization
	Team         *organization.Team
	Warnings     []string
}

func (o *Outcome) warn(msg string) {
	o.Status = StatusDegraded
	o.Warnings = append(o.Warnings, msg)
}
