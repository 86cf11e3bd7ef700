package http

import (
	"github.com/Talha-Bayansar/moskent-backend/internal/onboarding"
	orgHttp "github.com/Talha-Bayansar/moskent-backend/internal/organization/http"
)

// BasicInfoRequest updates the step-1 draft. Slug is a pointer so "not sent"
// (keep auto-deriving from the name) and "sent" (user edited the slug, stop
// deriving) stay distinguishable.
type BasicInfoRequest struct {
	Name string  `json:"name" binding:"required"`
	Slug *string `json:"slug"`
}

// TeamStepRequest updates the step-2 draft.
type TeamStepRequest struct {
	CreateTeam bool   `json:"create_team"`
	TeamName   string `json:"team_name"`
}

// OutcomeResponse is the API shape of a submission outcome.
type OutcomeResponse struct {
	Status       string                        `json:"status"`
	Organization *orgHttp.OrganizationResponse `json:"organization,omitempty"`
	Team         *orgHttp.TeamResponse         `json:"team,omitempty"`
	Warnings     []string                      `json:"warnings,omitempty"`
}

// WizardResponse is the API shape of the wizard state.
type WizardResponse struct {
	Step       int              `json:"step"`
	Name       string           `json:"name"`
	Slug       string           `json:"slug"`
	SlugStatus string           `json:"slug_status"`
	CreateTeam bool             `json:"create_team"`
	TeamName   string           `json:"team_name,omitempty"`
	CanAdvance bool             `json:"can_advance"`
	Outcome    *OutcomeResponse `json:"outcome,omitempty"`
}

// NewWizardResponse converts a wizard view to its API shape.
func NewWizardResponse(v onboarding.View) WizardResponse {
	resp := WizardResponse{
		Step:       int(v.Step),
		Name:       v.Name,
		Slug:       v.Slug,
		SlugStatus: string(v.SlugStatus),
		CreateTeam: v.CreateTeam,
		TeamName:   v.TeamName,
		CanAdvance: v.CanAdvance,
	}
	if v.Outcome != nil {
		o := NewOutcomeResponse(v.Outcome)
		resp.Outcome = &o
	}
	return resp
}

// NewOutcomeResponse converts a submission outcome to its API shape.
func NewOutcomeResponse(o *onboarding.Outcome) OutcomeResponse {
	resp := OutcomeResponse{
		Status:   statusString(o.Status),
		Warnings: o.Warnings,
	}
	if o.Organization != nil {
		org := orgHttp.NewOrganizationResponse(o.Organization)
		resp.Organization = &org
	}
	if o.Team != nil {
		team := orgHttp.NewTeamResponse(o.Team)
		resp.Team = &team
	}
	return resp
}

func statusString(s onboarding.Status) string {
	if s == onboarding.StatusDegraded {
		return "degraded"
	}
	return "ok"
}
