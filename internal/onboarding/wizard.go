package onboarding

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Talha-Bayansar/moskent-backend/internal/organization"
	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/apperror"
)

// Step is the wizard's current ordinal position. Steps are strictly linear:
// no skipping forward, back navigation only decrements.
type Step int

const (
	StepBasicInfo Step = 1
	StepTeam      Step = 2
	StepComplete  Step = 3
)

// OrganizationAPI is the slice of the organization service the wizard needs.
type OrganizationAPI interface {
	Create(ctx context.Context, creatorID string, req organization.CreateOrganizationRequest) (*organization.Organization, error)
	CreateTeam(ctx context.Context, callerID string, req organization.CreateTeamRequest) (*organization.Team, error)
	CheckSlug(ctx context.Context, slug string) (bool, error)
	InvalidateListCache(userID string)
}

// ActiveSetter marks an organization active on a session.
type ActiveSetter interface {
	SetActiveOrganization(ctx context.Context, sessionID string, orgID string) error
}

// basicInfo is the step-1 draft. slugEdited records that the user touched
// the slug field directly, which stops auto-derivation from the name.
type basicInfo struct {
	name       string
	slug       string
	slugEdited bool
}

// teamChoice is the step-2 draft. A team name is only held while CreateTeam
// is set, so "name present but toggle off" cannot be represented.
type teamChoice struct {
	createTeam bool
	teamName   string
}

// wizard is one session's onboarding state.
type wizard struct {
	step    Step
	basic   basicInfo
	team    teamChoice
	outcome *Outcome
	checker *SlugChecker
}

// View is the read-only projection of a wizard handed to the HTTP layer.
type View struct {
	Step       Step
	Name       string
	Slug       string
	SlugStatus SlugStatus
	CreateTeam bool
	TeamName   string
	Outcome    *Outcome
	CanAdvance bool
}

// Service manages per-session wizard state. State is ephemeral: it lives in
// memory for the duration of the onboarding flow and is discarded when the
// wizard is reset or the session goes away.
type Service struct {
	orgs     OrganizationAPI
	setter   ActiveSetter
	debounce time.Duration

	mu      sync.Mutex
	wizards map[string]*wizard
}

// NewService creates the onboarding Service. debounce controls the slug
// availability check delay.
func NewService(orgs OrganizationAPI, setter ActiveSetter, debounce time.Duration) *Service {
	return &Service{
		orgs:     orgs,
		setter:   setter,
		debounce: debounce,
		wizards:  make(map[string]*wizard),
	}
}

// get returns the session's wizard, creating a fresh one at step 1 if none
// exists yet. Caller must hold s.mu.
func (s *Service) get(sessionID string) *wizard {
	w, ok := s.wizards[sessionID]
	if !ok {
		w = &wizard{
			step:    StepBasicInfo,
			checker: NewSlugChecker(s.orgs, s.debounce),
		}
		s.wizards[sessionID] = w
	}
	return w
}

// State returns the current wizard view for the session, starting a new
// wizard if needed.
func (s *Service) State(sessionID string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(s.get(sessionID))
}

// Reset discards the session's wizard state.
func (s *Service) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.wizards[sessionID]; ok {
		w.checker.Stop()
		delete(s.wizards, sessionID)
	}
}

// SetBasicInfo updates the step-1 draft. The slug auto-derives from the name
// until the user provides a slug themselves; after that the name no longer
// overwrites it. Every slug change schedules a debounced availability check.
func (s *Service) SetBasicInfo(sessionID string, name string, slug *string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.get(sessionID)
	if w.step != StepBasicInfo {
		return s.view(w), apperror.New(409, "basic info can only be edited on step 1")
	}

	w.basic.name = name

	switch {
	case slug != nil:
		w.basic.slug = sanitizeSlugInput(*slug)
		w.basic.slugEdited = true
		w.checker.Schedule(w.basic.slug)
	case !w.basic.slugEdited:
		w.basic.slug = organization.DeriveSlug(name)
		w.checker.Schedule(w.basic.slug)
	}

	return s.view(w), nil
}

// SetTeam updates the step-2 draft. When createTeam is false the team name
// is dropped entirely.
func (s *Service) SetTeam(sessionID string, createTeam bool, teamName string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.get(sessionID)
	if w.step != StepTeam {
		return s.view(w), apperror.New(409, "team settings can only be edited on step 2")
	}

	if !createTeam {
		w.team = teamChoice{}
		return s.view(w), nil
	}

	teamName = strings.TrimSpace(teamName)
	if len(teamName) < 2 {
		return s.view(w), apperror.New(400, organization.ErrNameTooShort.Error())
	}

	w.team = teamChoice{createTeam: true, teamName: teamName}
	return s.view(w), nil
}

// Next advances from step 1 to step 2. It requires name and slug to be at
// least 2 characters; the availability check result is advisory and never
// blocks advancing.
func (s *Service) Next(sessionID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.get(sessionID)
	if w.step != StepBasicInfo {
		return s.view(w), apperror.New(409, "cannot advance from this step")
	}
	if !canAdvance(w) {
		return s.view(w), apperror.New(400, "name and slug must be at least 2 characters")
	}

	w.step = StepTeam
	return s.view(w), nil
}

// Back decrements the step. It never undoes external calls; none have been
// made before the final submit.
func (s *Service) Back(sessionID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.get(sessionID)
	if w.step != StepTeam {
		return s.view(w), apperror.New(409, "cannot go back from this step")
	}

	w.step = StepBasicInfo
	return s.view(w), nil
}

// Submit runs the creation sequence from step 2:
//
//   - create the organization; on failure abort and stay on step 2
//   - set it active on the session (best effort)
//   - create the team if requested (failure downgrades, never aborts:
//     the organization already exists)
//   - invalidate the cached organization lists
//   - advance to step 3 with the results attached
func (s *Service) Submit(ctx context.Context, sessionID string, userID string) (*Outcome, error) {
	s.mu.Lock()
	w := s.get(sessionID)

	if w.step != StepTeam {
		s.mu.Unlock()
		return nil, apperror.New(409, "submission is only possible from step 2")
	}
	if !canAdvance(w) {
		s.mu.Unlock()
		return nil, apperror.New(400, "organization details are incomplete")
	}

	basic := w.basic
	team := w.team
	s.mu.Unlock()

	// External calls happen outside the lock; the wizard is only mutated
	// again once the organization exists.
	org, err := s.orgs.Create(ctx, userID, organization.CreateOrganizationRequest{
		Name: basic.name,
		Slug: basic.slug,
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Status:       StatusOK,
		Organization: org,
	}

	if err := s.setter.SetActiveOrganization(ctx, sessionID, org.ID); err != nil {
		log.Printf("onboarding: failed to set organization %s active for session %s: %v", org.ID, sessionID, err)
		outcome.warn("organization created, but could not be set as active")
	}

	if team.createTeam {
		created, err := s.orgs.CreateTeam(ctx, userID, organization.CreateTeamRequest{
			OrganizationID: org.ID,
			Name:           team.teamName,
		})
		if err != nil {
			log.Printf("onboarding: failed to create team for organization %s: %v", org.ID, err)
			outcome.warn("organization created, but failed to create team")
		} else {
			outcome.Team = created
		}
	}

	s.orgs.InvalidateListCache(userID)

	s.mu.Lock()
	w.step = StepComplete
	w.outcome = outcome
	w.checker.Stop()
	s.mu.Unlock()

	return outcome, nil
}

func (s *Service) view(w *wizard) View {
	_, slugStatus := w.checker.Status()
	return View{
		Step:       w.step,
		Name:       w.basic.name,
		Slug:       w.basic.slug,
		SlugStatus: slugStatus,
		CreateTeam: w.team.createTeam,
		TeamName:   w.team.teamName,
		Outcome:    w.outcome,
		CanAdvance: canAdvance(w),
	}
}

func canAdvance(w *wizard) bool {
	return len(strings.TrimSpace(w.basic.name)) >= 2 && len(w.basic.slug) >= 2
}

// sanitizeSlugInput mirrors the slug field's input filter: lowercase and
// drop anything outside [a-z0-9-].
func sanitizeSlugInput(slug string) string {
	lower := strings.ToLower(strings.TrimSpace(slug))

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
