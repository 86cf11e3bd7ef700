package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talha-Bayansar/moskent-backend/internal/organization"
)

type fakeOrgAPI struct {
	createErr     error
	createTeamErr error
	slugAvailable bool

	createdOrg    *organization.Organization
	createdTeam   *organization.Team
	invalidations []string
	checkedSlugs  []string
}

func (f *fakeOrgAPI) Create(_ context.Context, creatorID string, req organization.CreateOrganizationRequest) (*organization.Organization, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdOrg = &organization.Organization{ID: "org-1", Name: req.Name, Slug: req.Slug}
	return f.createdOrg, nil
}

func (f *fakeOrgAPI) CreateTeam(_ context.Context, callerID string, req organization.CreateTeamRequest) (*organization.Team, error) {
	if f.createTeamErr != nil {
		return nil, f.createTeamErr
	}
	f.createdTeam = &organization.Team{ID: "team-1", OrganizationID: req.OrganizationID, Name: req.Name}
	return f.createdTeam, nil
}

func (f *fakeOrgAPI) CheckSlug(_ context.Context, slug string) (bool, error) {
	f.checkedSlugs = append(f.checkedSlugs, slug)
	return f.slugAvailable, nil
}

func (f *fakeOrgAPI) InvalidateListCache(userID string) {
	f.invalidations = append(f.invalidations, userID)
}

type fakeActiveSetter struct {
	err   error
	calls int
}

func (f *fakeActiveSetter) SetActiveOrganization(_ context.Context, _ string, _ string) error {
	f.calls++
	return f.err
}

func newWizardFixture() (*Service, *fakeOrgAPI, *fakeActiveSetter) {
	orgs := &fakeOrgAPI{slugAvailable: true}
	setter := &fakeActiveSetter{}
	// Short debounce so tests never wait on timers.
	return NewService(orgs, setter, time.Millisecond), orgs, setter
}

const sid = "sess-1"

func TestWizardStartsAtStepOne(t *testing.T) {
	svc, _, _ := newWizardFixture()

	view := svc.State(sid)
	assert.Equal(t, StepBasicInfo, view.Step)
	assert.False(t, view.CanAdvance)
}

func TestSetBasicInfoDerivesSlugFromName(t *testing.T) {
	svc, _, _ := newWizardFixture()

	view, err := svc.SetBasicInfo(sid, "Al Noor Mosque", nil)
	require.NoError(t, err)

	assert.Equal(t, "al-noor-mosque", view.Slug)
	assert.True(t, view.CanAdvance)
}

func TestManualSlugEditStopsDerivation(t *testing.T) {
	svc, _, _ := newWizardFixture()

	custom := "my-mosque"
	_, err := svc.SetBasicInfo(sid, "Al Noor Mosque", &custom)
	require.NoError(t, err)

	// A later name change must not overwrite the user's slug.
	view, err := svc.SetBasicInfo(sid, "Something Else", nil)
	require.NoError(t, err)
	assert.Equal(t, "my-mosque", view.Slug)
}

func TestSetBasicInfoSanitizesManualSlug(t *testing.T) {
	svc, _, _ := newWizardFixture()

	raw := "My Slug!!"
	view, err := svc.SetBasicInfo(sid, "Name", &raw)
	require.NoError(t, err)
	assert.Equal(t, "myslug", view.Slug)
}

func TestNextRequiresNameAndSlugLength(t *testing.T) {
	cases := []struct {
		name    string
		orgName string
		slug    string
		ok      bool
	}{
		{"both valid", "Al Noor", "al-noor", true},
		{"name too short", "A", "al-noor", false},
		{"slug too short", "Al Noor", "a", false},
		{"both empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newWizardFixture()

			slug := tc.slug
			_, err := svc.SetBasicInfo(sid, tc.orgName, &slug)
			require.NoError(t, err)

			view, err := svc.Next(sid)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, StepTeam, view.Step)
			} else {
				require.Error(t, err)
				assert.Equal(t, StepBasicInfo, view.Step)
			}
		})
	}
}

func TestAdvanceIgnoresAvailabilityResult(t *testing.T) {
	svc, orgs, _ := newWizardFixture()
	orgs.slugAvailable = false

	_, err := svc.SetBasicInfo(sid, "Al Noor", nil)
	require.NoError(t, err)

	// Let the debounced check run and report unavailable.
	time.Sleep(20 * time.Millisecond)

	view, err := svc.Next(sid)
	require.NoError(t, err, "availability is advisory; the create call is authoritative")
	assert.Equal(t, StepTeam, view.Step)
}

func TestSetTeamRequiresNameWhenToggled(t *testing.T) {
	svc, _, _ := newWizardFixture()
	toStepTwo(t, svc)

	_, err := svc.SetTeam(sid, true, "A")
	require.Error(t, err)

	view, err := svc.SetTeam(sid, true, "Youth Committee")
	require.NoError(t, err)
	assert.True(t, view.CreateTeam)
	assert.Equal(t, "Youth Committee", view.TeamName)
}

func TestSetTeamDisabledDropsName(t *testing.T) {
	svc, _, _ := newWizardFixture()
	toStepTwo(t, svc)

	_, err := svc.SetTeam(sid, true, "Youth Committee")
	require.NoError(t, err)

	view, err := svc.SetTeam(sid, false, "ignored")
	require.NoError(t, err)
	assert.False(t, view.CreateTeam)
	assert.Empty(t, view.TeamName)
}

func TestBackOnlyDecrements(t *testing.T) {
	svc, _, _ := newWizardFixture()
	toStepTwo(t, svc)

	view, err := svc.Back(sid)
	require.NoError(t, err)
	assert.Equal(t, StepBasicInfo, view.Step)

	_, err = svc.Back(sid)
	require.Error(t, err, "cannot go back from step 1")
}

func TestSubmitHappyPath(t *testing.T) {
	svc, orgs, setter := newWizardFixture()
	toStepTwo(t, svc)

	_, err := svc.SetTeam(sid, true, "Youth Committee")
	require.NoError(t, err)

	outcome, err := svc.Submit(context.Background(), sid, "user-1")
	require.NoError(t, err)

	assert.Equal(t, StatusOK, outcome.Status)
	require.NotNil(t, outcome.Organization)
	assert.Equal(t, "al-noor", outcome.Organization.Slug)
	require.NotNil(t, outcome.Team)
	assert.Equal(t, "Youth Committee", outcome.Team.Name)
	assert.Empty(t, outcome.Warnings)

	assert.Equal(t, 1, setter.calls)
	assert.Equal(t, []string{"user-1"}, orgs.invalidations)

	view := svc.State(sid)
	assert.Equal(t, StepComplete, view.Step)
	require.NotNil(t, view.Outcome)
}

func TestSubmitWithoutTeam(t *testing.T) {
	svc, orgs, _ := newWizardFixture()
	toStepTwo(t, svc)

	outcome, err := svc.Submit(context.Background(), sid, "user-1")
	require.NoError(t, err)

	assert.Equal(t, StatusOK, outcome.Status)
	assert.Nil(t, outcome.Team)
	assert.Nil(t, orgs.createdTeam)
}

func TestSubmitOrganizationFailureStaysOnStepTwo(t *testing.T) {
	svc, orgs, setter := newWizardFixture()
	toStepTwo(t, svc)

	orgs.createErr = errors.New("slug is already taken")

	_, err := svc.Submit(context.Background(), sid, "user-1")
	require.Error(t, err)

	assert.Zero(t, setter.calls, "nothing runs after a failed create")
	assert.Empty(t, orgs.invalidations)

	view := svc.State(sid)
	assert.Equal(t, StepTeam, view.Step, "wizard stays on step 2 for a retry")
}

func TestSubmitTeamFailureDegradesButCompletes(t *testing.T) {
	svc, orgs, _ := newWizardFixture()
	toStepTwo(t, svc)

	_, err := svc.SetTeam(sid, true, "Youth Committee")
	require.NoError(t, err)

	orgs.createTeamErr = errors.New("team limit reached")

	outcome, err := svc.Submit(context.Background(), sid, "user-1")
	require.NoError(t, err, "team failure must not fail the flow")

	assert.Equal(t, StatusDegraded, outcome.Status)
	require.NotNil(t, outcome.Organization)
	assert.Nil(t, outcome.Team)
	assert.NotEmpty(t, outcome.Warnings)
	assert.Equal(t, []string{"user-1"}, orgs.invalidations, "list caches invalidated despite team failure")

	view := svc.State(sid)
	assert.Equal(t, StepComplete, view.Step)
}

func TestSubmitSetActiveFailureDegrades(t *testing.T) {
	svc, _, setter := newWizardFixture()
	toStepTwo(t, svc)

	setter.err = errors.New("boom")

	outcome, err := svc.Submit(context.Background(), sid, "user-1")
	require.NoError(t, err)

	assert.Equal(t, StatusDegraded, outcome.Status)
	require.NotNil(t, outcome.Organization)
	assert.NotEmpty(t, outcome.Warnings)
}

func TestSubmitFromWrongStep(t *testing.T) {
	svc, _, _ := newWizardFixture()

	_, err := svc.Submit(context.Background(), sid, "user-1")
	require.Error(t, err, "submission is only possible from step 2")
}

func TestResetDiscardsState(t *testing.T) {
	svc, _, _ := newWizardFixture()
	toStepTwo(t, svc)

	svc.Reset(sid)

	view := svc.State(sid)
	assert.Equal(t, StepBasicInfo, view.Step)
	assert.Empty(t, view.Name)
}

func toStepTwo(t *testing.T, svc *Service) {
	t.Helper()

	_, err := svc.SetBasicInfo(sid, "Al Noor", nil)
	require.NoError(t, err)

	_, err = svc.Next(sid)
	require.NoError(t, err)
}
