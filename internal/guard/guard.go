package guard

import (
	"context"
	"log"
	"strings"

	"github.com/Talha-Bayansar/moskent-backend/internal/organization"
	"github.com/Talha-Bayansar/moskent-backend/internal/session"
	"github.com/Talha-Bayansar/moskent-backend/internal/user"
)

// Well-known application paths the guard redirects between.
const (
	PathLogin              = "/login"
	PathDashboard          = "/dashboard"
	PathCreateOrganization = "/create-organization"
)

// UserSource is the slice of the user service the guard needs.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// OrganizationSource is the slice of the organization service the guard needs.
type OrganizationSource interface {
	ListForUser(ctx context.Context, userID string) ([]*organization.Organization, error)
	GetMember(ctx context.Context, orgID string, userID string) (*organization.Member, error)
}

// SessionSource is the slice of the session service the guard needs.
type SessionSource interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	SetActiveOrganization(ctx context.Context, id string, orgID string) error
	Invalidate(id string)
}

// RouteContext is the enriched context handed to views behind the guard.
type RouteContext struct {
	User               *user.User
	Organizations      []*organization.Organization
	ActiveOrganization *organization.Organization
	ActiveMember       *organization.Member
}

// Resolution is the outcome of guarding a navigation: either a redirect
// target or a RouteContext for the requested path.
type Resolution struct {
	Redirect string
	Context  *RouteContext
}

// Guard decides, per navigation into the authenticated area, whether to
// redirect or proceed, and resolves the session's active organization.
type Guard struct {
	users    UserSource
	orgs     OrganizationSource
	sessions SessionSource
}

// New creates a Guard.
func New(users UserSource, orgs OrganizationSource, sessions SessionSource) *Guard {
	return &Guard{
		users:    users,
		orgs:     orgs,
		sessions: sessions,
	}
}

// Resolve runs the guard sequence for a navigation to path.
//
//  1. no user -> redirect to login
//  2. fetch the user's organizations
//  3. no organizations and not on the creation page -> redirect there
//  4. organizations exist and on the creation page -> redirect to dashboard
//  5. fetch the session
//  6. organizations exist but none active -> activate the first one,
//     invalidating and re-fetching the session; on failure log and continue
//     with no active organization
//  7. active organization resolved -> fetch the caller's member record
func (g *Guard) Resolve(ctx context.Context, sessionID string, path string) (*Resolution, error) {
	sess, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		return &Resolution{Redirect: PathLogin}, nil
	}

	u, err := g.users.GetByID(ctx, sess.UserID)
	if err != nil || !u.IsActive {
		return &Resolution{Redirect: PathLogin}, nil
	}

	orgs, err := g.orgs.ListForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	// Steps 3 and 4 are mutually exclusive and must share the same
	// predicate, otherwise the two redirects can loop.
	if !hasOrganizations(orgs) && !isCreationPath(path) {
		return &Resolution{Redirect: PathCreateOrganization}, nil
	}
	if hasOrganizations(orgs) && isCreationPath(path) {
		return &Resolution{Redirect: PathDashboard}, nil
	}

	rc := &RouteContext{
		User:          u,
		Organizations: orgs,
	}

	if hasOrganizations(orgs) {
		active := findOrganization(orgs, sess.ActiveOrganizationID)
		if active == nil {
			// No active organization yet (or a stale one): fall back to
			// the first organization in list order. Best effort only; a
			// failure here must not block the navigation.
			first := orgs[0]
			if err := g.sessions.SetActiveOrganization(ctx, sess.ID, first.ID); err != nil {
				log.Printf("guard: failed to set active organization %s for session %s: %v", first.ID, sess.ID, err)
			} else {
				g.sessions.Invalidate(sess.ID)
				if refreshed, err := g.sessions.Get(ctx, sess.ID); err == nil {
					sess = refreshed
					active = findOrganization(orgs, sess.ActiveOrganizationID)
				} else {
					log.Printf("guard: failed to re-fetch session %s: %v", sess.ID, err)
				}
			}
		}

		if active != nil {
			rc.ActiveOrganization = active

			member, err := g.orgs.GetMember(ctx, active.ID, u.ID)
			if err != nil {
				log.Printf("guard: failed to fetch active member for user %s in organization %s: %v", u.ID, active.ID, err)
			} else {
				rc.ActiveMember = member
			}
		}
	}

	return &Resolution{Context: rc}, nil
}

// hasOrganizations is the single membership predicate used by both redirect
// rules.
func hasOrganizations(orgs []*organization.Organization) bool {
	return len(orgs) > 0
}

func isCreationPath(path string) bool {
	return strings.Contains(path, PathCreateOrganization)
}

func findOrganization(orgs []*organization.Organization, id *string) *organization.Organization {
	if id == nil {
		return nil
	}
	for _, o := range orgs {
		if o.ID == *id {
			return o
		}
	}
	return nil
}
