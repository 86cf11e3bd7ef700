package organization

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/apperror"
	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/storage"
	"github.com/Talha-Bayansar/moskent-backend/internal/user"
)

// CreateOrganizationRequest defines inputs for creating an organization.
type CreateOrganizationRequest struct {
	Name string
	Slug string
}

// CreateTeamRequest defines inputs for creating a team.
type CreateTeamRequest struct {
	OrganizationID string
	Name           string
}

// ProvisionUserRequest defines inputs for an owner creating a user directly.
type ProvisionUserRequest struct {
	OrganizationID string
	Email          string
	Name           string
	Role           string
}

// Service defines business logic for organizations, members and teams.
type Service interface {
	// Organization methods
	Create(ctx context.Context, creatorID string, req CreateOrganizationRequest) (*Organization, error)
	GetByID(ctx context.Context, id string) (*Organization, error)
	CheckSlug(ctx context.Context, slug string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]*Organization, error)
	ListAll(ctx context.Context, filter ListFilter) ([]*Organization, int, error)
	InvalidateListCache(userID string)
	// Member methods
	GetMember(ctx context.Context, orgID string, userID string) (*Member, error)
	ListMembers(ctx context.Context, orgID string, callerID string, filter MemberFilter) ([]*Member, int, error)
	ProvisionUser(ctx context.Context, callerID string, req ProvisionUserRequest) (*ProvisionedUser, error)
	// Team methods
	CreateTeam(ctx context.Context, callerID string, req CreateTeamRequest) (*Team, error)
	ListTeams(ctx context.Context, orgID string, callerID string) ([]*Team, error)
	// Logo methods
	UploadLogo(ctx context.Context, orgID string, callerID string, content io.Reader) error
	GetLogo(ctx context.Context, orgID string) (io.ReadCloser, error)
}

type service struct {
	repo        Repository
	userService user.Service
	files       storage.Storage
	images      *storage.ImageProcessor

	// Per-user organization-list cache. Mirrors the query cache the clients
	// keep, invalidated on every membership-changing write.
	listMu    sync.RWMutex
	listCache map[string][]*Organization
}

// NewService creates a new organization service.
func NewService(repo Repository, userService user.Service, files storage.Storage) Service {
	return &service{
		repo:        repo,
		userService: userService,
		files:       files,
		images:      storage.NewImageProcessor(),
		listCache:   make(map[string][]*Organization),
	}
}

// ------------------------
//   Organization methods
// ------------------------

// Create validates inputs, checks that the creator is allowed to create
// organizations, and inserts the organization with the creator as owner.
// Slug uniqueness is enforced by the database; a conflict surfaces as
// ErrSlugTaken regardless of what an earlier availability check reported.
func (s *service) Create(ctx context.Context, creatorID string, req CreateOrganizationRequest) (*Organization, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = DeriveSlug(name)
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	creator, err := s.userService.GetByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch creator: %w", err)
	}
	if creator.IsOrganizationBound {
		return nil, apperror.New(403, "organization-bound users cannot create organizations")
	}

	org := &Organization{
		Name: name,
		Slug: slug,
	}

	if err := s.repo.CreateWithOwner(ctx, org, creatorID); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return nil, apperror.Wrap(err, 409, ErrSlugTaken.Error())
		}
		return nil, err
	}

	s.InvalidateListCache(creatorID)

	return org, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Organization, error) {
	return s.repo.GetByID(ctx, id)
}

// CheckSlug reports whether the slug is free. The result is advisory: the
// create call is the authoritative check.
func (s *service) CheckSlug(ctx context.Context, slug string) (bool, error) {
	if err := ValidateSlug(slug); err != nil {
		return false, err
	}

	exists, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]*Organization, error) {
	s.listMu.RLock()
	cached, ok := s.listCache[userID]
	s.listMu.RUnlock()
	if ok {
		return cached, nil
	}

	orgs, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.listMu.Lock()
	s.listCache[userID] = orgs
	s.listMu.Unlock()

	return orgs, nil
}

// ListAll retrieves every organization on the platform, paginated. The route
// serving it is restricted to platform admins.
func (s *service) ListAll(ctx context.Context, filter ListFilter) ([]*Organization, int, error) {
	return s.repo.ListAll(ctx, filter)
}

// InvalidateListCache drops the cached organization list for the user.
func (s *service) InvalidateListCache(userID string) {
	s.listMu.Lock()
	delete(s.listCache, userID)
	s.listMu.Unlock()
}

// ------------------------
//     Member methods
// ------------------------

func (s *service) GetMember(ctx context.Context, orgID string, userID string) (*Member, error) {
	return s.repo.GetMember(ctx, orgID, userID)
}

func (s *service) ListMembers(ctx context.Context, orgID string, callerID string, filter MemberFilter) ([]*Member, int, error) {
	if err := s.requireMember(ctx, orgID, callerID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListMembers(ctx, orgID, filter)
}

// ProvisionUser creates an organization-bound user with a generated password
// and adds them as a member. Only owners and admins of the organization may
// do this.
func (s *service) ProvisionUser(ctx context.Context, callerID string, req ProvisionUserRequest) (*ProvisionedUser, error) {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !ValidRole(role) {
		return nil, apperror.New(400, ErrInvalidRole.Error())
	}

	if err := s.requireManager(ctx, req.OrganizationID, callerID); err != nil {
		return nil, err
	}

	u, password, err := s.userService.Provision(ctx, req.Email, req.Name)
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyUsed) {
			return nil, apperror.Wrap(err, 409, "user with this email already exists")
		}
		return nil, err
	}

	if err := s.repo.AddMember(ctx, req.OrganizationID, u.ID, role); err != nil {
		return nil, err
	}

	s.InvalidateListCache(u.ID)

	return &ProvisionedUser{
		UserID:            u.ID,
		Email:             u.Email,
		GeneratedPassword: password,
		Role:              role,
	}, nil
}

// ------------------------
//      Team methods
// ------------------------

// CreateTeam creates a team within the organization. Team creation is an
// independent operation: a failure here never rolls back the organization.
func (s *service) CreateTeam(ctx context.Context, callerID string, req CreateTeamRequest) (*Team, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return nil, ErrNameTooShort
	}

	if err := s.requireManager(ctx, req.OrganizationID, callerID); err != nil {
		return nil, err
	}

	team := &Team{
		OrganizationID: req.OrganizationID,
		Name:           name,
	}

	if err := s.repo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *service) ListTeams(ctx context.Context, orgID string, callerID string) ([]*Team, error) {
	if err := s.requireMember(ctx, orgID, callerID); err != nil {
		return nil, err
	}
	return s.repo.ListTeams(ctx, orgID)
}

// ------------------------
//      Logo methods
// ------------------------

func (s *service) UploadLogo(ctx context.Context, orgID string, callerID string, content io.Reader) error {
	if err := s.requireManager(ctx, orgID, callerID); err != nil {
		return err
	}

	fitted, err := s.images.FitJPEG(content, 512, 512)
	if err != nil {
		return apperror.Wrap(err, 400, "invalid image")
	}

	path := logoPath(orgID)
	if err := s.files.Save(ctx, path, fitted); err != nil {
		return fmt.Errorf("failed to store logo: %w", err)
	}

	return s.repo.SetLogoPath(ctx, orgID, path)
}

func (s *service) GetLogo(ctx context.Context, orgID string) (io.ReadCloser, error) {
	org, err := s.repo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org.LogoPath == nil {
		return nil, apperror.New(404, "organization has no logo")
	}
	return s.files.Get(ctx, *org.LogoPath)
}

func logoPath(orgID string) string {
	return orgID + "/logo.jpg"
}

// ------------------------
//   Permission helpers
// ------------------------

// requireMember returns a 403 AppError unless the caller belongs to the
// organization. Platform admins pass regardless of membership.
func (s *service) requireMember(ctx context.Context, orgID string, callerID string) error {
	admin, err := s.isPlatformAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if admin {
		return nil
	}

	_, err = s.repo.GetMember(ctx, orgID, callerID)
	if err != nil {
		if errors.Is(err, ErrUserNotMember) {
			return apperror.New(403, "permission denied")
		}
		return err
	}
	return nil
}

// requireManager returns a 403 AppError unless the caller is an owner or
// admin of the organization. Platform admins pass regardless of membership.
func (s *service) requireManager(ctx context.Context, orgID string, callerID string) error {
	admin, err := s.isPlatformAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if admin {
		return nil
	}

	m, err := s.repo.GetMember(ctx, orgID, callerID)
	if err != nil {
		if errors.Is(err, ErrUserNotMember) {
			return apperror.New(403, "permission denied")
		}
		return err
	}
	if m.Role != RoleOwner && m.Role != RoleAdmin {
		return apperror.New(403, "permission denied")
	}
	return nil
}

func (s *service) isPlatformAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	u, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.IsPlatformAdmin, nil
}
