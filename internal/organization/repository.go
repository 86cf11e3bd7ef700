package organization

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing organization data.
type Repository interface {
	// Organization methods
	CreateWithOwner(ctx context.Context, org *Organization, ownerID string) error
	GetByID(ctx context.Context, id string) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListForUser(ctx context.Context, userID string) ([]*Organization, error)
	ListAll(ctx context.Context, filter ListFilter) ([]*Organization, int, error)
	SetLogoPath(ctx context.Context, id string, path string) error
	// Member methods
	GetMember(ctx context.Context, orgID string, userID string) (*Member, error)
	AddMember(ctx context.Context, orgID string, userID string, role string) error
	ListMembers(ctx context.Context, orgID string, filter MemberFilter) ([]*Member, int, error)
	// Team methods
	CreateTeam(ctx context.Context, team *Team) error
	ListTeams(ctx context.Context, orgID string) ([]*Team, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new organization repository.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// ------------------------
//   Organization methods
// ------------------------

// CreateWithOwner inserts the organization and its owner membership in one
// transaction. The creator must never end up owning an organization they are
// not a member of, so the two writes commit or fail together.
func (r *pgxRepository) CreateWithOwner(ctx context.Context, org *Organization, ownerID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create organization tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.organizations").
		Columns("name", "slug").
		Values(org.Name, org.Slug).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create organization query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&org.ID, &org.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrSlugTaken
		}
		return fmt.Errorf("CreateWithOwner failed: %w", err)
	}

	query, args, err = psql.Insert("public.organization_members").
		Columns("organization_id", "user_id", "role").
		Values(org.ID, ownerID, RoleOwner).
		ToSql()
	if err != nil {
		return fmt.Errorf("build owner membership query failed: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert owner membership failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Organization, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "slug", "logo_path", "created_at").
		From("public.organizations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get organization query failed: %w", err)
	}

	return scanOrganization(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) GetBySlug(ctx context.Context, slug string) (*Organization, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "slug", "logo_path", "created_at").
		From("public.organizations").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get organization by slug query failed: %w", err)
	}

	return scanOrganization(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("1").
		From("public.organizations").
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build slug exists query failed: %w", err)
	}

	var one int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("SlugExists failed: %w", err)
	}
	return true, nil
}

// ListForUser returns the organizations the user is a member of, ordered by
// membership creation time then organization id. The ordering is what makes
// the guard's "first organization" selection deterministic.
func (r *pgxRepository) ListForUser(ctx context.Context, userID string) ([]*Organization, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("o.id", "o.name", "o.slug", "o.logo_path", "o.created_at").
		From("public.organization_members m").
		Join("public.organizations o ON m.organization_id = o.id").
		Where(squirrel.Eq{"m.user_id": userID}).
		OrderBy("m.created_at ASC", "o.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list organizations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListForUser failed: %w", err)
	}
	defer rows.Close()

	var orgs []*Organization
	for rows.Next() {
		var o Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.LogoPath, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan organization failed: %w", err)
		}
		orgs = append(orgs, &o)
	}

	return orgs, rows.Err()
}

// ListAll retrieves every organization on the platform, paginated. Used by
// platform-admin listings only.
func (r *pgxRepository) ListAll(ctx context.Context, filter ListFilter) ([]*Organization, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"id", "name", "slug", "logo_path", "created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.organizations").
		OrderBy("created_at ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list organizations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListAll failed: %w", err)
	}
	defer rows.Close()

	var orgs []*Organization
	var total int

	for rows.Next() {
		var o Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Slug, &o.LogoPath, &o.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan organization failed: %w", err)
		}
		orgs = append(orgs, &o)
	}

	return orgs, total, rows.Err()
}

func (r *pgxRepository) SetLogoPath(ctx context.Context, id string, path string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.organizations").
		Set("logo_path", path).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set logo path query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("SetLogoPath failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrOrgNotFound
	}
	return nil
}

func scanOrganization(row pgx.Row) (*Organization, error) {
	var o Organization
	if err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.LogoPath, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("scan organization failed: %w", err)
	}
	return &o, nil
}

// ------------------------
//     Member methods
// ------------------------

// GetMember retrieves a member's details from organization_members.
// Returns ErrUserNotMember if the user is not a member of the organization.
func (r *pgxRepository) GetMember(ctx context.Context, orgID string, userID string) (*Member, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"m.organization_id", "u.id", "u.email", "u.name", "m.role", "m.created_at",
	).
		From("public.organization_members m").
		Join("public.users u ON m.user_id = u.id").
		Where(squirrel.Eq{"m.organization_id": orgID}).
		Where(squirrel.Eq{"m.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get member query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var m Member
	if err := row.Scan(&m.OrganizationID, &m.UserID, &m.Email, &m.Name, &m.Role, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotMember
		}
		return nil, fmt.Errorf("GetMember failed: %w", err)
	}

	return &m, nil
}

// AddMember inserts a new record into organization_members.
func (r *pgxRepository) AddMember(ctx context.Context, orgID string, userID string, role string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.organization_members").
		Columns("organization_id", "user_id", "role").
		Values(orgID, userID, role).
		ToSql()
	if err != nil {
		return fmt.Errorf("build add member query failed: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUserAlreadyMember
		}
		return fmt.Errorf("AddMember failed: %w", err)
	}
	return nil
}

// ListMembers retrieves members with their user details.
func (r *pgxRepository) ListMembers(ctx context.Context, orgID string, filter MemberFilter) ([]*Member, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"m.organization_id", "u.id", "u.email", "u.name", "m.role", "m.created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.organization_members m").
		Join("public.users u ON m.user_id = u.id").
		Where(squirrel.Eq{"m.organization_id": orgID}).
		OrderBy("m.created_at ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list members query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ListMembers failed: %w", err)
	}
	defer rows.Close()

	var members []*Member
	var total int

	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.OrganizationID, &m.UserID, &m.Email, &m.Name, &m.Role, &m.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan member failed: %w", err)
		}
		members = append(members, &m)
	}

	return members, total, rows.Err()
}

// ------------------------
//      Team methods
// ------------------------

func (r *pgxRepository) CreateTeam(ctx context.Context, team *Team) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.teams").
		Columns("organization_id", "name").
		Values(team.OrganizationID, team.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create team query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&team.ID, &team.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrOrgNotFound
		}
		return fmt.Errorf("CreateTeam failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListTeams(ctx context.Context, orgID string) ([]*Team, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "organization_id", "name", "created_at").
		From("public.teams").
		Where(squirrel.Eq{"organization_id": orgID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list teams query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListTeams failed: %w", err)
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team failed: %w", err)
		}
		teams = append(teams, &t)
	}

	return teams, rows.Err()
}
