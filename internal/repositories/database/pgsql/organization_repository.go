package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const selectOrganizationQuery = `
SELECT
	o.organization_id, o.name, o.description, o.is_active,
	o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
FROM organizations o
`

func (r *PgxOrganizationRepository) getOrganizations(ctx context.Context, filterQuery string, args ...any) ([]domain.Organization, error) {
	rows, err := r.Pool.Query(ctx, selectOrganizationQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations", err)
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(
			&o.OrganizationID, &o.Name, &o.Description, &o.IsActive,
			&o.CreatedAt, &o.CreatedBy, &o.LastUpdatedAt, &o.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization row", err)
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate organization rows", err)
	}
	if orgs == nil {
		return []domain.Organization{}, nil
	}
	return orgs, nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	orgs, err := r.getOrganizations(ctx, `WHERE o.organization_id = $1`, organizationID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, apperrors.NewNotFoundError("organization not found")
	}
	return &orgs[0], nil
}

func (r *PgxOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `JOIN user_organizations uo ON o.organization_id = uo.organization_id
		WHERE uo.user_id = $1 AND o.is_active = TRUE
		ORDER BY o.name;`
	return r.getOrganizations(ctx, query, userID)
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization, creator domain.UserOrganization) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO organizations (organization_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		org.OrganizationID, org.Name, org.Description, org.IsActive,
		org.CreatedAt, org.CreatedBy, org.LastUpdatedAt, org.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("organization ID " + org.OrganizationID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save organization "+org.OrganizationID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4);`,
		creator.UserID, creator.OrganizationID, creator.Role, creator.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add creator to organization "+org.OrganizationID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	query := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query, membership.UserID, membership.OrganizationID, membership.Role, membership.JoinedAt)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return apperrors.NewValidationFailedError("user or organization does not exist")
		}
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in organization "+membership.OrganizationID, err)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	query := `
		SELECT user_id, organization_id, role, joined_at
		FROM user_organizations
		WHERE user_id = $1 AND organization_id = $2;
	`
	var uo domain.UserOrganization
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(&uo.UserID, &uo.OrganizationID, &uo.Role, &uo.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("membership not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" role in organization "+organizationID, err)
	}
	return &uo, nil
}

func (r *PgxOrganizationRepository) ListOrganizationMembers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, u.name, uo.organization_id, uo.role, uo.joined_at
		FROM user_organizations uo
		JOIN users u ON u.user_id = uo.user_id
		WHERE uo.organization_id = $1
		ORDER BY u.name;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organization members", err)
	}
	defer rows.Close()

	members := []domain.UserOrganization{}
	for rows.Next() {
		var m domain.UserOrganization
		if err := rows.Scan(&m.UserID, &m.UserName, &m.OrganizationID, &m.Role, &m.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate organization members", err)
	}
	return members, nil
}
