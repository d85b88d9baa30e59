// Package repository implements membership lookups.
// Repositories support both PostgreSQL and MySQL; membership rows are
// written by the billing system and read-only here.
package repository

import (
	"context"
	"database/sql"

	"github.com/ngoinfo/copilot-gateway/internal/database"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	"github.com/ngoinfo/copilot-gateway/internal/membership/domain"
)

// PostgreSQLMembershipRepository implements membership lookups for PostgreSQL databases.
type PostgreSQLMembershipRepository struct {
	db *sql.DB
}

// NewPostgreSQLMembershipRepository creates a new PostgreSQLMembershipRepository.
func NewPostgreSQLMembershipRepository(db *sql.DB) *PostgreSQLMembershipRepository {
	return &PostgreSQLMembershipRepository{db: db}
}

// Active returns a principal's active memberships. A principal with no rows
// has no memberships; that is not an error.
func (p *PostgreSQLMembershipRepository) Active(ctx context.Context, principalID string) ([]domain.Membership, error) {
	query := `SELECT plan_id FROM memberships WHERE principal_id = $1 AND active = TRUE`

	rows, err := database.GetTx(ctx, p.db).QueryContext(ctx, query, principalID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query memberships")
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.PlanID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan membership")
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate memberships")
	}
	return memberships, nil
}
