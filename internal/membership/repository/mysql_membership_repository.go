package repository

import (
	"context"
	"database/sql"

	"github.com/ngoinfo/copilot-gateway/internal/database"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
	"github.com/ngoinfo/copilot-gateway/internal/membership/domain"
)

// MySQLMembershipRepository implements membership lookups for MySQL databases.
type MySQLMembershipRepository struct {
	db *sql.DB
}

// NewMySQLMembershipRepository creates a new MySQLMembershipRepository.
func NewMySQLMembershipRepository(db *sql.DB) *MySQLMembershipRepository {
	return &MySQLMembershipRepository{db: db}
}

// Active returns a principal's active memberships.
func (m *MySQLMembershipRepository) Active(ctx context.Context, principalID string) ([]domain.Membership, error) {
	query := `SELECT plan_id FROM memberships WHERE principal_id = ? AND active = TRUE`

	rows, err := database.GetTx(ctx, m.db).QueryContext(ctx, query, principalID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query memberships")
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var membership domain.Membership
		if err := rows.Scan(&membership.PlanID); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan membership")
		}
		memberships = append(memberships, membership)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate memberships")
	}
	return memberships, nil
}
