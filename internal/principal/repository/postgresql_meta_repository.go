// Package repository implements per-principal metadata persistence.
// Repositories support both PostgreSQL and MySQL over a plain key-value table
// scoped by principal id.
package repository

import (
	"context"
	"database/sql"

	"github.com/ngoinfo/copilot-gateway/internal/database"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

// PostgreSQLMetaRepository implements metadata persistence for PostgreSQL databases.
type PostgreSQLMetaRepository struct {
	db *sql.DB
}

// NewPostgreSQLMetaRepository creates a new PostgreSQLMetaRepository.
func NewPostgreSQLMetaRepository(db *sql.DB) *PostgreSQLMetaRepository {
	return &PostgreSQLMetaRepository{db: db}
}

// Get retrieves a metadata value. Returns ErrNotFound when absent.
func (p *PostgreSQLMetaRepository) Get(ctx context.Context, principalID, key string) (string, error) {
	query := `SELECT meta_value FROM principal_meta WHERE principal_id = $1 AND meta_key = $2`

	var value string
	err := database.GetTx(ctx, p.db).QueryRowContext(ctx, query, principalID, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.Wrap(err, "failed to get principal meta")
	}
	return value, nil
}

// Set inserts or overwrites a metadata value.
func (p *PostgreSQLMetaRepository) Set(ctx context.Context, principalID, key, value string) error {
	query := `INSERT INTO principal_meta (principal_id, meta_key, meta_value, updated_at) VALUES ($1, $2, $3, NOW())
			  ON CONFLICT (principal_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value, updated_at = NOW()`

	if _, err := database.GetTx(ctx, p.db).ExecContext(ctx, query, principalID, key, value); err != nil {
		return apperrors.Wrap(err, "failed to set principal meta")
	}
	return nil
}
