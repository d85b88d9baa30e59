package repository

import (
	"context"
	"database/sql"

	"github.com/ngoinfo/copilot-gateway/internal/database"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

// MySQLMetaRepository implements metadata persistence for MySQL databases.
type MySQLMetaRepository struct {
	db *sql.DB
}

// NewMySQLMetaRepository creates a new MySQLMetaRepository.
func NewMySQLMetaRepository(db *sql.DB) *MySQLMetaRepository {
	return &MySQLMetaRepository{db: db}
}

// Get retrieves a metadata value. Returns ErrNotFound when absent.
func (m *MySQLMetaRepository) Get(ctx context.Context, principalID, key string) (string, error) {
	query := `SELECT meta_value FROM principal_meta WHERE principal_id = ? AND meta_key = ?`

	var value string
	err := database.GetTx(ctx, m.db).QueryRowContext(ctx, query, principalID, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.Wrap(err, "failed to get principal meta")
	}
	return value, nil
}

// Set inserts or overwrites a metadata value.
func (m *MySQLMetaRepository) Set(ctx context.Context, principalID, key, value string) error {
	query := `INSERT INTO principal_meta (principal_id, meta_key, meta_value, updated_at) VALUES (?, ?, ?, NOW())
			  ON DUPLICATE KEY UPDATE meta_value = VALUES(meta_value), updated_at = NOW()`

	if _, err := database.GetTx(ctx, m.db).ExecContext(ctx, query, principalID, key, value); err != nil {
		return apperrors.Wrap(err, "failed to set principal meta")
	}
	return nil
}
