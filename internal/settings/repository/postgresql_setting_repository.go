// Package repository implements settings persistence.
// Repositories support both PostgreSQL and MySQL over a plain key-value table.
package repository

import (
	"context"
	"database/sql"

	"github.com/ngoinfo/copilot-gateway/internal/database"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

// PostgreSQLSettingRepository implements setting persistence for PostgreSQL databases.
type PostgreSQLSettingRepository struct {
	db *sql.DB
}

// NewPostgreSQLSettingRepository creates a new PostgreSQLSettingRepository.
func NewPostgreSQLSettingRepository(db *sql.DB) *PostgreSQLSettingRepository {
	return &PostgreSQLSettingRepository{db: db}
}

// Get retrieves a setting value by name. Returns ErrNotFound when absent.
func (p *PostgreSQLSettingRepository) Get(ctx context.Context, name string) (string, error) {
	query := `SELECT value FROM settings WHERE name = $1`

	var value string
	err := database.GetTx(ctx, p.db).QueryRowContext(ctx, query, name).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.Wrap(err, "failed to get setting")
	}
	return value, nil
}

// Set inserts or overwrites a setting. Last write wins; settings writes are
// rare and not required to be linearizable across machines.
func (p *PostgreSQLSettingRepository) Set(ctx context.Context, name, value string) error {
	query := `INSERT INTO settings (name, value, updated_at) VALUES ($1, $2, NOW())
			  ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := database.GetTx(ctx, p.db).ExecContext(ctx, query, name, value); err != nil {
		return apperrors.Wrap(err, "failed to set setting")
	}
	return nil
}

// Delete removes a setting by name. Deleting an absent setting is not an error.
func (p *PostgreSQLSettingRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM settings WHERE name = $1`

	if _, err := database.GetTx(ctx, p.db).ExecContext(ctx, query, name); err != nil {
		return apperrors.Wrap(err, "failed to delete setting")
	}
	return nil
}
