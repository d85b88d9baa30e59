package repository

import (
	"context"
	"database/sql"

	"github.com/ngoinfo/copilot-gateway/internal/database"
	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

// MySQLSettingRepository implements setting persistence for MySQL databases.
type MySQLSettingRepository struct {
	db *sql.DB
}

// NewMySQLSettingRepository creates a new MySQLSettingRepository.
func NewMySQLSettingRepository(db *sql.DB) *MySQLSettingRepository {
	return &MySQLSettingRepository{db: db}
}

// Get retrieves a setting value by name. Returns ErrNotFound when absent.
func (m *MySQLSettingRepository) Get(ctx context.Context, name string) (string, error) {
	query := `SELECT value FROM settings WHERE name = ?`

	var value string
	err := database.GetTx(ctx, m.db).QueryRowContext(ctx, query, name).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.Wrap(err, "failed to get setting")
	}
	return value, nil
}

// Set inserts or overwrites a setting.
func (m *MySQLSettingRepository) Set(ctx context.Context, name, value string) error {
	query := `INSERT INTO settings (name, value, updated_at) VALUES (?, ?, NOW())
			  ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = NOW()`

	if _, err := database.GetTx(ctx, m.db).ExecContext(ctx, query, name, value); err != nil {
		return apperrors.Wrap(err, "failed to set setting")
	}
	return nil
}

// Delete removes a setting by name. Deleting an absent setting is not an error.
func (m *MySQLSettingRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM settings WHERE name = ?`

	if _, err := database.GetTx(ctx, m.db).ExecContext(ctx, query, name); err != nil {
		return apperrors.Wrap(err, "failed to delete setting")
	}
	return nil
}
