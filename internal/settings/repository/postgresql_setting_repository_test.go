package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

func TestPostgreSQLSettingRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReturnsValue", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT value FROM settings").
			WithArgs("api_base_url").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("https://api.example.org"))

		repo := NewPostgreSQLSettingRepository(db)
		value, err := repo.Get(ctx, "api_base_url")
		assert.NoError(t, err)
		assert.Equal(t, "https://api.example.org", value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT value FROM settings").
			WithArgs("api_base_url").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		repo := NewPostgreSQLSettingRepository(db)
		_, err = repo.Get(ctx, "api_base_url")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLSettingRepository_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Upserts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO settings").
			WithArgs("api_base_url", "https://api.example.org").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLSettingRepository(db)
		err = repo.Set(ctx, "api_base_url", "https://api.example.org")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_ExecFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO settings").
			WithArgs("api_base_url", "https://api.example.org").
			WillReturnError(assert.AnError)

		repo := NewPostgreSQLSettingRepository(db)
		err = repo.Set(ctx, "api_base_url", "https://api.example.org")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLSettingRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DeletesRow", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM settings").
			WithArgs("api_base_url").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLSettingRepository(db)
		assert.NoError(t, repo.Delete(ctx, "api_base_url"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_AbsentRowIsNotAnError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM settings").
			WithArgs("api_base_url").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLSettingRepository(db)
		assert.NoError(t, repo.Delete(ctx, "api_base_url"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
