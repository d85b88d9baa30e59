package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ngoinfo/copilot-gateway/internal/errors"
)

func TestPostgreSQLMetaRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReturnsValue", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT meta_value FROM principal_meta").
			WithArgs("42", "last_generation_at").
			WillReturnRows(sqlmock.NewRows([]string{"meta_value"}).AddRow("1748779200"))

		repo := NewPostgreSQLMetaRepository(db)
		value, err := repo.Get(ctx, "42", "last_generation_at")
		assert.NoError(t, err)
		assert.Equal(t, "1748779200", value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT meta_value FROM principal_meta").
			WithArgs("42", "last_generation_at").
			WillReturnRows(sqlmock.NewRows([]string{"meta_value"}))

		repo := NewPostgreSQLMetaRepository(db)
		_, err = repo.Get(ctx, "42", "last_generation_at")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLMetaRepository_Set(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Upserts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO principal_meta").
			WithArgs("42", "last_generation_at", "1748779200").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLMetaRepository(db)
		err = repo.Set(ctx, "42", "last_generation_at", "1748779200")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_ExecFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO principal_meta").
			WithArgs("42", "last_generation_at", "1748779200").
			WillReturnError(assert.AnError)

		repo := NewPostgreSQLMetaRepository(db)
		err = repo.Set(ctx, "42", "last_generation_at", "1748779200")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
