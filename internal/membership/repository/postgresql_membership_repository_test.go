package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoinfo/copilot-gateway/internal/membership/domain"
)

func TestPostgreSQLMembershipRepository_Active(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReturnsActiveMemberships", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"plan_id"}).AddRow(2259).AddRow(2272)
		mock.ExpectQuery("SELECT plan_id FROM memberships").
			WithArgs("42").
			WillReturnRows(rows)

		repo := NewPostgreSQLMembershipRepository(db)
		memberships, err := repo.Active(ctx, "42")
		assert.NoError(t, err)
		assert.Equal(t, []domain.Membership{{PlanID: 2259}, {PlanID: 2272}}, memberships)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success_NoMemberships", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT plan_id FROM memberships").
			WithArgs("42").
			WillReturnRows(sqlmock.NewRows([]string{"plan_id"}))

		repo := NewPostgreSQLMembershipRepository(db)
		memberships, err := repo.Active(ctx, "42")
		assert.NoError(t, err)
		assert.Empty(t, memberships)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_QueryFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT plan_id FROM memberships").
			WithArgs("42").
			WillReturnError(assert.AnError)

		repo := NewPostgreSQLMembershipRepository(db)
		_, err = repo.Active(ctx, "42")
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
