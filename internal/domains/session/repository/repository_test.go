package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/infras/otel/mocks"
	"studiodesk/infras/postgres"
	"studiodesk/internal/domains/session/repository"
)

func TestSession_Touch(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := now.Add(24 * time.Hour)
	touch := regexp.QuoteMeta("UPDATE sessions.sessions SET expires_at = $2")

	t.Run("live session", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		conn := sqlx.NewDb(db, "postgres")
		repo := repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel())

		mock.ExpectQuery(touch).
			WithArgs("3f1c", expiresAt, now).
			WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("admin"))

		username, err := repo.Touch(context.Background(), "3f1c", now, expiresAt)

		require.NoError(t, err)
		assert.Equal(t, "admin", username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired or unknown", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		conn := sqlx.NewDb(db, "postgres")
		repo := repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel())

		mock.ExpectQuery(touch).
			WithArgs("gone", expiresAt, now).
			WillReturnRows(sqlmock.NewRows([]string{"username"}))

		username, err := repo.Touch(context.Background(), "gone", now, expiresAt)

		require.NoError(t, err)
		assert.Empty(t, username)
	})
}

func TestSession_DeleteExpiredUsesSweeperPool(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	writeDB, writeMock, err := sqlmock.New()
	require.NoError(t, err)
	defer writeDB.Close()

	sweepDB, sweepMock, err := sqlmock.New()
	require.NoError(t, err)
	defer sweepDB.Close()

	write := sqlx.NewDb(writeDB, "postgres")
	repo := repository.New(&postgres.Connection{Read: write, Write: write, Sweeper: sqlx.NewDb(sweepDB, "postgres")}, mocks.NewOtel())

	sweepMock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions.sessions WHERE expires_at <= $1")).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	count, err := repo.DeleteExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, sweepMock.ExpectationsWereMet())
	assert.NoError(t, writeMock.ExpectationsWereMet())
}
