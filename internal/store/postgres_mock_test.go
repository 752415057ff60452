package store

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := &PostgresStore{db: db}

	t.Run("Get", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM session_cache").
			WithArgs(KeyToken).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("tok"))

		value, err := s.Get(KeyToken)
		require.NoError(t, err)
		assert.Equal(t, "tok", value)
	})

	t.Run("Get Missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM session_cache").
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, err := s.Get("nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Set", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO session_cache").
			WithArgs(KeyToken, "tok").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Set(KeyToken, "tok"))
	})

	t.Run("Set Error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO session_cache").
			WithArgs(KeyToken, "tok").
			WillReturnError(errors.New("exec error"))

		assert.Error(t, s.Set(KeyToken, "tok"))
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM session_cache WHERE").
			WithArgs(KeyUser).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(KeyUser))
	})

	t.Run("Clear", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM session_cache").
			WillReturnResult(sqlmock.NewResult(0, 2))

		assert.NoError(t, s.Clear())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
