package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestWrapErr(t *testing.T) {
	t.Run("no rows becomes ErrNotFound", func(t *testing.T) {
		err := wrapErr("GetX", pgx.ErrNoRows)
		require.ErrorIs(t, err, ErrNotFound)
		require.Contains(t, err.Error(), "GetX")
	})

	t.Run("unique violation becomes ErrConflict", func(t *testing.T) {
		err := wrapErr("CreateX", &pgconn.PgError{Code: "23505"})
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("other pg errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42P01"}
		err := wrapErr("CreateX", pgErr)
		require.NotErrorIs(t, err, ErrConflict)
		require.ErrorIs(t, err, pgErr)
	})

	t.Run("plain errors pass through", func(t *testing.T) {
		inner := errors.New("conn reset")
		err := wrapErr("ListX", inner)
		require.ErrorIs(t, err, inner)
	})
}
