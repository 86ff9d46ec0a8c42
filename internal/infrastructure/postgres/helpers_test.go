package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baechuer/eventhub/internal/domain"
)

func errNoRows() error { return sql.ErrNoRows }

func asAppError(t *testing.T, err error) *domain.AppError {
	t.Helper()
	var ae *domain.AppError
	require.True(t, errors.As(err, &ae))
	return ae
}
