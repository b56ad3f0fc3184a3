package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDBTX struct {
	execErr  error
	gotQuery string
	gotArgs  []interface{}
}

func (s *stubDBTX) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	s.gotQuery = query
	s.gotArgs = args
	return nil, s.execErr
}

func (s *stubDBTX) PrepareContext(context.Context, string) (*sql.Stmt, error) { return nil, nil }

func (s *stubDBTX) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (s *stubDBTX) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }

func TestUpdateSessionStatus(t *testing.T) {
	stub := &stubDBTX{}
	q := New(stub)
	id := uuid.New()

	err := q.UpdateSessionStatus(context.Background(), UpdateSessionStatusParams{
		Status: "failed",
		ID:     id,
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"failed", id}, stub.gotArgs)
	assert.Contains(t, stub.gotQuery, "UPDATE sessions")
}

// Status-update failures must reach the caller so the worker can log
// them instead of losing them silently.
func TestUpdateSessionStatusPropagatesError(t *testing.T) {
	stub := &stubDBTX{execErr: errors.New("connection reset")}
	q := New(stub)

	err := q.UpdateSessionStatus(context.Background(), UpdateSessionStatusParams{
		Status: "processing",
		ID:     uuid.New(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
