package database

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

const createOrUpdateScreeningResults = `-- name: CreateOrUpdateScreeningResults :exec
INSERT INTO screening_results (
entries, session_id)
VALUES ( $1, $2)
ON CONFLICT (session_id)
DO UPDATE SET
    entries = EXCLUDED.entries,
    updated_at = CURRENT_TIMESTAMP
`

type CreateOrUpdateScreeningResultsParams struct {
	Entries   json.RawMessage
	SessionID uuid.UUID
}

func (q *Queries) CreateOrUpdateScreeningResults(ctx context.Context, arg CreateOrUpdateScreeningResultsParams) error {
	_, err := q.db.ExecContext(ctx, createOrUpdateScreeningResults, arg.Entries, arg.SessionID)
	return err
}
