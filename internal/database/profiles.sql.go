package database

import (
	"context"

	"github.com/google/uuid"
)

const upsertCandidateProfile = `-- name: UpsertCandidateProfile :exec
INSERT INTO candidate_profiles (
name, email, phone, linkedin, github, file_name, session_id)
VALUES ( $1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (session_id, file_name)
DO UPDATE SET
    name = EXCLUDED.name,
    email = EXCLUDED.email,
    phone = EXCLUDED.phone,
    linkedin = EXCLUDED.linkedin,
    github = EXCLUDED.github,
    updated_at = CURRENT_TIMESTAMP
`

type UpsertCandidateProfileParams struct {
	Name      string
	Email     string
	Phone     string
	Linkedin  string
	Github    string
	FileName  string
	SessionID uuid.UUID
}

func (q *Queries) UpsertCandidateProfile(ctx context.Context, arg UpsertCandidateProfileParams) error {
	_, err := q.db.ExecContext(ctx, upsertCandidateProfile,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Linkedin,
		arg.Github,
		arg.FileName,
		arg.SessionID,
	)
	return err
}
