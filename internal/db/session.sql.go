package db

import (
	"context"
	"time"
)

const getSessionValue = `-- name: GetSessionValue :one
SELECT session_id, key, value, version, updated_at
FROM session_state
WHERE session_id = $1 AND key = $2
`

type GetSessionValueParams struct {
	SessionID string
	Key       string
}

func (q *Queries) GetSessionValue(ctx context.Context, arg GetSessionValueParams) (SessionState, error) {
	row := q.db.QueryRow(ctx, getSessionValue, arg.SessionID, arg.Key)
	var i SessionState
	err := row.Scan(
		&i.SessionID,
		&i.Key,
		&i.Value,
		&i.Version,
		&i.UpdatedAt,
	)
	return i, err
}

const insertSessionValue = `-- name: InsertSessionValue :execrows
INSERT INTO session_state (session_id, key, value, version)
VALUES ($1, $2, $3, 1)
ON CONFLICT (session_id, key) DO NOTHING
`

type InsertSessionValueParams struct {
	SessionID string
	Key       string
	Value     []byte
}

func (q *Queries) InsertSessionValue(ctx context.Context, arg InsertSessionValueParams) (int64, error) {
	result, err := q.db.Exec(ctx, insertSessionValue, arg.SessionID, arg.Key, arg.Value)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateSessionValue = `-- name: UpdateSessionValue :execrows
UPDATE session_state
SET value = $3, version = version + 1, updated_at = NOW()
WHERE session_id = $1 AND key = $2 AND version = $4
`

type UpdateSessionValueParams struct {
	SessionID string
	Key       string
	Value     []byte
	Version   int64
}

func (q *Queries) UpdateSessionValue(ctx context.Context, arg UpdateSessionValueParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateSessionValue, arg.SessionID, arg.Key, arg.Value, arg.Version)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteSessionValue = `-- name: DeleteSessionValue :exec
DELETE FROM session_state
WHERE session_id = $1 AND key = $2
`

type DeleteSessionValueParams struct {
	SessionID string
	Key       string
}

func (q *Queries) DeleteSessionValue(ctx context.Context, arg DeleteSessionValueParams) error {
	_, err := q.db.Exec(ctx, deleteSessionValue, arg.SessionID, arg.Key)
	return err
}

const deleteSessionsBefore = `-- name: DeleteSessionsBefore :execrows
DELETE FROM session_state
WHERE updated_at < $1
`

func (q *Queries) DeleteSessionsBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := q.db.Exec(ctx, deleteSessionsBefore, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
