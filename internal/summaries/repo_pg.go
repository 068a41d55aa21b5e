package summaries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a summary; Postgres assigns the id and, when CreatedAt is
// zero, the timestamp.
func (r *PGRepo) Create(ctx context.Context, s Summary) (Summary, error) {
	const query = `
INSERT INTO summaries (original_transcript, custom_prompt, generated_summary, created_at)
VALUES ($1, $2, $3, COALESCE($4::timestamptz, now()))
RETURNING id, created_at`
	var createdAt sql.NullTime
	if !s.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: s.CreatedAt, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		s.OriginalTranscript,
		s.CustomPrompt,
		s.GeneratedSummary,
		createdAt,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return Summary{}, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}

// ListNewestFirst returns every summary, newest first.
func (r *PGRepo) ListNewestFirst(ctx context.Context) ([]Summary, error) {
	const query = `
SELECT id, original_transcript, custom_prompt, generated_summary, created_at
FROM summaries
ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.ID,
			&s.OriginalTranscript,
			&s.CustomPrompt,
			&s.GeneratedSummary,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateGeneratedSummary replaces generated_summary and returns the full row.
func (r *PGRepo) UpdateGeneratedSummary(ctx context.Context, id, text string) (Summary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Summary{}, ErrNotFound
	}
	const query = `
UPDATE summaries
SET generated_summary = $2
WHERE id = $1
RETURNING id, original_transcript, custom_prompt, generated_summary, created_at`
	var s Summary
	err := r.DB.QueryRowContext(ctx, query, id, text).Scan(
		&s.ID,
		&s.OriginalTranscript,
		&s.CustomPrompt,
		&s.GeneratedSummary,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	return s, nil
}

// Delete removes a summary by id.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM summaries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks database connectivity.
func (r *PGRepo) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

var _ Repo = (*PGRepo)(nil)
