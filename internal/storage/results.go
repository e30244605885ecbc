package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mock-interview/internal/interview"
)

func (db *DB) GetResult(ctx context.Context, email string) (*interview.Result, error) {
	r := &interview.Result{}
	err := db.connection.QueryRowContext(ctx,
		`SELECT candidate_email, attempts, submitted_at, score, summary, strengths, improvements, recommendation
		 FROM interview_results WHERE candidate_email = $1`, email,
	).Scan(&r.CandidateEmail, &r.Attempts, &r.SubmittedAt, &r.Summary.Score,
		&r.Summary.Summary, &r.Summary.Strengths, &r.Summary.Improvements, &r.Summary.Recommendation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: result for %s", interview.ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (db *DB) SaveResult(ctx context.Context, r *interview.Result) error {
	_, err := db.connection.ExecContext(ctx,
		`INSERT INTO interview_results (candidate_email, attempts, submitted_at, score, summary, strengths, improvements, recommendation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (candidate_email) DO UPDATE
		   SET attempts = EXCLUDED.attempts,
		       submitted_at = EXCLUDED.submitted_at,
		       score = EXCLUDED.score,
		       summary = EXCLUDED.summary,
		       strengths = EXCLUDED.strengths,
		       improvements = EXCLUDED.improvements,
		       recommendation = EXCLUDED.recommendation`,
		r.CandidateEmail, r.Attempts, r.SubmittedAt, r.Summary.Score,
		r.Summary.Summary, r.Summary.Strengths, r.Summary.Improvements, r.Summary.Recommendation)
	return err
}
