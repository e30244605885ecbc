package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mock-interview/internal/interview"
)

func (db *DB) GetSession(ctx context.Context, id string) (*interview.Session, error) {
	s := &interview.Session{}
	err := db.connection.QueryRowContext(ctx,
		`SELECT id, candidate_email, questions, completed, created_at FROM sessions WHERE id = $1`,
		id).Scan(&s.ID, &s.CandidateEmail, &s.QuestionsJSON, &s.Completed, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s", interview.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (db *DB) SaveSession(ctx context.Context, s *interview.Session) error {
	_, err := db.connection.ExecContext(ctx,
		`INSERT INTO sessions (id, candidate_email, questions, completed, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		   SET completed = EXCLUDED.completed`,
		s.ID, s.CandidateEmail, s.QuestionsJSON, s.Completed, s.CreatedAt)
	return err
}
