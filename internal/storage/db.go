package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"mock-interview/internal/interview"
)

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

// EnsureSchema creates the tables on startup if they are missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS candidates (
			email TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			position TEXT NOT NULL DEFAULT '',
			experience INT NOT NULL DEFAULT 0,
			skills TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			location TEXT NOT NULL DEFAULT '',
			first_round_status TEXT NOT NULL DEFAULT '',
			second_round_status TEXT NOT NULL DEFAULT '',
			current_round INT NOT NULL DEFAULT 1,
			overall_status TEXT NOT NULL DEFAULT 'Pending',
			interview_status TEXT NOT NULL DEFAULT 'PENDING',
			interviewer_email TEXT NOT NULL DEFAULT '',
			interviewer_name TEXT NOT NULL DEFAULT '',
			decision_made_by TEXT NOT NULL DEFAULT '',
			last_decision_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			candidate_email TEXT NOT NULL,
			questions TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS meetings (
			id BIGSERIAL PRIMARY KEY,
			candidate_email TEXT NOT NULL,
			hr_email TEXT NOT NULL DEFAULT '',
			meeting_url TEXT NOT NULL DEFAULT '',
			login_token TEXT NOT NULL DEFAULT '',
			token_expiry TIMESTAMPTZ,
			status TEXT NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_meetings_token ON meetings (login_token)`,
		`CREATE INDEX IF NOT EXISTS idx_meetings_candidate ON meetings (candidate_email, status)`,
		`CREATE TABLE IF NOT EXISTS monitoring_events (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			candidate_email TEXT NOT NULL DEFAULT '',
			event_type TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			metadata TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON monitoring_events (session_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS interview_results (
			candidate_email TEXT PRIMARY KEY,
			attempts INT NOT NULL DEFAULT 0,
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			score INT NOT NULL DEFAULT 0,
			summary TEXT NOT NULL DEFAULT '',
			strengths TEXT NOT NULL DEFAULT '',
			improvements TEXT NOT NULL DEFAULT '',
			recommendation TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.connection.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// CreateScheduled persists a new session, its meeting token and the profile
// status change in one transaction, superseding any previous SCHEDULED
// meeting for the candidate.
func (db *DB) CreateScheduled(ctx context.Context, session *interview.Session, meeting *interview.Meeting, profile *interview.CandidateProfile) error {
	tx, err := db.connection.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE meetings SET status = $1, login_token = '', token_expiry = NULL
		 WHERE candidate_email = $2 AND status = $3`,
		interview.MeetingCompleted, meeting.CandidateEmail, interview.MeetingScheduled)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, candidate_email, questions, completed, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		session.ID, session.CandidateEmail, session.QuestionsJSON, session.Completed, session.CreatedAt)
	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO meetings (candidate_email, hr_email, meeting_url, login_token, token_expiry, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		meeting.CandidateEmail, meeting.HREmail, meeting.MeetingURL,
		meeting.LoginToken, meeting.TokenExpiry, meeting.Status, meeting.CreatedAt,
	).Scan(&meeting.ID)
	if err != nil {
		return err
	}

	if _, err := saveProfileTx(ctx, tx, profile); err != nil {
		return err
	}

	return tx.Commit()
}

// GetConnection returns the underlying database connection for advanced queries.
func (db *DB) GetConnection() *sql.DB {
	return db.connection
}
