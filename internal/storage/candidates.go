package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mock-interview/internal/interview"
)

const profileColumns = `email, name, position, experience, skills, description, phone, location,
	first_round_status, second_round_status, current_round, overall_status, interview_status,
	interviewer_email, interviewer_name, decision_made_by, last_decision_at, created_at`

func (db *DB) GetProfile(ctx context.Context, email string) (*interview.CandidateProfile, error) {
	row := db.connection.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM candidates WHERE email = $1`, email)
	return scanProfile(row)
}

func (db *DB) SaveProfile(ctx context.Context, p *interview.CandidateProfile) error {
	_, err := saveProfileTx(ctx, db.connection, p)
	return err
}

// execer covers both *sql.DB and *sql.Tx so profile upserts can join the
// scheduling transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func saveProfileTx(ctx context.Context, ex execer, p *interview.CandidateProfile) (sql.Result, error) {
	return ex.ExecContext(ctx,
		`INSERT INTO candidates (email, name, position, experience, skills, description, phone, location,
			first_round_status, second_round_status, current_round, overall_status, interview_status,
			interviewer_email, interviewer_name, decision_made_by, last_decision_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 ON CONFLICT (email) DO UPDATE
		   SET name = EXCLUDED.name,
		       position = EXCLUDED.position,
		       experience = EXCLUDED.experience,
		       skills = EXCLUDED.skills,
		       description = EXCLUDED.description,
		       phone = EXCLUDED.phone,
		       location = EXCLUDED.location,
		       first_round_status = EXCLUDED.first_round_status,
		       second_round_status = EXCLUDED.second_round_status,
		       current_round = EXCLUDED.current_round,
		       overall_status = EXCLUDED.overall_status,
		       interview_status = EXCLUDED.interview_status,
		       interviewer_email = EXCLUDED.interviewer_email,
		       interviewer_name = EXCLUDED.interviewer_name,
		       decision_made_by = EXCLUDED.decision_made_by,
		       last_decision_at = EXCLUDED.last_decision_at`,
		p.Email, p.Name, p.Position, p.Experience, p.Skills, p.Description, p.Phone, p.Location,
		p.FirstRoundStatus, p.SecondRoundStatus, p.CurrentRound, p.OverallStatus, p.InterviewStatus,
		p.InterviewerEmail, p.InterviewerName, p.DecisionMadeBy, p.LastDecisionAt, p.CreatedAt)
}

func (db *DB) ListProfiles(ctx context.Context) ([]interview.CandidateProfile, error) {
	rows, err := db.connection.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM candidates ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []interview.CandidateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (db *DB) DeleteProfileByName(ctx context.Context, name string) error {
	res, err := db.connection.ExecContext(ctx, `DELETE FROM candidates WHERE name = $1`, name)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: candidate %q", interview.ErrNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*interview.CandidateProfile, error) {
	p := &interview.CandidateProfile{}
	err := row.Scan(&p.Email, &p.Name, &p.Position, &p.Experience, &p.Skills, &p.Description,
		&p.Phone, &p.Location, &p.FirstRoundStatus, &p.SecondRoundStatus, &p.CurrentRound,
		&p.OverallStatus, &p.InterviewStatus, &p.InterviewerEmail, &p.InterviewerName,
		&p.DecisionMadeBy, &p.LastDecisionAt, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: candidate", interview.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
