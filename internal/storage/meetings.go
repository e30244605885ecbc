package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mock-interview/internal/interview"
)

const meetingColumns = `id, candidate_email, hr_email, meeting_url, login_token, token_expiry, status, created_at`

func (db *DB) GetMeetingByToken(ctx context.Context, token string) (*interview.Meeting, error) {
	row := db.connection.QueryRowContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE login_token = $1`, token)
	m, err := scanMeeting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: meeting token", interview.ErrNotFound)
	}
	return m, err
}

func (db *DB) FindScheduledMeetings(ctx context.Context, candidateEmail string) ([]interview.Meeting, error) {
	rows, err := db.connection.QueryContext(ctx,
		`SELECT `+meetingColumns+` FROM meetings
		 WHERE candidate_email = $1 AND status = $2
		 ORDER BY created_at`, candidateEmail, interview.MeetingScheduled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []interview.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *m)
	}
	return meetings, rows.Err()
}

func (db *DB) SaveMeeting(ctx context.Context, m *interview.Meeting) error {
	if m.ID == 0 {
		return db.connection.QueryRowContext(ctx,
			`INSERT INTO meetings (candidate_email, hr_email, meeting_url, login_token, token_expiry, status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			m.CandidateEmail, m.HREmail, m.MeetingURL, m.LoginToken, m.TokenExpiry, m.Status, m.CreatedAt,
		).Scan(&m.ID)
	}
	_, err := db.connection.ExecContext(ctx,
		`UPDATE meetings
		 SET status = $1, login_token = $2, token_expiry = $3, meeting_url = $4
		 WHERE id = $5`,
		m.Status, m.LoginToken, m.TokenExpiry, m.MeetingURL, m.ID)
	return err
}

func scanMeeting(row rowScanner) (*interview.Meeting, error) {
	m := &interview.Meeting{}
	err := row.Scan(&m.ID, &m.CandidateEmail, &m.HREmail, &m.MeetingURL,
		&m.LoginToken, &m.TokenExpiry, &m.Status, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
