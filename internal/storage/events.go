package storage

import (
	"context"

	"mock-interview/internal/interview"
)

func (db *DB) AppendEvent(ctx context.Context, e *interview.MonitoringEvent) error {
	return db.connection.QueryRowContext(ctx,
		`INSERT INTO monitoring_events (session_id, candidate_email, event_type, description, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		e.SessionID, e.CandidateEmail, e.EventType, e.Description, e.Metadata, e.CreatedAt,
	).Scan(&e.ID)
}

func (db *DB) EventsBySession(ctx context.Context, sessionID string) ([]interview.MonitoringEvent, error) {
	rows, err := db.connection.QueryContext(ctx,
		`SELECT id, session_id, candidate_email, event_type, description, metadata, created_at
		 FROM monitoring_events
		 WHERE session_id = $1
		 ORDER BY created_at`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []interview.MonitoringEvent
	for rows.Next() {
		var e interview.MonitoringEvent
		if err := rows.Scan(&e.ID, &e.SessionID, &e.CandidateEmail, &e.EventType,
			&e.Description, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
