package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Store contracts consumed by the service. Postgres implementations live in
// internal/storage; tests use in-memory fakes.

type ProfileStore interface {
	GetProfile(ctx context.Context, email string) (*CandidateProfile, error)
	SaveProfile(ctx context.Context, profile *CandidateProfile) error
	ListProfiles(ctx context.Context) ([]CandidateProfile, error)
	DeleteProfileByName(ctx context.Context, name string) error
}

type SessionStore interface {
	GetSession(ctx context.Context, id string) (*Session, error)
	SaveSession(ctx context.Context, session *Session) error
}

type MeetingStore interface {
	GetMeetingByToken(ctx context.Context, token string) (*Meeting, error)
	FindScheduledMeetings(ctx context.Context, candidateEmail string) ([]Meeting, error)
	SaveMeeting(ctx context.Context, meeting *Meeting) error
}

type EventStore interface {
	AppendEvent(ctx context.Context, event *MonitoringEvent) error
	EventsBySession(ctx context.Context, sessionID string) ([]MonitoringEvent, error)
}

type ResultStore interface {
	GetResult(ctx context.Context, email string) (*Result, error)
	SaveResult(ctx context.Context, result *Result) error
}

// ScheduleStore atomically persists a new session, its meeting token and the
// profile status change, superseding any previous SCHEDULED meeting for the
// candidate. A crash cannot leave an orphaned session without its token.
type ScheduleStore interface {
	CreateScheduled(ctx context.Context, session *Session, meeting *Meeting, profile *CandidateProfile) error
}

// Generator and AnswerScorer abstract the two LLM translation routines so the
// lifecycle can be tested with scripted stubs.
type Generator interface {
	Generate(ctx context.Context, profile *CandidateProfile) ([]Question, error)
}

type AnswerScorer interface {
	Score(ctx context.Context, questions []Question, answers map[string]string, violations map[string]int) Summary
}

// tokenTTL is how long a magic link stays valid.
const tokenTTL = 48 * time.Hour

// Service orchestrates the interview session lifecycle: issue, validate and
// retire single-use tokens, bind question sets to sessions, finalize
// submissions, and advance hiring rounds.
type Service struct {
	profiles  ProfileStore
	sessions  SessionStore
	meetings  MeetingStore
	events    EventStore
	results   ResultStore
	scheduler ScheduleStore
	generator Generator
	scorer    AnswerScorer

	baseURL string
	now     func() time.Time
}

func NewService(
	profiles ProfileStore,
	sessions SessionStore,
	meetings MeetingStore,
	events EventStore,
	results ResultStore,
	scheduler ScheduleStore,
	generator Generator,
	scorer AnswerScorer,
	baseURL string,
) *Service {
	return &Service{
		profiles:  profiles,
		sessions:  sessions,
		meetings:  meetings,
		events:    events,
		results:   results,
		scheduler: scheduler,
		generator: generator,
		scorer:    scorer,
		baseURL:   baseURL,
		now:       time.Now,
	}
}

// MagicLinkPath is the URL prefix a token is embedded under.
const MagicLinkPath = "/api/auth/start-interview/"

// ScheduleInterview generates a question set for the candidate, creates the
// session and its single-use meeting token, and returns the magic link.
func (s *Service) ScheduleInterview(ctx context.Context, candidateEmail, hrEmail string) (string, error) {
	profile, err := s.profiles.GetProfile(ctx, candidateEmail)
	if err != nil {
		return "", err
	}

	questions, err := s.generator.Generate(ctx, profile)
	if err != nil {
		return "", err
	}

	serialized, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("serialize questions: %w", err)
	}

	now := s.now()
	sessionID := uuid.NewString()
	expiry := now.Add(tokenTTL)
	magicLink := s.baseURL + MagicLinkPath + sessionID

	session := &Session{
		ID:             sessionID,
		CandidateEmail: candidateEmail,
		QuestionsJSON:  string(serialized),
		Completed:      false,
		CreatedAt:      now,
	}
	meeting := &Meeting{
		CandidateEmail: candidateEmail,
		HREmail:        hrEmail,
		MeetingURL:     magicLink,
		LoginToken:     sessionID,
		TokenExpiry:    &expiry,
		Status:         MeetingScheduled,
		CreatedAt:      now,
	}

	if profile.OverallStatus == OverallPending {
		profile.OverallStatus = OverallInProgress
	}

	if err := s.scheduler.CreateScheduled(ctx, session, meeting, profile); err != nil {
		return "", fmt.Errorf("persist scheduled interview: %w", err)
	}

	log.Printf("[Interview] Scheduled session %s for %s (%d questions)", sessionID, candidateEmail, len(questions))
	return magicLink, nil
}

// ValidateToken reports whether a magic-link token grants access: the meeting
// must exist, be SCHEDULED, and the expiry must be unset or in the future.
func (s *Service) ValidateToken(ctx context.Context, token string) (bool, error) {
	meeting, err := s.meetings.GetMeetingByToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if meeting.Status != MeetingScheduled {
		return false, nil
	}
	if meeting.TokenExpiry != nil && !meeting.TokenExpiry.After(s.now()) {
		return false, nil
	}
	return true, nil
}

// StartWithSession returns the stored question set for a session. Sessions
// are single-attempt: a completed session yields ErrConflict, never the
// questions again.
func (s *Service) StartWithSession(ctx context.Context, sessionID string) ([]Question, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, fmt.Errorf("%w: session %s", ErrConflict, sessionID)
	}

	var questions []Question
	if err := json.Unmarshal([]byte(session.QuestionsJSON), &questions); err != nil {
		return nil, fmt.Errorf("deserialize questions for session %s: %w", sessionID, err)
	}
	return questions, nil
}

// SubmitAnswers finalizes a session: marks it completed, retires every
// SCHEDULED meeting for the candidate, tallies proctoring violations, scores
// the answers and upserts the candidate's result.
//
// Answers are keyed by question id; positional "answer0".."answerN" keys are
// accepted as a fallback for older clients.
func (s *Service) SubmitAnswers(ctx context.Context, sessionID string, answers map[string]string) (*Result, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, fmt.Errorf("%w: session %s", ErrConflict, sessionID)
	}

	var questions []Question
	if err := json.Unmarshal([]byte(session.QuestionsJSON), &questions); err != nil {
		return nil, fmt.Errorf("deserialize questions for session %s: %w", sessionID, err)
	}

	session.Completed = true
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	if err := s.retireMeetings(ctx, session.CandidateEmail); err != nil {
		return nil, err
	}

	byID := bindAnswers(questions, answers)

	events, err := s.events.EventsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	violations := CountViolations(events)

	summary := s.scorer.Score(ctx, questions, byID, violations)

	result, err := s.results.GetResult(ctx, session.CandidateEmail)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		result = &Result{CandidateEmail: session.CandidateEmail}
	}
	result.Attempts++
	result.SubmittedAt = s.now()
	result.Summary = summary

	if err := s.results.SaveResult(ctx, result); err != nil {
		return nil, err
	}

	log.Printf("[Interview] Session %s submitted by %s (attempt %d, score %d)",
		sessionID, session.CandidateEmail, result.Attempts, summary.Score)
	return result, nil
}

// RecordEvent appends one proctoring event to the session's log.
func (s *Service) RecordEvent(ctx context.Context, event *MonitoringEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now()
	}
	return s.events.AppendEvent(ctx, event)
}

// SessionEvents lists the monitoring events for a session ordered by time.
func (s *Service) SessionEvents(ctx context.Context, sessionID string) ([]MonitoringEvent, error) {
	return s.events.EventsBySession(ctx, sessionID)
}

// retireMeetings flips every SCHEDULED meeting for the candidate to COMPLETED
// and clears their tokens, defending against token reuse after submission.
func (s *Service) retireMeetings(ctx context.Context, candidateEmail string) error {
	scheduled, err := s.meetings.FindScheduledMeetings(ctx, candidateEmail)
	if err != nil {
		return err
	}
	for i := range scheduled {
		m := &scheduled[i]
		m.Status = MeetingCompleted
		m.LoginToken = ""
		m.TokenExpiry = nil
		if err := s.meetings.SaveMeeting(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// bindAnswers maps submitted answers onto question ids. Explicit id keys win;
// a positional "answer<i>" key is used when the id key is absent.
func bindAnswers(questions []Question, answers map[string]string) map[string]string {
	bound := make(map[string]string, len(questions))
	for i, q := range questions {
		if a, ok := answers[q.ID]; ok {
			bound[q.ID] = a
			continue
		}
		if a, ok := answers["answer"+strconv.Itoa(i)]; ok {
			bound[q.ID] = a
		}
	}
	return bound
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
