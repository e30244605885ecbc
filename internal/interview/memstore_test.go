package interview

import (
	"context"
	"fmt"
	"time"
)

// In-memory store fakes backing the service tests.

type memStore struct {
	profiles map[string]*CandidateProfile
	sessions map[string]*Session
	meetings []*Meeting
	events   []MonitoringEvent
	results  map[string]*Result
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		profiles: make(map[string]*CandidateProfile),
		sessions: make(map[string]*Session),
		results:  make(map[string]*Result),
	}
}

func (m *memStore) GetProfile(_ context.Context, email string) (*CandidateProfile, error) {
	p, ok := m.profiles[email]
	if !ok {
		return nil, fmt.Errorf("%w: candidate", ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) SaveProfile(_ context.Context, p *CandidateProfile) error {
	cp := *p
	m.profiles[p.Email] = &cp
	return nil
}

func (m *memStore) ListProfiles(_ context.Context) ([]CandidateProfile, error) {
	var out []CandidateProfile
	for _, p := range m.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memStore) DeleteProfileByName(_ context.Context, name string) error {
	for email, p := range m.profiles {
		if p.Name == name {
			delete(m.profiles, email)
			return nil
		}
	}
	return fmt.Errorf("%w: candidate %q", ErrNotFound, name)
}

func (m *memStore) GetSession(_ context.Context, id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	cs := *s
	return &cs, nil
}

func (m *memStore) SaveSession(_ context.Context, s *Session) error {
	cs := *s
	m.sessions[s.ID] = &cs
	return nil
}

func (m *memStore) GetMeetingByToken(_ context.Context, token string) (*Meeting, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: meeting token", ErrNotFound)
	}
	for _, mt := range m.meetings {
		if mt.LoginToken == token {
			cm := *mt
			return &cm, nil
		}
	}
	return nil, fmt.Errorf("%w: meeting token", ErrNotFound)
}

func (m *memStore) FindScheduledMeetings(_ context.Context, email string) ([]Meeting, error) {
	var out []Meeting
	for _, mt := range m.meetings {
		if mt.CandidateEmail == email && mt.Status == MeetingScheduled {
			out = append(out, *mt)
		}
	}
	return out, nil
}

func (m *memStore) SaveMeeting(_ context.Context, mt *Meeting) error {
	if mt.ID == 0 {
		m.nextID++
		mt.ID = m.nextID
		cm := *mt
		m.meetings = append(m.meetings, &cm)
		return nil
	}
	for i, existing := range m.meetings {
		if existing.ID == mt.ID {
			cm := *mt
			m.meetings[i] = &cm
			return nil
		}
	}
	return fmt.Errorf("%w: meeting %d", ErrNotFound, mt.ID)
}

func (m *memStore) AppendEvent(_ context.Context, e *MonitoringEvent) error {
	m.nextID++
	e.ID = m.nextID
	m.events = append(m.events, *e)
	return nil
}

func (m *memStore) EventsBySession(_ context.Context, sessionID string) ([]MonitoringEvent, error) {
	var out []MonitoringEvent
	for _, e := range m.events {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) GetResult(_ context.Context, email string) (*Result, error) {
	r, ok := m.results[email]
	if !ok {
		return nil, fmt.Errorf("%w: result for %s", ErrNotFound, email)
	}
	cr := *r
	return &cr, nil
}

func (m *memStore) SaveResult(_ context.Context, r *Result) error {
	cr := *r
	m.results[r.CandidateEmail] = &cr
	return nil
}

func (m *memStore) CreateScheduled(ctx context.Context, session *Session, meeting *Meeting, profile *CandidateProfile) error {
	for _, mt := range m.meetings {
		if mt.CandidateEmail == meeting.CandidateEmail && mt.Status == MeetingScheduled {
			mt.Status = MeetingCompleted
			mt.LoginToken = ""
			mt.TokenExpiry = nil
		}
	}
	if err := m.SaveSession(ctx, session); err != nil {
		return err
	}
	if err := m.SaveMeeting(ctx, meeting); err != nil {
		return err
	}
	return m.SaveProfile(ctx, profile)
}

// stubGenerator returns a scripted question set or error.
type stubGenerator struct {
	questions []Question
	err       error
	calls     int
}

func (g *stubGenerator) Generate(_ context.Context, _ *CandidateProfile) ([]Question, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.questions, nil
}

// stubScorer records its input and returns a scripted summary.
type stubScorer struct {
	summary        Summary
	calls          int
	lastAnswers    map[string]string
	lastViolations map[string]int
}

func (s *stubScorer) Score(_ context.Context, _ []Question, answers map[string]string, violations map[string]int) Summary {
	s.calls++
	s.lastAnswers = answers
	s.lastViolations = violations
	return s.summary
}

func testQuestions() []Question {
	return []Question{
		{ID: "Q1", Type: "MCQ", Question: "What does SQL stand for?", Options: []string{"A) x", "B) y", "C) z", "D) w"}},
		{ID: "Q2", Type: "MCQ", Question: "Which HTTP verb is idempotent?", Options: []string{"A) POST", "B) PUT", "C) PATCH", "D) CONNECT"}},
		{ID: "Q3", Type: "Coding", Question: "Reverse a linked list."},
	}
}

type fixture struct {
	store     *memStore
	generator *stubGenerator
	scorer    *stubScorer
	service   *Service
	now       time.Time
}

func newFixture() *fixture {
	store := newMemStore()
	generator := &stubGenerator{questions: testQuestions()}
	scorer := &stubScorer{summary: Summary{
		Score:          7,
		Summary:        "Solid fundamentals",
		Strengths:      "SQL | HTTP | Lists",
		Improvements:   "Depth | Speed | Testing",
		Recommendation: "Further Interview",
	}}
	svc := NewService(store, store, store, store, store, store, generator, scorer, "https://hire.example.com")

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &fixture{store: store, generator: generator, scorer: scorer, service: svc, now: now}
}

func (f *fixture) addCandidate(email string) *CandidateProfile {
	p := &CandidateProfile{
		Email:           email,
		Name:            "Test Candidate",
		Position:        "Backend Engineer",
		Experience:      0,
		Skills:          "Go, SQL",
		CurrentRound:    1,
		OverallStatus:   OverallPending,
		InterviewStatus: StatusPending,
		CreatedAt:       f.now,
	}
	f.store.profiles[email] = p
	return p
}

func (f *fixture) addResult(email string, attempts int) {
	f.store.results[email] = &Result{CandidateEmail: email, Attempts: attempts, SubmittedAt: f.now}
}
