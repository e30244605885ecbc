package interview

import "time"

// Round status values for a candidate profile.
const (
	RoundPass      = "PASS"
	RoundFail      = "FAIL"
	RoundPending   = "PENDING"
	RoundScheduled = "SCHEDULED"
)

// Overall pipeline status values.
const (
	OverallPending    = "Pending"
	OverallInProgress = "In Progress"
	OverallCompleted  = "Completed"
)

// Interview status values shown on the HR dashboard.
const (
	StatusPending   = "PENDING"
	StatusSelected  = "SELECTED"
	StatusRejected  = "REJECTED"
	StatusScheduled = "Scheduled"
)

// Meeting status values.
const (
	MeetingPending   = "PENDING"
	MeetingScheduled = "SCHEDULED"
	MeetingCompleted = "COMPLETED"
)

// Monitoring event types reported by the browser proctoring layer.
const (
	EventFaceNotDetected = "FACE_NOT_DETECTED"
	EventFaceDetected    = "FACE_DETECTED"
	EventMultipleFaces   = "MULTIPLE_FACES"
	EventTabSwitch       = "TAB_SWITCH"
	EventWindowBlur      = "WINDOW_BLUR"
	EventRightClick      = "RIGHT_CLICK"
	EventKeyboard        = "KEYBOARD_SHORTCUT"
	EventMultipleVoices  = "MULTIPLE_VOICES_DETECTED"
	EventInterviewStart  = "INTERVIEW_START"
	EventInterviewEnd    = "INTERVIEW_END"
)

// CandidateProfile holds a candidate's contact info, applied position and
// current recruiting-round state. Keyed by email.
type CandidateProfile struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Experience  int    `json:"experience"`
	Skills      string `json:"skills"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location,omitempty"`

	FirstRoundStatus  string     `json:"first_round_status,omitempty"`  // "", PASS, FAIL
	SecondRoundStatus string     `json:"second_round_status,omitempty"` // "", PENDING, SCHEDULED, PASS, FAIL
	CurrentRound      int        `json:"current_round"`
	OverallStatus     string     `json:"overall_status"`
	InterviewStatus   string     `json:"interview_status"`
	InterviewerEmail  string     `json:"interviewer_email,omitempty"`
	InterviewerName   string     `json:"interviewer_name,omitempty"`
	DecisionMadeBy    string     `json:"decision_made_by,omitempty"`
	LastDecisionAt    *time.Time `json:"last_decision_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// Meeting represents one scheduled interview with its single-use magic-link
// token. The token doubles as the session id.
type Meeting struct {
	ID             int64      `json:"id"`
	CandidateEmail string     `json:"candidate_email"`
	HREmail        string     `json:"hr_email"`
	MeetingURL     string     `json:"meeting_url"`
	LoginToken     string     `json:"login_token"`
	TokenExpiry    *time.Time `json:"token_expiry,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Session is the bundle of generated questions plus completion state for one
// candidate attempt. The question set is immutable once created.
type Session struct {
	ID             string    `json:"id"`
	CandidateEmail string    `json:"candidate_email"`
	QuestionsJSON  string    `json:"-"`
	Completed      bool      `json:"completed"`
	CreatedAt      time.Time `json:"created_at"`
}

// MonitoringEvent is one append-only proctoring signal tagged by session.
type MonitoringEvent struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"session_id"`
	CandidateEmail string    `json:"candidate_email,omitempty"`
	EventType      string    `json:"event_type"`
	Description    string    `json:"description,omitempty"`
	Metadata       string    `json:"metadata,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Question is one generated interview question. Options is set for MCQ only.
type Question struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"` // MCQ or Coding
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

// Summary is the structured LLM evaluation of a submitted answer set.
type Summary struct {
	Score          int    `json:"score"`
	Summary        string `json:"summary"`
	Strengths      string `json:"strengths"`
	Improvements   string `json:"improvements"`
	Recommendation string `json:"recommendation"`
}

// Result is the per-candidate scoring record. One per email; resubmission
// increments Attempts and overwrites the summary in place.
type Result struct {
	CandidateEmail string    `json:"candidate_email"`
	Attempts       int       `json:"attempts"`
	SubmittedAt    time.Time `json:"submitted_at"`
	Summary        Summary   `json:"summary"`
}
