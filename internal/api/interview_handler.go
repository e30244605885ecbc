package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"mock-interview/internal/interview"
)

// ScheduleInterviewHandler schedules an interview and returns the magic link.
// @Summary Schedule interview
// @Description Generate a question set for the candidate and issue a single-use magic link (valid 48h)
// @Tags interviews
// @Accept json
// @Produce json
// @Success 201 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /interviews/schedule [post]
func (a *API) ScheduleInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		CandidateEmail string `json:"candidate_email"`
		HREmail        string `json:"hr_email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.CandidateEmail == "" {
		http.Error(w, "candidate_email is required", http.StatusBadRequest)
		return
	}

	magicLink, err := a.service.ScheduleInterview(r.Context(), req.CandidateEmail, req.HREmail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"magic_link": magicLink})
}

// StartInterviewHandler consumes a magic-link token.
// @Summary Start interview via magic link
// @Description Validate the single-use token; valid tokens redirect to the candidate info page, invalid ones to the error page
// @Tags interviews
// @Param token path string true "Login token"
// @Success 302
// @Router /auth/start-interview/{token} [get]
func (a *API) StartInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := strings.TrimPrefix(r.URL.Path, interview.MagicLinkPath)
	if token == "" || strings.Contains(token, "/") {
		http.NotFound(w, r)
		return
	}

	ok, err := a.service.ValidateToken(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		http.Redirect(w, r, "/interview-error", http.StatusFound)
		return
	}
	// The token doubles as the session id for the candidate-info page.
	http.Redirect(w, r, "/candidate-info/"+token, http.StatusFound)
}

// SessionHandler serves per-session operations:
//
//	GET  /api/interviews/session/{id}/questions
//	POST /api/interviews/session/{id}/submit
func (a *API) SessionHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/interviews/session/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	sessionID, action := parts[0], parts[1]

	switch {
	case action == "questions" && r.Method == http.MethodGet:
		a.sessionQuestions(w, r, sessionID)
	case action == "submit" && r.Method == http.MethodPost:
		a.submitAnswers(w, r, sessionID)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// sessionQuestions returns the stored question set.
// @Summary Get session questions
// @Description Return the question set bound to the session; a completed session yields 409
// @Tags interviews
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {array} interview.Question
// @Failure 409 {object} map[string]string
// @Router /interviews/session/{id}/questions [get]
func (a *API) sessionQuestions(w http.ResponseWriter, r *http.Request, sessionID string) {
	questions, err := a.service.StartWithSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// submitAnswers finalizes the session and scores the answers.
// @Summary Submit answers
// @Description Mark the session completed, retire the candidate's tokens, score the answers and upsert the result
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} interview.Result
// @Failure 409 {object} map[string]string
// @Router /interviews/session/{id}/submit [post]
func (a *API) submitAnswers(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Answers == nil {
		req.Answers = map[string]string{}
	}

	result, err := a.service.SubmitAnswers(r.Context(), sessionID, req.Answers)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
