package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"mock-interview/internal/interview"
)

// CandidatesHandler serves the candidate collection.
// @Summary Manage candidates
// @Description POST creates/updates a profile, GET lists (or fetches one by ?email=), DELETE removes by ?name=
// @Tags candidates
// @Accept json
// @Produce json
// @Param email query string false "Fetch a single candidate"
// @Param name query string false "Delete by name"
// @Success 200 {object} interview.CandidateProfile
// @Failure 404 {object} map[string]string
// @Router /candidates [get]
func (a *API) CandidatesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createCandidate(w, r)
	case http.MethodGet:
		a.getCandidates(w, r)
	case http.MethodDelete:
		a.deleteCandidate(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *API) createCandidate(w http.ResponseWriter, r *http.Request) {
	var profile interview.CandidateProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if profile.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}
	applyProfileDefaults(&profile)

	if err := a.profiles.SaveProfile(r.Context(), &profile); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (a *API) getCandidates(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("email"); email != "" {
		profile, err := a.profiles.GetProfile(r.Context(), email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
		return
	}

	profiles, err := a.profiles.ListProfiles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	// Dashboard listing: each row carries the derived interview status.
	type row struct {
		interview.CandidateProfile
		DashboardStatus string `json:"dashboard_status"`
	}
	rows := make([]row, 0, len(profiles))
	for _, p := range profiles {
		status, err := a.service.DashboardStatus(r.Context(), p.Email)
		if err != nil {
			log.Printf("Dashboard status for %s: %v", p.Email, err)
			status = interview.OverallPending
		}
		rows = append(rows, row{CandidateProfile: p, DashboardStatus: status})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *API) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if err := a.profiles.DeleteProfileByName(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": name})
}

// UploadResumeHandler creates a candidate profile from an uploaded resume.
// @Summary Upload resume
// @Description Upload a resume (PDF/DOCX/TXT, max 10MB), extract text and prefill the candidate profile
// @Tags candidates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume file"
// @Param email formData string true "Candidate email"
// @Success 201 {object} interview.CandidateProfile
// @Failure 400 {object} map[string]string
// @Router /candidates/upload [post]
func (a *API) UploadResumeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "file too large or invalid (max 10MB)", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".docx" && ext != ".doc" && ext != ".txt" {
		http.Error(w, "invalid file type (supported: PDF, DOCX, TXT)", http.StatusBadRequest)
		return
	}

	parsed, err := a.parser.ParseFile(header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("Resume parsed: %s (%d bytes text)", parsed.Filename, len(parsed.FullText))

	// LLM prefill is best effort: a malformed extraction must not block
	// storing the profile.
	prefill, err := a.extractor.Extract(r.Context(), parsed.FullText)
	if err != nil {
		log.Printf("Resume extraction failed, storing bare profile: %v", err)
	}

	profile := &interview.CandidateProfile{
		Email:       email,
		Name:        firstNonEmpty(r.FormValue("name"), prefill.Name),
		Position:    firstNonEmpty(r.FormValue("position"), prefill.Position),
		Experience:  prefill.ExperienceYears,
		Skills:      firstNonEmpty(r.FormValue("skills"), prefill.Skills),
		Description: prefill.Summary,
		Phone:       firstNonEmpty(r.FormValue("phone"), prefill.Phone),
		Location:    firstNonEmpty(r.FormValue("location"), prefill.Location),
	}
	applyProfileDefaults(profile)

	if err := a.profiles.SaveProfile(r.Context(), profile); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

type decisionRequest struct {
	CandidateEmail string `json:"candidate_email"`
	HREmail        string `json:"hr_email"`
}

// SelectHandler advances a candidate to the next hiring round.
// @Summary Select candidate
// @Description Promote the candidate: pass the first round, or finalize the hire when the second round is pending
// @Tags rounds
// @Accept json
// @Produce json
// @Success 200 {object} interview.CandidateProfile
// @Failure 422 {object} map[string]string
// @Router /candidates/select [post]
func (a *API) SelectHandler(w http.ResponseWriter, r *http.Request) {
	a.decide(w, r, a.service.SelectForNextRound)
}

// RejectHandler fails the candidate's current round.
// @Summary Reject candidate
// @Tags rounds
// @Accept json
// @Produce json
// @Success 200 {object} interview.CandidateProfile
// @Failure 422 {object} map[string]string
// @Router /candidates/reject [post]
func (a *API) RejectHandler(w http.ResponseWriter, r *http.Request) {
	a.decide(w, r, a.service.Reject)
}

func (a *API) decide(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, candidateEmail, hrEmail string) (*interview.CandidateProfile, error)) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.CandidateEmail == "" || req.HREmail == "" {
		http.Error(w, "candidate_email and hr_email are required", http.StatusBadRequest)
		return
	}

	profile, err := fn(r.Context(), req.CandidateEmail, req.HREmail)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ScheduleSecondRoundHandler assigns an interviewer for the second round.
// @Summary Schedule second round
// @Tags rounds
// @Accept json
// @Produce json
// @Success 200 {object} interview.CandidateProfile
// @Failure 422 {object} map[string]string
// @Router /candidates/schedule-second-round [post]
func (a *API) ScheduleSecondRoundHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		CandidateEmail   string `json:"candidate_email"`
		InterviewerEmail string `json:"interviewer_email"`
		InterviewerName  string `json:"interviewer_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.CandidateEmail == "" || req.InterviewerEmail == "" {
		http.Error(w, "candidate_email and interviewer_email are required", http.StatusBadRequest)
		return
	}

	profile, err := a.service.ScheduleSecondRound(r.Context(), req.CandidateEmail, req.InterviewerEmail, req.InterviewerName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func applyProfileDefaults(p *interview.CandidateProfile) {
	if p.CurrentRound == 0 {
		p.CurrentRound = 1
	}
	if p.OverallStatus == "" {
		p.OverallStatus = interview.OverallPending
	}
	if p.InterviewStatus == "" {
		p.InterviewStatus = interview.StatusPending
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
