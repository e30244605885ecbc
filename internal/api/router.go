package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Candidate endpoints
	mux.HandleFunc("/api/candidates", a.CandidatesHandler)
	mux.HandleFunc("/api/candidates/upload", a.UploadResumeHandler)
	mux.HandleFunc("/api/candidates/select", a.SelectHandler)
	mux.HandleFunc("/api/candidates/reject", a.RejectHandler)
	mux.HandleFunc("/api/candidates/schedule-second-round", a.ScheduleSecondRoundHandler)

	// Interview lifecycle endpoints
	mux.HandleFunc("/api/interviews/schedule", a.ScheduleInterviewHandler)
	mux.HandleFunc("/api/auth/start-interview/", a.StartInterviewHandler)
	mux.HandleFunc("/api/interviews/session/", a.SessionHandler)

	// Monitoring endpoints
	mux.HandleFunc("/api/monitoring/events", a.MonitoringEventsHandler)

	return mux
}
