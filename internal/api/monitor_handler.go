package api

import (
	"encoding/json"
	"net/http"

	"mock-interview/internal/interview"
)

// MonitoringEventsHandler ingests and lists proctoring events.
// @Summary Monitoring events
// @Description POST appends one proctoring event; GET lists a session's events ordered by time
// @Tags monitoring
// @Accept json
// @Produce json
// @Param session_id query string false "Session id (GET)"
// @Success 200 {array} interview.MonitoringEvent
// @Failure 400 {object} map[string]string
// @Router /monitoring/events [post]
func (a *API) MonitoringEventsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.appendEvent(w, r)
	case http.MethodGet:
		a.listEvents(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (a *API) appendEvent(w http.ResponseWriter, r *http.Request) {
	var event interview.MonitoringEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if event.SessionID == "" || event.EventType == "" {
		http.Error(w, "session_id and event_type are required", http.StatusBadRequest)
		return
	}

	if err := a.service.RecordEvent(r.Context(), &event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (a *API) listEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	events, err := a.service.SessionEvents(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if events == nil {
		events = []interview.MonitoringEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
