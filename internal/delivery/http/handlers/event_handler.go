package handlers

import (
	"net/http"
	"time"

	"github.com/Dompi123/fomo-pr-sub002/internal/usecase"
)

// EventHandler serves the ledger's analytics read contract.
type EventHandler struct {
	Recorder usecase.EventRecorder
}

func NewEventHandler(recorder usecase.EventRecorder) *EventHandler {
	return &EventHandler{Recorder: recorder}
}

func (h *EventHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /venues/{venueId}/events", h.VenueEvents)
}

func (h *EventHandler) VenueEvents(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("venueId")

	from, err := parseTimeParam(r, "from", time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from timestamp")
		return
	}
	to, err := parseTimeParam(r, "to", time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to timestamp")
		return
	}

	events, err := h.Recorder.EventsByVenue(venueID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func parseTimeParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, raw)
}
