package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dompi123/fomo-pr-sub002/internal/domain"
	"github.com/Dompi123/fomo-pr-sub002/internal/features"
)

// FlagHandler is the administrative flag surface: read/list with
// metrics plus the set-state upsert. Data contract only, consumed by
// the ops dashboard. Writes land on the instance that serves the
// request; registry state is process-local.
type FlagHandler struct {
	Registry *features.Registry
}

func NewFlagHandler(registry *features.Registry) *FlagHandler {
	return &FlagHandler{Registry: registry}
}

func (h *FlagHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /flags", h.ListFlags)
	mux.HandleFunc("GET /flags/{key}", h.GetFlag)
	mux.HandleFunc("PUT /flags/{key}", h.SetFlag)
}

func (h *FlagHandler) ListFlags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"flags": h.Registry.ListFlags(),
	})
}

func (h *FlagHandler) GetFlag(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	flag, err := h.Registry.Lookup(key)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownFlag) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, flag)
}

func (h *FlagHandler) SetFlag(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var update domain.FlagUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if update.RolloutPercentage != nil && (*update.RolloutPercentage < 0 || *update.RolloutPercentage > 100) {
		writeError(w, http.StatusBadRequest, "rollout_percentage must be within [0,100]")
		return
	}

	flag := h.Registry.SetFeatureState(key, update)
	writeJSON(w, http.StatusOK, flag)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
