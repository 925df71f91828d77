package handlers

import (
	"net/http"

	"screenclash/internal/exercise"
	"screenclash/internal/gate"
	"screenclash/internal/service"
)

// GateHandler exposes the screen-time gate to the tablets
type GateHandler struct {
	manager       *gate.Manager
	configService *service.ConfigService
}

// NewGateHandler creates a new gate handler
func NewGateHandler(manager *gate.Manager, configService *service.ConfigService) *GateHandler {
	return &GateHandler{
		manager:       manager,
		configService: configService,
	}
}

// Activate starts a screen-time session for a profile
// POST /api/gate/{profile}/activate
func (h *GateHandler) Activate(w http.ResponseWriter, r *http.Request) {
	profileName := r.PathValue("profile")

	cfg, err := h.configService.GetConfig(profileName)
	if err != nil {
		respondWithValidationError(w, err, "Failed to load config for gate activation")
		return
	}

	status := h.manager.Activate(cfg)
	respondWithJSON(w, http.StatusOK, status)
}

// Deactivate ends a profile's session, discarding any exercise in flight
// POST /api/gate/{profile}/deactivate
func (h *GateHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.manager.Deactivate(r.PathValue("profile"))
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// Status returns the current session snapshot
// GET /api/gate/{profile}/status
func (h *GateHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.manager.Status(r.PathValue("profile"))
	if err == gate.ErrNoSession {
		respondWithError(w, http.StatusNotFound, "no active session", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to read gate status", err)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}

// Answer submits an answer to the active exercise
// POST /api/gate/{profile}/answer
func (h *GateHandler) Answer(w http.ResponseWriter, r *http.Request) {
	profileName := r.PathValue("profile")

	var answer exercise.Answer
	if err := decodeJSON(r, &answer); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	feedback, err := h.manager.Submit(profileName, answer)
	switch err {
	case nil:
		respondWithJSON(w, http.StatusOK, feedback)
	case gate.ErrNoSession:
		respondWithError(w, http.StatusNotFound, "no active session", "", nil)
	case gate.ErrNotLocked:
		respondWithError(w, http.StatusConflict, "gate is not locked", "", nil)
	case exercise.ErrNoContent:
		respondWithError(w, http.StatusConflict, "no exercise available", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to submit answer", err)
	}
}

// ForceUnlock ends a lock through the parental override. Routed behind
// the unlock-token middleware.
// POST /api/gate/{profile}/force-unlock
func (h *GateHandler) ForceUnlock(w http.ResponseWriter, r *http.Request) {
	status, err := h.manager.ForceUnlock(r.PathValue("profile"))
	if err == gate.ErrNoSession {
		respondWithError(w, http.StatusNotFound, "no active session", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to force unlock", err)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}
