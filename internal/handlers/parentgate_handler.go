package handlers

import (
	"net/http"

	"screenclash/internal/parentgate"
)

// ParentGateHandler exposes the parental override gate and the
// "come here" attention alert.
type ParentGateHandler struct {
	gate  *parentgate.Gate
	alert *parentgate.Alert
}

// NewParentGateHandler creates a new parent gate handler
func NewParentGateHandler(gate *parentgate.Gate, alert *parentgate.Alert) *ParentGateHandler {
	return &ParentGateHandler{
		gate:  gate,
		alert: alert,
	}
}

// Challenge issues a multiplication problem for the calling device
// POST /api/parentgate/challenge
func (h *ParentGateHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string `json:"client_id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ClientID == "" {
		respondWithError(w, http.StatusBadRequest, "client_id is required", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, h.gate.NewChallenge(req.ClientID))
}

// Verify checks a challenge answer or the parent passcode and returns
// an unlock token. Routed behind the rate limiter so the challenge
// cannot be brute-forced.
// POST /api/parentgate/verify
func (h *ParentGateHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID string `json:"client_id"`
		Answer   *int   `json:"answer,omitempty"`
		Passcode string `json:"passcode,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ClientID == "" {
		respondWithError(w, http.StatusBadRequest, "client_id is required", "", nil)
		return
	}

	var token string
	var err error
	switch {
	case req.Passcode != "":
		token, err = h.gate.VerifyPasscode(req.ClientID, req.Passcode)
	case req.Answer != nil:
		token, err = h.gate.SolveChallenge(req.ClientID, *req.Answer)
	default:
		respondWithError(w, http.StatusBadRequest, "answer or passcode is required", "", nil)
		return
	}

	if err == parentgate.ErrWrongAnswer {
		respondWithError(w, http.StatusForbidden, "wrong answer", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to verify parent gate", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

// RaiseAlert activates the attention alert for a profile
// POST /api/alert/{profile}
func (h *ParentGateHandler) RaiseAlert(w http.ResponseWriter, r *http.Request) {
	h.alert.Raise(r.PathValue("profile"))
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "raised"})
}

// AcknowledgeAlert clears the alert before it expires
// DELETE /api/alert/{profile}
func (h *ParentGateHandler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	h.alert.Acknowledge(r.PathValue("profile"))
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// AlertStatus reports whether the alert is raised
// GET /api/alert/{profile}
func (h *ParentGateHandler) AlertStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]bool{
		"active": h.alert.IsActive(r.PathValue("profile")),
	})
}
