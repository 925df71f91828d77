package handlers

import (
	"net/http"

	"screenclash/internal/chat"
)

// ChatHandler exposes the child assistant
type ChatHandler struct {
	chatService *chat.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *chat.Service) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Send posts a message and returns the assistant's reply
// POST /api/chat/{profile}
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message  string `json:"message"`
		Provider string `json:"provider,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Message == "" {
		respondWithError(w, http.StatusBadRequest, "message is required", "", nil)
		return
	}

	reply, err := h.chatService.Send(r.Context(), r.PathValue("profile"), req.Provider, req.Message)
	if err == chat.ErrNoProvider {
		respondWithError(w, http.StatusServiceUnavailable, "assistant unavailable", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "assistant failed to reply", "Chat reply failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// History returns a profile's conversation
// GET /api/chat/{profile}
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	history := h.chatService.History(r.PathValue("profile"))
	if history == nil {
		history = []chat.Message{}
	}
	respondWithJSON(w, http.StatusOK, history)
}

// Reset clears a profile's conversation
// DELETE /api/chat/{profile}
func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.chatService.Reset(r.PathValue("profile"))
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// Providers lists the available assistant backends
// GET /api/chat/providers
func (h *ChatHandler) Providers(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.chatService.Providers())
}
