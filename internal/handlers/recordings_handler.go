package handlers

import (
	"fmt"
	"net/http"

	"screenclash/internal/audio"
)

// RecordingsHandler accepts reading-aloud recordings from the tablets
type RecordingsHandler struct {
	store   *audio.RecordingStore
	maxSize int64
}

// NewRecordingsHandler creates a new recordings handler
func NewRecordingsHandler(store *audio.RecordingStore, maxSize int64) *RecordingsHandler {
	return &RecordingsHandler{
		store:   store,
		maxSize: maxSize,
	}
}

// Upload stores a recording and returns its static URL for the history
// record
// POST /api/recordings
func (h *RecordingsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "audio file is required", "", err)
		return
	}
	defer file.Close()

	filename, err := h.store.Save(file, header.Filename)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to store recording", "Failed to store recording", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{
		"filename":  filename,
		"audio_url": fmt.Sprintf("/static/recordings/%s", filename),
	})
}
