package handlers

import (
	"net/http"
	"strconv"

	"screenclash/internal/audio"
	"screenclash/internal/models"
	"screenclash/internal/repository"
)

// NotesHandler exposes the per-profile notebook and its dictation entry
// point
type NotesHandler struct {
	noteRepo    *repository.NoteRepository
	transcriber *audio.Transcriber
}

// NewNotesHandler creates a new notes handler. transcriber may be nil,
// which disables the dictation route.
func NewNotesHandler(noteRepo *repository.NoteRepository, transcriber *audio.Transcriber) *NotesHandler {
	return &NotesHandler{
		noteRepo:    noteRepo,
		transcriber: transcriber,
	}
}

// List returns a profile's notebook, pinned blocks first
// GET /api/profiles/{profile}/notes
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.noteRepo.GetBlocksForProfile(r.PathValue("profile"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to list note blocks", err)
		return
	}
	if blocks == nil {
		blocks = []models.NoteBlock{}
	}
	respondWithJSON(w, http.StatusOK, blocks)
}

// Create appends a note block
// POST /api/profiles/{profile}/notes
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var block models.NoteBlock
	if err := decodeJSON(r, &block); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	block.ProfileName = r.PathValue("profile")

	id, err := h.noteRepo.CreateBlock(&block)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to create note block", err)
		return
	}
	block.ID = id
	respondWithJSON(w, http.StatusCreated, &block)
}

// Update replaces a note block
// PUT /api/notes/{id}
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id", "", nil)
		return
	}

	var block models.NoteBlock
	if err := decodeJSON(r, &block); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	block.ID = id

	if err := h.noteRepo.UpdateBlock(&block); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to update note block", err)
		return
	}
	respondWithJSON(w, http.StatusOK, &block)
}

// Delete removes a note block
// DELETE /api/notes/{id}
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id", "", nil)
		return
	}

	if err := h.noteRepo.DeleteBlock(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to delete note block", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListCategories returns a profile's note categories
// GET /api/profiles/{profile}/note-categories
func (h *NotesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.noteRepo.GetCategoriesForProfile(r.PathValue("profile"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to list note categories", err)
		return
	}
	if categories == nil {
		categories = []models.NoteCategory{}
	}
	respondWithJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a note category
// POST /api/profiles/{profile}/note-categories
func (h *NotesHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required", "", nil)
		return
	}

	profileName := r.PathValue("profile")
	id, err := h.noteRepo.CreateCategory(profileName, req.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to create note category", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, models.NoteCategory{ID: id, ProfileName: profileName, Name: req.Name})
}

// DeleteCategory removes a category and unsets it from its blocks
// DELETE /api/note-categories/{id}
func (h *NotesHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id", "", nil)
		return
	}

	if err := h.noteRepo.DeleteCategory(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to delete note category", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Dictate transcribes uploaded audio into note text
// POST /api/profiles/{profile}/notes/dictate
func (h *NotesHandler) Dictate(w http.ResponseWriter, r *http.Request) {
	if h.transcriber == nil {
		respondWithError(w, http.StatusServiceUnavailable, "dictation unavailable", "", nil)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "audio file is required", "", err)
		return
	}
	defer file.Close()

	text, err := h.transcriber.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "transcription failed", "Failed to transcribe dictation", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"text": text})
}
