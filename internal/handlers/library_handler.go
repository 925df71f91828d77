package handlers

import (
	"net/http"
	"strconv"

	"screenclash/internal/models"
	"screenclash/internal/service"
)

// LibraryHandler exposes the exercise content library. Write routes sit
// behind the parental unlock middleware; the tablets only read.
type LibraryHandler struct {
	exerciseService *service.ExerciseService
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(exerciseService *service.ExerciseService) *LibraryHandler {
	return &LibraryHandler{exerciseService: exerciseService}
}

// List returns a profile's content, optionally filtered by type
// GET /api/profiles/{profile}/library?type=math
func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	profileName := r.PathValue("profile")
	exerciseType := models.ExerciseType(r.URL.Query().Get("type"))

	items, err := h.exerciseService.ListItems(profileName, exerciseType)
	if err != nil {
		respondWithValidationError(w, err, "Failed to list library items")
		return
	}
	if items == nil {
		items = []models.LibraryItem{}
	}
	respondWithJSON(w, http.StatusOK, items)
}

// Create stores a new library entry
// POST /api/library
func (h *LibraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item models.LibraryItem
	if err := decodeJSON(r, &item); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	created, err := h.exerciseService.CreateItem(&item)
	if err != nil {
		respondWithValidationError(w, err, "Failed to create library item")
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// Get returns one library entry
// GET /api/library/{id}
func (h *LibraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id", "", nil)
		return
	}

	item, err := h.exerciseService.GetItem(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to get library item", err)
		return
	}
	if item == nil {
		respondWithError(w, http.StatusNotFound, "library item not found", "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// Update replaces a library entry
// PUT /api/library/{id}
func (h *LibraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id", "", nil)
		return
	}

	var item models.LibraryItem
	if err := decodeJSON(r, &item); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	item.ID = id

	if err := h.exerciseService.UpdateItem(&item); err != nil {
		respondWithValidationError(w, err, "Failed to update library item")
		return
	}
	respondWithJSON(w, http.StatusOK, &item)
}

// Delete removes a library entry
// DELETE /api/library/{id}
func (h *LibraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id", "", nil)
		return
	}

	if err := h.exerciseService.DeleteItem(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to delete library item", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
