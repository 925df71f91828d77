package handlers

import (
	"net/http"
	"strconv"

	"screenclash/internal/models"
	"screenclash/internal/repository"
)

// BookmarksHandler exposes the per-profile browser sidebar
type BookmarksHandler struct {
	bookmarkRepo *repository.BookmarkRepository
}

// NewBookmarksHandler creates a new bookmarks handler
func NewBookmarksHandler(bookmarkRepo *repository.BookmarkRepository) *BookmarksHandler {
	return &BookmarksHandler{bookmarkRepo: bookmarkRepo}
}

// List returns a profile's sidebar in display order
// GET /api/profiles/{profile}/bookmarks
func (h *BookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	bookmarks, err := h.bookmarkRepo.GetBookmarksForProfile(r.PathValue("profile"))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to list bookmarks", err)
		return
	}
	if bookmarks == nil {
		bookmarks = []models.Bookmark{}
	}
	respondWithJSON(w, http.StatusOK, bookmarks)
}

// Create appends a bookmark or a section separator (empty URL)
// POST /api/profiles/{profile}/bookmarks
func (h *BookmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var bm models.Bookmark
	if err := decodeJSON(r, &bm); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if bm.Title == "" {
		respondWithError(w, http.StatusBadRequest, "title is required", "", nil)
		return
	}
	bm.ProfileName = r.PathValue("profile")

	id, err := h.bookmarkRepo.CreateBookmark(&bm)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to create bookmark", err)
		return
	}
	bm.ID = id
	respondWithJSON(w, http.StatusCreated, &bm)
}

// Reorder rewrites the sidebar order
// PUT /api/profiles/{profile}/bookmarks/order
func (h *BookmarksHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := decodeJSON(r, &req); err != nil || len(req.IDs) == 0 {
		respondWithError(w, http.StatusBadRequest, "ids are required", "", nil)
		return
	}

	if err := h.bookmarkRepo.ReorderBookmarks(r.PathValue("profile"), req.IDs); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to reorder bookmarks", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "reordered"})
}

// Delete removes a bookmark
// DELETE /api/bookmarks/{id}
func (h *BookmarksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid id", "", nil)
		return
	}

	if err := h.bookmarkRepo.DeleteBookmark(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to delete bookmark", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
