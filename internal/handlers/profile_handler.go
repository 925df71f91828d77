package handlers

import (
	"net/http"

	"screenclash/internal/models"
	"screenclash/internal/repository"
	"screenclash/internal/validation"
)

// ProfileHandler exposes child profile management
type ProfileHandler struct {
	profileRepo *repository.ProfileRepository
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileRepo *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

// List returns every child profile
// GET /api/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileRepo.GetAllProfiles()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to list profiles", err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	respondWithJSON(w, http.StatusOK, profiles)
}

// Create adds a child profile
// POST /api/profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if err := validation.ValidateProfileName(req.Name); err != nil {
		respondWithValidationError(w, err, "")
		return
	}

	existing, err := h.profileRepo.GetProfileByName(req.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to check profile", err)
		return
	}
	if existing != nil {
		respondWithError(w, http.StatusConflict, "profile already exists", "", nil)
		return
	}

	profile, err := h.profileRepo.CreateProfile(req.Name)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to create profile", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, profile)
}

// Delete removes a profile and all of its data
// DELETE /api/profiles/{profile}
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.profileRepo.DeleteProfile(r.PathValue("profile")); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to delete profile", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
