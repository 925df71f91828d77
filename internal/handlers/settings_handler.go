package handlers

import (
	"net/http"

	"screenclash/internal/models"
	"screenclash/internal/service"
)

// SettingsHandler exposes the per-profile gate configuration. All
// routes sit behind the parental unlock middleware.
type SettingsHandler struct {
	configService *service.ConfigService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(configService *service.ConfigService) *SettingsHandler {
	return &SettingsHandler{configService: configService}
}

// Get returns a profile's configuration, defaults included
// GET /api/profiles/{profile}/config
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.GetConfig(r.PathValue("profile"))
	if err != nil {
		respondWithValidationError(w, err, "Failed to load profile config")
		return
	}
	respondWithJSON(w, http.StatusOK, cfg)
}

// Save stores a profile's configuration
// PUT /api/profiles/{profile}/config
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var cfg models.ProfileConfig
	if err := decodeJSON(r, &cfg); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	cfg.ProfileName = r.PathValue("profile")

	if err := h.configService.SaveConfig(&cfg); err != nil {
		respondWithValidationError(w, err, "Failed to save profile config")
		return
	}
	respondWithJSON(w, http.StatusOK, &cfg)
}

// Delete reverts a profile to the default configuration
// DELETE /api/profiles/{profile}/config
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.configService.DeleteConfig(r.PathValue("profile")); err != nil {
		respondWithValidationError(w, err, "Failed to delete profile config")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// List returns every stored configuration
// GET /api/configs
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	configs, err := h.configService.ListConfigs()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal error", "Failed to list configs", err)
		return
	}
	respondWithJSON(w, http.StatusOK, configs)
}
