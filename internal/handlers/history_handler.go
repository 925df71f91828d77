package handlers

import (
	"net/http"
	"strconv"

	"screenclash/internal/models"
	"screenclash/internal/service"
)

// HistoryHandler exposes the exercise history log
type HistoryHandler struct {
	historyService *service.HistoryService
	reportService  *service.ReportService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *service.HistoryService, reportService *service.ReportService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
		reportService:  reportService,
	}
}

// Create appends a record reported directly by a tablet
// POST /api/history
func (h *HistoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec models.HistoryRecord
	if err := decodeJSON(r, &rec); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	id, err := h.historyService.AddRecord(&rec)
	if err != nil {
		respondWithValidationError(w, err, "Failed to save history record")
		return
	}
	rec.ID = id
	respondWithJSON(w, http.StatusCreated, &rec)
}

// List returns a child's history, newest first
// GET /api/history/{child}?limit=50
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	childName := r.PathValue("child")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.historyService.ListRecords(childName, limit)
	if err != nil {
		respondWithValidationError(w, err, "Failed to list history records")
		return
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}
	respondWithJSON(w, http.StatusOK, records)
}

// Statistics returns the parent app's statistics view for a child
// GET /api/history/{child}/statistics
func (h *HistoryHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.historyService.GetStatistics(r.PathValue("child"))
	if err != nil {
		respondWithValidationError(w, err, "Failed to build statistics")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// SendReport emails the parent a summary of a child's recent runs
// POST /api/history/{child}/report
func (h *HistoryHandler) SendReport(w http.ResponseWriter, r *http.Request) {
	childName := r.PathValue("child")

	var req struct {
		Email string `json:"email"`
		Limit int    `json:"limit"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if req.Email == "" {
		respondWithError(w, http.StatusBadRequest, "email is required", "", nil)
		return
	}

	records, err := h.historyService.ListRecords(childName, req.Limit)
	if err != nil {
		respondWithValidationError(w, err, "Failed to load records for report")
		return
	}

	if err := h.reportService.SendSessionReport(r.Context(), req.Email, childName, records); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to send report", "Failed to send session report", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
