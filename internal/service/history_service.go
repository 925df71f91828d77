package service

import (
	"fmt"
	"log"
	"time"

	"screenclash/internal/models"
	"screenclash/internal/repository"
	"screenclash/internal/validation"
)

// defaultHistoryLimit bounds a history listing when the client gives none
const defaultHistoryLimit = 100

// HistoryService handles the exercise history log. It is the gate's
// history sink for completed runs.
type HistoryService struct {
	historyRepo *repository.HistoryRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo *repository.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// SaveRecord persists a completed run in the background. The gate must
// not wait on the database between an unlock and the countdown restart,
// so failures are logged rather than returned.
func (s *HistoryService) SaveRecord(rec *models.HistoryRecord) {
	go func() {
		if _, err := s.historyRepo.CreateRecord(rec); err != nil {
			log.Printf("Failed to save history record for %s (%s): %v", rec.ChildName, rec.GameType, err)
		}
	}()
}

// AddRecord persists a record synchronously, for clients that report
// results directly rather than through the gate.
func (s *HistoryService) AddRecord(rec *models.HistoryRecord) (int64, error) {
	if err := validation.ValidateHistoryRecord(rec); err != nil {
		return 0, err
	}

	id, err := s.historyRepo.CreateRecord(rec)
	if err != nil {
		return 0, fmt.Errorf("failed to save history record: %w", err)
	}
	return id, nil
}

// ListRecords returns a child's history, newest first
func (s *HistoryService) ListRecords(childName string, limit int) ([]models.HistoryRecord, error) {
	if err := validation.ValidateProfileName(childName); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.historyRepo.GetRecordsForChild(childName, limit)
}

// Statistics summarizes a child's recent activity for the parent app
type Statistics struct {
	ChildName     string                      `json:"child_name"`
	TotalRuns     int                         `json:"total_runs"`
	RunsByGame    map[models.ExerciseType]int `json:"runs_by_game"`
	RecentRecords []models.HistoryRecord      `json:"recent_records"`
}

// GetStatistics builds the statistics view for a child over the last
// seven days.
func (s *HistoryService) GetStatistics(childName string) (*Statistics, error) {
	if err := validation.ValidateProfileName(childName); err != nil {
		return nil, err
	}

	counts, err := s.historyRepo.CountRecordsByType(childName)
	if err != nil {
		return nil, err
	}

	recent, err := s.historyRepo.GetRecordsForChildSince(childName, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return &Statistics{
		ChildName:     childName,
		TotalRuns:     total,
		RunsByGame:    counts,
		RecentRecords: recent,
	}, nil
}
