package service

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"screenclash/internal/models"
	"screenclash/internal/repository"
)

// Backup is the full exported state of the server
type Backup struct {
	ExportedAt time.Time              `json:"exported_at"`
	Profiles   []models.Profile       `json:"profiles"`
	Configs    []models.ProfileConfig `json:"configs"`
	Library    []models.LibraryItem   `json:"library"`
	History    []models.HistoryRecord `json:"history"`
}

// BackupService exports the database as compressed JSON
type BackupService struct {
	profileRepo  *repository.ProfileRepository
	settingsRepo *repository.SettingsRepository
	exerciseRepo *repository.ExerciseRepository
	historyRepo  *repository.HistoryRepository
}

// NewBackupService creates a new backup service
func NewBackupService(
	profileRepo *repository.ProfileRepository,
	settingsRepo *repository.SettingsRepository,
	exerciseRepo *repository.ExerciseRepository,
	historyRepo *repository.HistoryRepository,
) *BackupService {
	return &BackupService{
		profileRepo:  profileRepo,
		settingsRepo: settingsRepo,
		exerciseRepo: exerciseRepo,
		historyRepo:  historyRepo,
	}
}

// Export writes a gzip-compressed JSON backup to w
func (s *BackupService) Export(w io.Writer) error {
	backup := Backup{ExportedAt: time.Now()}

	var err error
	if backup.Profiles, err = s.profileRepo.GetAllProfiles(); err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}
	if backup.Configs, err = s.settingsRepo.GetAllProfileConfigs(); err != nil {
		return fmt.Errorf("failed to export configs: %w", err)
	}
	if backup.History, err = s.historyRepo.GetAllRecords(); err != nil {
		return fmt.Errorf("failed to export history: %w", err)
	}

	for _, p := range backup.Profiles {
		items, err := s.exerciseRepo.GetAllItemsForProfile(p.Name)
		if err != nil {
			return fmt.Errorf("failed to export library for %s: %w", p.Name, err)
		}
		backup.Library = append(backup.Library, items...)
	}

	gz := gzip.NewWriter(w)
	enc := json.NewEncoder(gz)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finish backup stream: %w", err)
	}
	return nil
}
