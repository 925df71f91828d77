package service

import (
	"encoding/json"
	"fmt"
	"log"

	"screenclash/internal/audio"
	"screenclash/internal/models"
	"screenclash/internal/repository"
	"screenclash/internal/validation"
)

// ExerciseService handles the content library. It also serves as the
// gate's content source when a session locks.
type ExerciseService struct {
	exerciseRepo *repository.ExerciseRepository
	tts          *audio.TTSService
}

// NewExerciseService creates a new exercise service. tts may be nil to
// skip prompt audio generation.
func NewExerciseService(exerciseRepo *repository.ExerciseRepository, tts *audio.TTSService) *ExerciseService {
	return &ExerciseService{
		exerciseRepo: exerciseRepo,
		tts:          tts,
	}
}

// ItemsFor returns a profile's content pool for one exercise type.
// Implements the gate's content source.
func (s *ExerciseService) ItemsFor(profileName string, exerciseType models.ExerciseType) ([]models.LibraryItem, error) {
	return s.exerciseRepo.GetItemsForProfile(profileName, exerciseType)
}

// CreateItem validates and stores a library entry. Spelling words get
// a spoken prompt generated in the background so the tablet can play
// the word aloud.
func (s *ExerciseService) CreateItem(item *models.LibraryItem) (*models.LibraryItem, error) {
	if err := validation.ValidateLibraryItem(item); err != nil {
		return nil, err
	}

	id, err := s.exerciseRepo.CreateItem(item)
	if err != nil {
		return nil, fmt.Errorf("failed to store library item: %w", err)
	}
	item.ID = id

	s.generatePromptAudio(item)
	return item, nil
}

// UpdateItem validates and replaces a library entry
func (s *ExerciseService) UpdateItem(item *models.LibraryItem) error {
	if err := validation.ValidateLibraryItem(item); err != nil {
		return err
	}
	if err := s.exerciseRepo.UpdateItem(item); err != nil {
		return err
	}

	s.generatePromptAudio(item)
	return nil
}

// GetItem returns a single library entry
func (s *ExerciseService) GetItem(id int64) (*models.LibraryItem, error) {
	return s.exerciseRepo.GetItem(id)
}

// ListItems returns a profile's library, optionally filtered by type
func (s *ExerciseService) ListItems(profileName string, exerciseType models.ExerciseType) ([]models.LibraryItem, error) {
	if err := validation.ValidateProfileName(profileName); err != nil {
		return nil, err
	}
	if exerciseType == "" {
		return s.exerciseRepo.GetAllItemsForProfile(profileName)
	}
	if !exerciseType.Valid() {
		return nil, validation.ValidationError{Field: "type", Message: fmt.Sprintf("unknown game type %q", exerciseType)}
	}
	return s.exerciseRepo.GetItemsForProfile(profileName, exerciseType)
}

// DeleteItem removes a library entry
func (s *ExerciseService) DeleteItem(id int64) error {
	return s.exerciseRepo.DeleteItem(id)
}

// generatePromptAudio creates the spoken prompt for spelling words and
// reading texts. Failures are logged, not returned: audio is an
// enhancement, the library entry is already stored.
func (s *ExerciseService) generatePromptAudio(item *models.LibraryItem) {
	if s.tts == nil {
		return
	}

	switch item.Type {
	case models.ExerciseWrite:
		var c models.WriteContent
		if err := json.Unmarshal(item.Content, &c); err != nil || c.Correct == "" {
			return
		}
		go func() {
			if _, err := s.tts.GenerateWordAudio(c.Correct); err != nil {
				log.Printf("Failed to generate prompt audio for %q: %v", c.Correct, err)
			}
		}()
	case models.ExerciseLecture:
		var c models.LectureContent
		if err := json.Unmarshal(item.Content, &c); err != nil || c.Text == "" {
			return
		}
		id := item.ID
		text := c.Text
		go func() {
			if _, err := s.tts.GenerateAudioWithPrefix(text, fmt.Sprintf("lecture_%d", id)); err != nil {
				log.Printf("Failed to generate prompt audio for reading text %d: %v", id, err)
			}
		}()
	}
}
