package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"screenclash/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateProfileName checks if a child profile name is valid
func ValidateProfileName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "profile_name", Message: "profile name is required"}
	}
	if len(name) > 50 {
		return ValidationError{Field: "profile_name", Message: "profile name must be at most 50 characters"}
	}
	return nil
}

// ValidateProfileConfig checks a gate configuration before it is saved
func ValidateProfileConfig(cfg *models.ProfileConfig) error {
	if err := ValidateProfileName(cfg.ProfileName); err != nil {
		return err
	}
	if cfg.NumberOfCycles < 0 {
		return ValidationError{Field: "number_of_cycles", Message: "number of cycles cannot be negative"}
	}
	if cfg.InitialDelay < 0 {
		return ValidationError{Field: "initial_delay", Message: "initial delay cannot be negative"}
	}
	if cfg.BreakDelay < 0 {
		return ValidationError{Field: "break_delay", Message: "break delay cannot be negative"}
	}
	for i, g := range cfg.GamesConfig {
		if !g.Type.Valid() {
			return ValidationError{
				Field:   fmt.Sprintf("games_config[%d].type", i),
				Message: fmt.Sprintf("unknown game type %q", g.Type),
			}
		}
		if g.QuestionCount < 0 {
			return ValidationError{
				Field:   fmt.Sprintf("games_config[%d].questionCount", i),
				Message: "question count cannot be negative",
			}
		}
	}
	return nil
}

// ValidateLibraryItem checks a content library entry, including that its
// payload decodes as the shape its type requires.
func ValidateLibraryItem(item *models.LibraryItem) error {
	if !item.Type.Valid() {
		return ValidationError{Field: "type", Message: fmt.Sprintf("unknown game type %q", item.Type)}
	}
	if err := ValidateProfileName(item.Recipient); err != nil {
		return ValidationError{Field: "destinataire", Message: "recipient profile name is required"}
	}
	if len(item.Content) == 0 {
		return ValidationError{Field: "content", Message: "content is required"}
	}

	switch item.Type {
	case models.ExerciseMath:
		var c models.MathContent
		if err := json.Unmarshal(item.Content, &c); err != nil {
			return ValidationError{Field: "content", Message: "invalid math content"}
		}
	case models.ExerciseQuiz:
		var c models.QuizContent
		if err := json.Unmarshal(item.Content, &c); err != nil || c.Text == "" || c.CorrectAnswer == "" {
			return ValidationError{Field: "content", Message: "quiz content needs text and a correct answer"}
		}
	case models.ExerciseWrite:
		var c models.WriteContent
		if err := json.Unmarshal(item.Content, &c); err != nil || c.Correct == "" || c.Wrong == "" {
			return ValidationError{Field: "content", Message: "write content needs a correct and a wrong spelling"}
		}
	case models.ExerciseLecture:
		var c models.LectureContent
		if err := json.Unmarshal(item.Content, &c); err != nil || c.Text == "" {
			return ValidationError{Field: "content", Message: "lecture content needs a text"}
		}
	}
	return nil
}

// ValidateHistoryRecord checks a history entry before it is persisted
func ValidateHistoryRecord(rec *models.HistoryRecord) error {
	if !rec.GameType.Valid() {
		return ValidationError{Field: "game_type", Message: fmt.Sprintf("unknown game type %q", rec.GameType)}
	}
	if err := ValidateProfileName(rec.ChildName); err != nil {
		return ValidationError{Field: "child_name", Message: "child name is required"}
	}
	return nil
}
