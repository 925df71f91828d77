package validation

import (
	"encoding/json"
	"testing"

	"screenclash/internal/models"
)

func TestValidateProfileConfig(t *testing.T) {
	valid := models.DefaultProfileConfig("emma")

	tests := []struct {
		name    string
		mutate  func(*models.ProfileConfig)
		wantErr bool
	}{
		{"defaults are valid", func(c *models.ProfileConfig) {}, false},
		{"zero allowance is valid", func(c *models.ProfileConfig) { c.InitialDelay = 0 }, false},
		{"negative allowance", func(c *models.ProfileConfig) { c.InitialDelay = -5 }, true},
		{"negative cycles", func(c *models.ProfileConfig) { c.NumberOfCycles = -1 }, true},
		{"negative break", func(c *models.ProfileConfig) { c.BreakDelay = -1 }, true},
		{"empty profile name", func(c *models.ProfileConfig) { c.ProfileName = "" }, true},
		{"unknown game type", func(c *models.ProfileConfig) { c.GamesConfig[0].Type = "chess" }, true},
		{"negative question count", func(c *models.ProfileConfig) { c.GamesConfig[0].QuestionCount = -3 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			cfg.GamesConfig = append([]models.GameConfig(nil), valid.GamesConfig...)
			tt.mutate(&cfg)
			err := ValidateProfileConfig(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProfileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLibraryItem(t *testing.T) {
	tests := []struct {
		name    string
		item    models.LibraryItem
		wantErr bool
	}{
		{
			"valid math",
			models.LibraryItem{Type: models.ExerciseMath, Recipient: "emma", Content: json.RawMessage(`{"num1":7,"num2":6}`)},
			false,
		},
		{
			"valid quiz",
			models.LibraryItem{Type: models.ExerciseQuiz, Recipient: "emma", Content: json.RawMessage(`{"text":"Qui est Zeus?","correctAnswer":"Un dieu","wrongAnswers":["Un titan"]}`)},
			false,
		},
		{
			"quiz missing correct answer",
			models.LibraryItem{Type: models.ExerciseQuiz, Recipient: "emma", Content: json.RawMessage(`{"text":"Qui est Zeus?"}`)},
			true,
		},
		{
			"write missing wrong spelling",
			models.LibraryItem{Type: models.ExerciseWrite, Recipient: "emma", Content: json.RawMessage(`{"correct":"MYTHOLOGIE"}`)},
			true,
		},
		{
			"unknown type",
			models.LibraryItem{Type: "chess", Recipient: "emma", Content: json.RawMessage(`{}`)},
			true,
		},
		{
			"missing recipient",
			models.LibraryItem{Type: models.ExerciseLecture, Recipient: "", Content: json.RawMessage(`{"text":"Il etait une fois"}`)},
			true,
		},
		{
			"empty content",
			models.LibraryItem{Type: models.ExerciseLecture, Recipient: "emma"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLibraryItem(&tt.item)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLibraryItem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"parent@example.com", false},
		{"", true},
		{"not-an-email", true},
		{"a@b.co", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}
