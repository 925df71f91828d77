package models

import (
	"encoding/json"
	"testing"
)

func TestProfileConfigAllowanceSeconds(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    int
	}{
		{"default twenty minutes", 20, 1200},
		{"one minute", 1, 60},
		{"zero allowance", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ProfileConfig{InitialDelay: tt.minutes}
			if got := cfg.AllowanceSeconds(); got != tt.want {
				t.Errorf("AllowanceSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEnabledSlotsPreservesOrder(t *testing.T) {
	cfg := ProfileConfig{
		GamesConfig: []GameConfig{
			{Type: ExerciseQuiz, IsEnabled: true, QuestionCount: 5},
			{Type: ExerciseMath, IsEnabled: false, QuestionCount: 5},
			{Type: ExerciseWrite, IsEnabled: true, QuestionCount: 3},
			{Type: ExerciseLecture, IsEnabled: true, QuestionCount: 1},
		},
	}

	slots := cfg.EnabledSlots()
	want := []ExerciseType{ExerciseQuiz, ExerciseWrite, ExerciseLecture}
	if len(slots) != len(want) {
		t.Fatalf("got %d enabled slots, want %d", len(slots), len(want))
	}
	for i, typ := range want {
		if slots[i].Type != typ {
			t.Errorf("slot %d = %s, want %s", i, slots[i].Type, typ)
		}
	}
}

func TestHasEnabledGame(t *testing.T) {
	cfg := ProfileConfig{
		GamesConfig: []GameConfig{
			{Type: ExerciseQuiz, IsEnabled: false},
			{Type: ExerciseMath, IsEnabled: false},
		},
	}
	if cfg.HasEnabledGame() {
		t.Error("expected no enabled game when every slot is disabled")
	}

	cfg.GamesConfig[1].IsEnabled = true
	if !cfg.HasEnabledGame() {
		t.Error("expected an enabled game after enabling a slot")
	}
}

func TestDefaultProfileConfig(t *testing.T) {
	cfg := DefaultProfileConfig("emma")

	if cfg.ProfileName != "emma" {
		t.Errorf("ProfileName = %q, want %q", cfg.ProfileName, "emma")
	}
	if cfg.NumberOfCycles != 1 || cfg.InitialDelay != 20 || cfg.BreakDelay != 10 {
		t.Errorf("unexpected defaults: cycles=%d initial=%d break=%d",
			cfg.NumberOfCycles, cfg.InitialDelay, cfg.BreakDelay)
	}
	if len(cfg.GamesConfig) != 4 {
		t.Fatalf("got %d default slots, want 4", len(cfg.GamesConfig))
	}
	for _, g := range cfg.GamesConfig {
		if !g.IsEnabled {
			t.Errorf("default slot %s should be enabled", g.Type)
		}
	}
}

func TestGameConfigWireFormat(t *testing.T) {
	data, err := json.Marshal(GameConfig{Type: ExerciseMath, IsEnabled: true, QuestionCount: 5})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"math","isEnabled":true,"questionCount":5}`
	if string(data) != want {
		t.Errorf("wire format = %s, want %s", data, want)
	}
}

func TestHistoryDetailsOmitsEmptyFields(t *testing.T) {
	details := HistoryDetails{
		Score:          IntPtr(4),
		TotalQuestions: IntPtr(5),
		Mistakes:       IntPtr(1),
	}
	data, err := json.Marshal(details)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["text_read"]; ok {
		t.Error("text_read should be omitted for a scored game record")
	}
	if len(decoded) != 3 {
		t.Errorf("got %d fields, want 3: %s", len(decoded), data)
	}
}

func TestExerciseTypeValid(t *testing.T) {
	for _, typ := range []ExerciseType{ExerciseMath, ExerciseQuiz, ExerciseWrite, ExerciseLecture} {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if ExerciseType("chess").Valid() {
		t.Error("unknown type should not be valid")
	}
}

func TestBookmarkIsSection(t *testing.T) {
	section := Bookmark{Title: "Jeux", URL: ""}
	if !section.IsSection() {
		t.Error("bookmark with empty URL should be a section")
	}
	link := Bookmark{Title: "Wikipedia", URL: "https://fr.wikipedia.org"}
	if link.IsSection() {
		t.Error("bookmark with a URL should not be a section")
	}
}
