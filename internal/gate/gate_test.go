package gate

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"screenclash/internal/exercise"
	"screenclash/internal/models"
)

// fakeContent serves a fixed pool per exercise type
type fakeContent struct {
	items map[models.ExerciseType][]models.LibraryItem
}

func (f *fakeContent) ItemsFor(profileName string, t models.ExerciseType) ([]models.LibraryItem, error) {
	return f.items[t], nil
}

// fakeHistory collects persisted records
type fakeHistory struct {
	records []*models.HistoryRecord
}

func (f *fakeHistory) SaveRecord(rec *models.HistoryRecord) {
	f.records = append(f.records, rec)
}

func mathItem(num1, num2 int) models.LibraryItem {
	content, _ := json.Marshal(models.MathContent{Num1: num1, Num2: num2})
	return models.LibraryItem{Type: models.ExerciseMath, Content: content}
}

func lectureItem(text string) models.LibraryItem {
	content, _ := json.Marshal(models.LectureContent{Text: text})
	return models.LibraryItem{Type: models.ExerciseLecture, Content: content}
}

func testConfig() *models.ProfileConfig {
	return &models.ProfileConfig{
		ProfileName:    "emma",
		NumberOfCycles: 1,
		InitialDelay:   1, // one minute
		BreakDelay:     10,
		GamesConfig: []models.GameConfig{
			{Type: models.ExerciseMath, IsEnabled: true, QuestionCount: 1},
			{Type: models.ExerciseWrite, IsEnabled: true, QuestionCount: 1},
		},
	}
}

func testContent() *fakeContent {
	return &fakeContent{items: map[models.ExerciseType][]models.LibraryItem{
		models.ExerciseMath: {mathItem(7, 6)},
	}}
}

func newTestSession(cfg *models.ProfileConfig, content ContentSource) *Session {
	return NewSession(cfg, content, rand.New(rand.NewSource(1)))
}

func TestSessionLocksExactlyAtAllowance(t *testing.T) {
	s := newTestSession(testConfig(), testContent())

	if st := s.Status(); st.State != StateRunning {
		t.Fatalf("initial state = %s, want running", st.State)
	}

	// 59 ticks: one second short of the one-minute allowance
	for i := 0; i < 59; i++ {
		s.Tick()
	}
	if st := s.Status(); st.State != StateRunning {
		t.Fatalf("state after 59s = %s, want running", st.State)
	}
	if st := s.Status(); st.RemainingSeconds != 1 {
		t.Errorf("remaining = %d, want 1", st.RemainingSeconds)
	}

	s.Tick()
	st := s.Status()
	if st.State != StateLocked {
		t.Fatalf("state after 60s = %s, want locked", st.State)
	}
	if st.ActiveExercise != "math" {
		t.Errorf("active exercise = %s, want math (first enabled slot)", st.ActiveExercise)
	}
	if st.Prompt == nil || st.Prompt.Math == nil {
		t.Error("locked status should carry the current prompt")
	}
}

func TestTickIsNoOpWhileLocked(t *testing.T) {
	cfg := testConfig()
	cfg.InitialDelay = 0
	s := newTestSession(cfg, testContent())

	if st := s.Status(); st.State != StateLocked {
		t.Fatalf("zero allowance should lock immediately, got %s", st.State)
	}

	s.Tick()
	if st := s.Status(); st.State != StateLocked {
		t.Errorf("tick while locked changed state to %s", st.State)
	}
}

func TestZeroAllowanceLocksImmediately(t *testing.T) {
	cfg := testConfig()
	cfg.InitialDelay = 0
	s := newTestSession(cfg, testContent())

	st := s.Status()
	if st.State != StateLocked {
		t.Fatalf("state = %s, want locked", st.State)
	}
	if st.RemainingSeconds != 0 {
		t.Errorf("remaining = %d, want 0", st.RemainingSeconds)
	}
}

func TestNoEnabledSlotsLocksImmediately(t *testing.T) {
	cfg := testConfig()
	for i := range cfg.GamesConfig {
		cfg.GamesConfig[i].IsEnabled = false
	}
	s := newTestSession(cfg, testContent())

	st := s.Status()
	if st.State != StateLocked {
		t.Fatalf("state = %s, want locked", st.State)
	}
	if st.Prompt != nil {
		t.Error("a session with no enabled game has no prompt")
	}
	if _, _, err := s.Submit(exercise.Answer{Text: "42"}); err != exercise.ErrNoContent {
		t.Errorf("submit with no engine = %v, want ErrNoContent", err)
	}
}

func TestUnlockAdvancesSlotAndResetsCountdown(t *testing.T) {
	s := newTestSession(testConfig(), testContent())

	for i := 0; i < 60; i++ {
		s.Tick()
	}
	st := s.Status()
	if st.State != StateLocked || st.ActiveExercise != "math" {
		t.Fatalf("expected math lock, got %+v", st)
	}

	answer := fmt.Sprintf("%d", st.Prompt.Math.Num1*st.Prompt.Math.Num2)
	feedback, record, err := s.Submit(exercise.Answer{Text: answer})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !feedback.RunComplete {
		t.Fatal("single-question run should complete on the correct answer")
	}
	if record == nil || record.GameType != models.ExerciseMath {
		t.Fatalf("expected a math history record, got %+v", record)
	}

	st = s.Status()
	if st.State != StateRunning {
		t.Errorf("state after unlock = %s, want running", st.State)
	}
	if st.RemainingSeconds != 60 {
		t.Errorf("remaining after unlock = %d, want full allowance 60", st.RemainingSeconds)
	}

	// Next lock uses the next enabled slot
	for i := 0; i < 60; i++ {
		s.Tick()
	}
	if st := s.Status(); st.ActiveExercise != "write" {
		t.Errorf("second lock exercise = %s, want write", st.ActiveExercise)
	}
}

func TestCycleCountIncrementsOnWrap(t *testing.T) {
	cfg := testConfig()
	cfg.InitialDelay = 0 // re-lock immediately after each unlock
	s := newTestSession(cfg, testContent())

	solve := func() {
		st := s.Status()
		var answer string
		switch st.ActiveExercise {
		case "math":
			answer = fmt.Sprintf("%d", st.Prompt.Math.Num1*st.Prompt.Math.Num2)
		case "write":
			// Fallback words: the correct spelling of each wrong form
			switch st.Prompt.Write.Wrong {
			case "MITHOLOGIE":
				answer = "MYTHOLOGIE"
			case "AVANTURE":
				answer = "AVENTURE"
			default:
				answer = "ANTIQUE"
			}
		default:
			t.Fatalf("unexpected exercise %s", st.ActiveExercise)
		}
		if _, _, err := s.Submit(exercise.Answer{Text: answer}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	if st := s.Status(); st.CycleCount != 0 {
		t.Fatalf("initial cycle count = %d, want 0", st.CycleCount)
	}

	solve() // math: slot advances to write
	if st := s.Status(); st.CycleCount != 0 {
		t.Errorf("cycle count after first unlock = %d, want 0", st.CycleCount)
	}

	solve() // write: slot wraps back to math
	if st := s.Status(); st.CycleCount != 1 {
		t.Errorf("cycle count after wrap = %d, want 1", st.CycleCount)
	}
}

func TestReadingSlotWithoutContentIsSkipped(t *testing.T) {
	cfg := testConfig()
	cfg.InitialDelay = 0
	cfg.GamesConfig = []models.GameConfig{
		{Type: models.ExerciseLecture, IsEnabled: true, QuestionCount: 1},
		{Type: models.ExerciseMath, IsEnabled: true, QuestionCount: 1},
	}
	// No lecture items in the pool
	s := newTestSession(cfg, testContent())

	st := s.Status()
	if st.State != StateLocked {
		t.Fatalf("state = %s, want locked", st.State)
	}
	if st.ActiveExercise != "math" {
		t.Errorf("active exercise = %s, want math (lecture skipped without content)", st.ActiveExercise)
	}
}

func TestReadingSlotWithContentIsUsed(t *testing.T) {
	cfg := testConfig()
	cfg.InitialDelay = 0
	cfg.GamesConfig = []models.GameConfig{
		{Type: models.ExerciseLecture, IsEnabled: true, QuestionCount: 1},
	}
	content := &fakeContent{items: map[models.ExerciseType][]models.LibraryItem{
		models.ExerciseLecture: {lectureItem("Le petit dragon dort.")},
	}}
	s := newTestSession(cfg, content)

	st := s.Status()
	if st.ActiveExercise != "lecture" {
		t.Fatalf("active exercise = %s, want lecture", st.ActiveExercise)
	}

	_, record, err := s.Submit(exercise.Answer{DurationSeconds: 30})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if record == nil || record.GameType != models.ExerciseLecture {
		t.Fatalf("expected a lecture record, got %+v", record)
	}
}

func TestForceUnlockDiscardsRun(t *testing.T) {
	cfg := testConfig()
	cfg.InitialDelay = 1
	s := newTestSession(cfg, testContent())

	for i := 0; i < 60; i++ {
		s.Tick()
	}
	if st := s.Status(); st.State != StateLocked {
		t.Fatal("expected locked state")
	}

	s.ForceUnlock()
	st := s.Status()
	if st.State != StateRunning {
		t.Errorf("state after force unlock = %s, want running", st.State)
	}
	if st.RemainingSeconds != 60 {
		t.Errorf("remaining = %d, want full allowance", st.RemainingSeconds)
	}
}

func TestManagerPersistsCompletedRuns(t *testing.T) {
	history := &fakeHistory{}
	m := NewManager(testContent(), history)
	m.newRand = func() *rand.Rand { return rand.New(rand.NewSource(1)) }

	cfg := testConfig()
	cfg.InitialDelay = 0
	m.Activate(cfg)

	st, err := m.Status("emma")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.State != StateLocked || st.ActiveExercise != "math" {
		t.Fatalf("unexpected status %+v", st)
	}

	answer := fmt.Sprintf("%d", st.Prompt.Math.Num1*st.Prompt.Math.Num2)
	feedback, err := m.Submit("emma", exercise.Answer{Text: answer})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !feedback.RunComplete {
		t.Fatal("expected run to complete")
	}

	if len(history.records) != 1 {
		t.Fatalf("persisted %d records, want 1", len(history.records))
	}
	if history.records[0].ChildName != "emma" {
		t.Errorf("record child = %s, want emma", history.records[0].ChildName)
	}
}

func TestManagerDeactivateDiscardsSession(t *testing.T) {
	history := &fakeHistory{}
	m := NewManager(testContent(), history)

	cfg := testConfig()
	cfg.InitialDelay = 0
	m.Activate(cfg)
	m.Deactivate("emma")

	if _, err := m.Status("emma"); err != ErrNoSession {
		t.Errorf("status after deactivate = %v, want ErrNoSession", err)
	}
	if len(history.records) != 0 {
		t.Errorf("deactivation must not persist records, got %d", len(history.records))
	}
}

func TestManagerTickAllAdvancesSessions(t *testing.T) {
	m := NewManager(testContent(), &fakeHistory{})

	cfg := testConfig()
	m.Activate(cfg)

	for i := 0; i < 60; i++ {
		m.TickAll()
	}
	st, err := m.Status("emma")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.State != StateLocked {
		t.Errorf("state after 60 ticks = %s, want locked", st.State)
	}
}
