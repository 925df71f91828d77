package gate

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"screenclash/internal/exercise"
	"screenclash/internal/models"
)

// State is the lifecycle phase of a gate session
type State string

const (
	// StateIdle means no screen-time session is active
	StateIdle State = "idle"
	// StateRunning means the allowance countdown is ticking
	StateRunning State = "running"
	// StateLocked means the allowance is spent and an exercise must be
	// completed to unlock
	StateLocked State = "locked"
)

var (
	// ErrNotLocked is returned when an answer is submitted while the
	// gate is not locked
	ErrNotLocked = errors.New("gate is not locked")

	// ErrNoSession is returned when no session is active for a profile
	ErrNoSession = errors.New("no active session")
)

// ContentSource provides the exercise pool for a profile
type ContentSource interface {
	ItemsFor(profileName string, exerciseType models.ExerciseType) ([]models.LibraryItem, error)
}

// Status is a snapshot of a session, returned to the client on every
// state-changing call and on polls.
type Status struct {
	ProfileName      string           `json:"profile_name"`
	State            State            `json:"state"`
	RemainingSeconds int              `json:"remaining_seconds"`
	BreakSeconds     int              `json:"break_seconds"`
	CycleCount       int              `json:"cycle_count"`
	ActiveExercise   string           `json:"active_exercise,omitempty"`
	Prompt           *exercise.Prompt `json:"prompt,omitempty"`
}

// Session is the screen-time gate for one profile. The countdown runs
// while the state is Running; when the allowance is spent the session
// locks and an exercise engine is selected from the enabled slots, in
// configured order, advancing one slot per unlock.
type Session struct {
	mu sync.Mutex

	profileName      string
	state            State
	allowanceSeconds int
	breakSeconds     int
	elapsed          int
	cycleCount       int
	slots            []models.GameConfig
	activeSlot       int

	engine exercise.Engine

	content ContentSource
	rng     *rand.Rand
}

// NewSession activates a gate session from a profile's configuration.
// A zero allowance, or a configuration with no enabled game, locks the
// session immediately: there is no free screen time to grant.
func NewSession(cfg *models.ProfileConfig, content ContentSource, rng *rand.Rand) *Session {
	s := &Session{
		profileName:      cfg.ProfileName,
		state:            StateRunning,
		allowanceSeconds: cfg.AllowanceSeconds(),
		breakSeconds:     cfg.BreakSeconds(),
		slots:            cfg.EnabledSlots(),
		content:          content,
		rng:              rng,
	}

	if s.allowanceSeconds == 0 || len(s.slots) == 0 {
		s.lock()
	}
	return s
}

// Tick advances the countdown by one second. It is a no-op unless the
// session is running.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}

	s.elapsed++
	if s.elapsed >= s.allowanceSeconds {
		s.lock()
	}
}

// lock transitions to Locked and selects the engine for the active
// slot. Caller must hold the mutex (or be the constructor).
func (s *Session) lock() {
	s.state = StateLocked
	s.engine = nil

	if len(s.slots) == 0 {
		return
	}

	// A slot whose pool cannot produce an engine (reading with no
	// texts) is skipped. If every slot fails the session stays locked
	// with no engine; only a parental override can end it.
	for tries := 0; tries < len(s.slots); tries++ {
		slot := s.slots[s.activeSlot]
		items := s.itemsFor(slot.Type)
		engine, err := exercise.New(slot.Type, slot.QuestionCount, items, s.rng)
		if err == nil {
			s.engine = engine
			return
		}
		s.advanceSlot()
	}
}

func (s *Session) itemsFor(exerciseType models.ExerciseType) []models.LibraryItem {
	if s.content == nil {
		return nil
	}
	items, err := s.content.ItemsFor(s.profileName, exerciseType)
	if err != nil {
		return nil
	}
	return items
}

// advanceSlot moves to the next enabled slot, bumping the cycle count
// when the iteration wraps around.
func (s *Session) advanceSlot() {
	s.activeSlot++
	if s.activeSlot >= len(s.slots) {
		s.activeSlot = 0
		s.cycleCount++
	}
}

// Submit scores an answer against the active exercise. When the answer
// finishes the run the session unlocks: the completed run's record is
// returned for persistence, the slot advances, and the countdown
// restarts from a full allowance.
func (s *Session) Submit(answer exercise.Answer) (*exercise.Feedback, *models.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLocked {
		return nil, nil, ErrNotLocked
	}
	if s.engine == nil {
		return nil, nil, exercise.ErrNoContent
	}

	feedback, err := s.engine.Submit(answer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to submit answer: %w", err)
	}

	var record *models.HistoryRecord
	if feedback.RunComplete {
		record = s.engine.Record(s.profileName)
		s.unlock()
	}
	return feedback, record, nil
}

// unlock restarts the countdown after a completed exercise. Caller
// must hold the mutex.
func (s *Session) unlock() {
	s.engine = nil
	s.advanceSlot()
	s.elapsed = 0
	s.state = StateRunning

	// A zero allowance re-locks immediately: the child moves straight
	// to the next exercise.
	if s.allowanceSeconds == 0 {
		s.lock()
	}
}

// Status returns a snapshot of the session
func (s *Session) Status() *Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &Status{
		ProfileName:      s.profileName,
		State:            s.state,
		RemainingSeconds: s.allowanceSeconds - s.elapsed,
		BreakSeconds:     s.breakSeconds,
		CycleCount:       s.cycleCount,
	}
	if st.RemainingSeconds < 0 {
		st.RemainingSeconds = 0
	}
	if s.state == StateLocked && s.engine != nil {
		st.ActiveExercise = string(s.engine.Type())
		st.Prompt = s.engine.Prompt()
	}
	return st
}

// ForceUnlock ends a lock without finishing the exercise. Used by the
// parental override: the in-flight run is discarded and no history
// record is written.
func (s *Session) ForceUnlock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLocked {
		return
	}
	s.engine = nil
	s.elapsed = 0
	s.state = StateRunning
}
