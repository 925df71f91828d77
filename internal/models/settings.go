package models

import "time"

// ExerciseType identifies one of the four training games
type ExerciseType string

const (
	ExerciseMath    ExerciseType = "math"
	ExerciseQuiz    ExerciseType = "quiz"
	ExerciseWrite   ExerciseType = "write"
	ExerciseLecture ExerciseType = "lecture"
)

// Valid reports whether t is one of the known exercise types
func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseMath, ExerciseQuiz, ExerciseWrite, ExerciseLecture:
		return true
	}
	return false
}

// GameConfig is one slot in a profile's exercise cycle. Slot order in
// GamesConfig is the iteration order of the cycle.
type GameConfig struct {
	Type          ExerciseType `json:"type"`
	IsEnabled     bool         `json:"isEnabled"`
	QuestionCount int          `json:"questionCount"`
}

// ProfileConfig is the per-profile gate configuration. Delays are stored
// in minutes and converted to seconds when a gate session is activated.
type ProfileConfig struct {
	ID             int64        `json:"id,omitempty"`
	NumberOfCycles int          `json:"number_of_cycles"`
	InitialDelay   int          `json:"initial_delay"` // minutes of video before a pause
	BreakDelay     int          `json:"break_delay"`   // minutes, advisory break length
	GamesConfig    []GameConfig `json:"games_config"`
	ProfileName    string       `json:"profile_name"`
	UpdatedAt      time.Time    `json:"-"`
}

// AllowanceSeconds converts the configured video delay to seconds
func (c *ProfileConfig) AllowanceSeconds() int {
	return c.InitialDelay * 60
}

// BreakSeconds converts the configured break delay to seconds
func (c *ProfileConfig) BreakSeconds() int {
	return c.BreakDelay * 60
}

// EnabledSlots returns the enabled game slots in configured order
func (c *ProfileConfig) EnabledSlots() []GameConfig {
	var enabled []GameConfig
	for _, g := range c.GamesConfig {
		if g.IsEnabled {
			enabled = append(enabled, g)
		}
	}
	return enabled
}

// HasEnabledGame reports whether at least one slot is enabled. Without
// one the gate can never unlock, so the allowance is unusable.
func (c *ProfileConfig) HasEnabledGame() bool {
	return len(c.EnabledSlots()) > 0
}

// DefaultProfileConfig returns the configuration seeded for profiles
// that have never been configured
func DefaultProfileConfig(profileName string) *ProfileConfig {
	return &ProfileConfig{
		NumberOfCycles: 1,
		InitialDelay:   20,
		BreakDelay:     10,
		GamesConfig:    DefaultGameSlots(),
		ProfileName:    profileName,
	}
}

// DefaultGameSlots is the default exercise cycle for a new profile
func DefaultGameSlots() []GameConfig {
	return []GameConfig{
		{Type: ExerciseQuiz, IsEnabled: true, QuestionCount: 5},
		{Type: ExerciseMath, IsEnabled: true, QuestionCount: 5},
		{Type: ExerciseWrite, IsEnabled: true, QuestionCount: 3},
		{Type: ExerciseLecture, IsEnabled: true, QuestionCount: 1},
	}
}
