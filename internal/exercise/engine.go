package exercise

import (
	"errors"
	"fmt"
	"math/rand"

	"screenclash/internal/models"
)

var (
	// ErrNoContent is returned when a reading run is requested but the
	// profile has no reading texts. Reading has no built-in fallback.
	ErrNoContent = errors.New("no content available for exercise")

	// ErrRunComplete is returned when an answer is submitted to a run
	// that has already finished.
	ErrRunComplete = errors.New("exercise run already complete")
)

// Prompt is the current question of a run. Exactly one variant field is
// set, matching the engine's type.
type Prompt struct {
	Math    *MathPrompt    `json:"math,omitempty"`
	Quiz    *QuizPrompt    `json:"quiz,omitempty"`
	Write   *WritePrompt   `json:"write,omitempty"`
	Lecture *LecturePrompt `json:"lecture,omitempty"`
}

// MathPrompt asks for the product of two numbers
type MathPrompt struct {
	Num1 int `json:"num1"`
	Num2 int `json:"num2"`
}

// QuizPrompt asks a multiple-choice question. Choices holds the correct
// answer and the wrong answers in shuffled order.
type QuizPrompt struct {
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

// WritePrompt shows a misspelled word to be corrected
type WritePrompt struct {
	Wrong string `json:"wrong"`
}

// LecturePrompt shows a text to read aloud
type LecturePrompt struct {
	Text string `json:"text"`
}

// Answer is a child's response to the current prompt. Text carries the
// answer for the scored games; DurationSeconds and AudioURL carry the
// done signal for a reading prompt.
type Answer struct {
	Text            string `json:"text"`
	DurationSeconds int    `json:"duration_seconds"`
	AudioURL        string `json:"audio_url"`
}

// Feedback is the outcome of one submission
type Feedback struct {
	Correct     bool    `json:"correct"`
	RunComplete bool    `json:"run_complete"`
	Next        *Prompt `json:"next,omitempty"`
}

// Engine runs one exercise of one type. An engine is created when the
// gate locks, consumed by submissions, and discarded after its record
// is read. Engines are not safe for concurrent use; the gate serializes
// access to them.
type Engine interface {
	// Type identifies the game the engine runs
	Type() models.ExerciseType

	// Prompt returns the current question, or nil when the run is complete
	Prompt() *Prompt

	// Submit scores an answer against the current prompt. A wrong answer
	// keeps the run on the same question.
	Submit(answer Answer) (*Feedback, error)

	// Complete reports whether the required number of successes is reached
	Complete() bool

	// Record builds the history entry for a finished run
	Record(childName string) *models.HistoryRecord
}

// New creates an engine of the given type. items is the profile's
// content pool for that type; questionCount is the number of successes
// required to finish the run. The three scored games fall back to
// built-in content when the pool is empty; reading returns ErrNoContent
// instead.
func New(exerciseType models.ExerciseType, questionCount int, items []models.LibraryItem, rng *rand.Rand) (Engine, error) {
	if questionCount < 1 {
		questionCount = 1
	}

	switch exerciseType {
	case models.ExerciseMath:
		return newArithmeticEngine(questionCount, items, rng)
	case models.ExerciseQuiz:
		return newQuizEngine(questionCount, items, rng)
	case models.ExerciseWrite:
		return newSpellingEngine(questionCount, items, rng)
	case models.ExerciseLecture:
		return newReadingEngine(questionCount, items, rng)
	default:
		return nil, fmt.Errorf("unknown exercise type %q", exerciseType)
	}
}
