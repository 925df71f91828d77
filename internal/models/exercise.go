package models

import (
	"encoding/json"
	"time"
)

// MathContent is a two-operand multiplication prompt
type MathContent struct {
	Num1 int `json:"num1"`
	Num2 int `json:"num2"`
}

// QuizContent is a multiple-choice question with one correct answer
type QuizContent struct {
	Text          string   `json:"text"`
	CorrectAnswer string   `json:"correctAnswer"`
	WrongAnswers  []string `json:"wrongAnswers"`
}

// WriteContent is a misspelled word to be corrected
type WriteContent struct {
	Correct string `json:"correct"`
	Wrong   string `json:"wrong"`
}

// LectureContent is a text to read aloud
type LectureContent struct {
	Text string `json:"text"`
}

// LibraryItem is one row of the exercise content library. Content holds
// the variant-specific payload for Type; Recipient scopes the item to a
// single profile.
type LibraryItem struct {
	ID        int64           `json:"id"`
	Type      ExerciseType    `json:"type"`
	Recipient string          `json:"destinataire"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}
