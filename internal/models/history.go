package models

import "time"

// HistoryDetails carries the variant-specific outcome of a completed
// exercise run. Reading runs fill the first three fields; the scored
// games fill the rest.
type HistoryDetails struct {
	TextRead        *string `json:"text_read,omitempty"`
	AudioURL        *string `json:"audio_url,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
	Score           *int    `json:"score,omitempty"`
	TotalQuestions  *int    `json:"total_questions,omitempty"`
	Mistakes        *int    `json:"mistakes,omitempty"`
	ExerciseSummary *string `json:"exercise_summary,omitempty"`
}

// HistoryRecord is an immutable log entry of one completed exercise run.
// Records are written once by the engines and never mutated.
type HistoryRecord struct {
	ID        int64          `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	GameType  ExerciseType   `json:"game_type"`
	ChildName string         `json:"child_name"`
	Details   HistoryDetails `json:"details"`
}

// IntPtr is a convenience for populating optional detail fields
func IntPtr(n int) *int { return &n }

// StringPtr is a convenience for populating optional detail fields
func StringPtr(s string) *string { return &s }
