package exercise

import (
	"math/rand"
	"strings"

	"screenclash/internal/models"
)

// readingEngine shows texts to read aloud. There is no correctness
// check; each submission is the done signal for the current text,
// carrying the reading duration and an optional recording reference.
// Unlike the scored games, reading has no fallback content.
type readingEngine struct {
	texts           []models.LectureContent
	index           int
	target          int
	durationSeconds int
	audioURL        string
}

func newReadingEngine(questionCount int, items []models.LibraryItem, rng *rand.Rand) (*readingEngine, error) {
	pool := decodePool[models.LectureContent](items)
	if len(pool) == 0 {
		return nil, ErrNoContent
	}
	texts := drawFromPool(rng, pool, questionCount)

	return &readingEngine{
		texts:  texts,
		target: questionCount,
	}, nil
}

func (e *readingEngine) Type() models.ExerciseType {
	return models.ExerciseLecture
}

func (e *readingEngine) Prompt() *Prompt {
	if e.Complete() {
		return nil
	}
	return &Prompt{Lecture: &LecturePrompt{Text: e.texts[e.index].Text}}
}

func (e *readingEngine) Submit(answer Answer) (*Feedback, error) {
	if e.Complete() {
		return nil, ErrRunComplete
	}

	e.durationSeconds += answer.DurationSeconds
	if answer.AudioURL != "" {
		e.audioURL = answer.AudioURL
	}
	e.index++

	return &Feedback{
		Correct:     true,
		RunComplete: e.Complete(),
		Next:        e.Prompt(),
	}, nil
}

func (e *readingEngine) Complete() bool {
	return e.index >= e.target
}

func (e *readingEngine) Record(childName string) *models.HistoryRecord {
	var read []string
	for i := 0; i < e.index && i < len(e.texts); i++ {
		read = append(read, e.texts[i].Text)
	}

	details := models.HistoryDetails{
		TextRead:        models.StringPtr(strings.Join(read, "\n\n")),
		DurationSeconds: models.IntPtr(e.durationSeconds),
	}
	if e.audioURL != "" {
		details.AudioURL = models.StringPtr(e.audioURL)
	}

	return &models.HistoryRecord{
		GameType:  models.ExerciseLecture,
		ChildName: childName,
		Details:   details,
	}
}
