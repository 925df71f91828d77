package exercise

import (
	"math/rand"
	"strings"

	"screenclash/internal/models"
)

// spellingEngine shows a misspelled word and expects the corrected
// spelling. Comparison is case-insensitive; a wrong answer keeps the
// same word and the client clears the entry field.
type spellingEngine struct {
	words     []models.WriteContent
	index     int
	target    int
	successes int
	mistakes  int
	summary   []string
}

// fallbackSpellingWords is served when a profile has no spelling content
var fallbackSpellingWords = []models.WriteContent{
	{Correct: "MYTHOLOGIE", Wrong: "MITHOLOGIE"},
	{Correct: "AVENTURE", Wrong: "AVANTURE"},
	{Correct: "ANTIQUE", Wrong: "ANTIC"},
}

func newSpellingEngine(questionCount int, items []models.LibraryItem, rng *rand.Rand) (*spellingEngine, error) {
	pool := decodePool[models.WriteContent](items)
	if len(pool) == 0 {
		pool = fallbackSpellingWords
	}
	words := drawFromPool(rng, pool, questionCount)

	return &spellingEngine{
		words:  words,
		target: questionCount,
	}, nil
}

func (e *spellingEngine) Type() models.ExerciseType {
	return models.ExerciseWrite
}

func (e *spellingEngine) Prompt() *Prompt {
	if e.Complete() {
		return nil
	}
	return &Prompt{Write: &WritePrompt{Wrong: e.words[e.index].Wrong}}
}

func (e *spellingEngine) Submit(answer Answer) (*Feedback, error) {
	if e.Complete() {
		return nil, ErrRunComplete
	}

	w := e.words[e.index]
	correct := strings.EqualFold(strings.TrimSpace(answer.Text), w.Correct)

	if correct {
		e.summary = append(e.summary, w.Correct)
		e.successes++
		e.index++
	} else {
		e.mistakes++
	}

	return &Feedback{
		Correct:     correct,
		RunComplete: e.Complete(),
		Next:        e.Prompt(),
	}, nil
}

func (e *spellingEngine) Complete() bool {
	return e.successes >= e.target
}

func (e *spellingEngine) Record(childName string) *models.HistoryRecord {
	return &models.HistoryRecord{
		GameType:  models.ExerciseWrite,
		ChildName: childName,
		Details: models.HistoryDetails{
			Score:           models.IntPtr(e.successes),
			TotalQuestions:  models.IntPtr(e.target),
			Mistakes:        models.IntPtr(e.mistakes),
			ExerciseSummary: models.StringPtr(strings.Join(e.summary, "\n")),
		},
	}
}
