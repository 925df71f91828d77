package exercise

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"screenclash/internal/models"
)

// arithmeticEngine runs a multiplication drill. A wrong answer keeps
// the run on the same problem; only correct answers advance it.
type arithmeticEngine struct {
	problems  []models.MathContent
	index     int
	target    int
	successes int
	mistakes  int
	summary   []string
}

func newArithmeticEngine(questionCount int, items []models.LibraryItem, rng *rand.Rand) (*arithmeticEngine, error) {
	pool := decodePool[models.MathContent](items)
	problems := drawFromPool(rng, pool, questionCount)

	// No configured problems: fall back to random times tables
	if len(problems) == 0 {
		problems = make([]models.MathContent, questionCount)
		for i := range problems {
			problems[i] = models.MathContent{
				Num1: 2 + rng.Intn(8),
				Num2: 2 + rng.Intn(8),
			}
		}
	}

	return &arithmeticEngine{
		problems: problems,
		target:   questionCount,
	}, nil
}

func (e *arithmeticEngine) Type() models.ExerciseType {
	return models.ExerciseMath
}

func (e *arithmeticEngine) Prompt() *Prompt {
	if e.Complete() {
		return nil
	}
	p := e.problems[e.index]
	return &Prompt{Math: &MathPrompt{Num1: p.Num1, Num2: p.Num2}}
}

func (e *arithmeticEngine) Submit(answer Answer) (*Feedback, error) {
	if e.Complete() {
		return nil, ErrRunComplete
	}

	p := e.problems[e.index]
	n, err := strconv.Atoi(strings.TrimSpace(answer.Text))
	correct := err == nil && n == p.Num1*p.Num2

	if correct {
		e.summary = append(e.summary, fmt.Sprintf("%d x %d = %d", p.Num1, p.Num2, p.Num1*p.Num2))
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

func (e *arithmeticEngine) Complete() bool {
	return e.successes >= e.target
}

func (e *arithmeticEngine) Record(childName string) *models.HistoryRecord {
	return &models.HistoryRecord{
		GameType:  models.ExerciseMath,
		ChildName: childName,
		Details: models.HistoryDetails{
			Score:           models.IntPtr(e.successes),
			TotalQuestions:  models.IntPtr(e.target),
			Mistakes:        models.IntPtr(e.mistakes),
			ExerciseSummary: models.StringPtr(strings.Join(e.summary, "\n")),
		},
	}
}
