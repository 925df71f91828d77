package exercise

import (
	"fmt"
	"math/rand"
	"strings"

	"screenclash/internal/models"
)

// quizEngine runs a multiple-choice quiz. A wrong answer keeps the same
// question but reshuffles its choices before it is shown again.
type quizEngine struct {
	questions   []models.QuizContent
	choices     []string
	rng         *rand.Rand
	index       int
	target      int
	successes   int
	mistakes    int
	lastCorrect string
}

// fallbackQuizQuestions is served when a profile has no quiz content
var fallbackQuizQuestions = []models.QuizContent{
	{
		Text:          "Dans la mythologie grecque, qui est le roi des dieux ?",
		CorrectAnswer: "Zeus",
		WrongAnswers:  []string{"Hermes", "Apollon"},
	},
	{
		Text:          "Comment appelle-t-on un long voyage plein de dangers ?",
		CorrectAnswer: "Une aventure",
		WrongAnswers:  []string{"Une sieste", "Une recette"},
	},
	{
		Text:          "Une cite antique est une ville de quelle epoque ?",
		CorrectAnswer: "Tres ancienne",
		WrongAnswers:  []string{"Moderne", "Imaginaire"},
	},
}

func newQuizEngine(questionCount int, items []models.LibraryItem, rng *rand.Rand) (*quizEngine, error) {
	pool := decodePool[models.QuizContent](items)
	if len(pool) == 0 {
		pool = fallbackQuizQuestions
	}
	questions := drawFromPool(rng, pool, questionCount)

	e := &quizEngine{
		questions: questions,
		rng:       rng,
		target:    questionCount,
	}
	e.shuffleChoices()
	return e, nil
}

// shuffleChoices rebuilds the choice list for the current question
func (e *quizEngine) shuffleChoices() {
	if e.Complete() {
		e.choices = nil
		return
	}
	q := e.questions[e.index]
	choices := append([]string{q.CorrectAnswer}, q.WrongAnswers...)
	e.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	e.choices = choices
}

func (e *quizEngine) Type() models.ExerciseType {
	return models.ExerciseQuiz
}

func (e *quizEngine) Prompt() *Prompt {
	if e.Complete() {
		return nil
	}
	return &Prompt{Quiz: &QuizPrompt{
		Text:    e.questions[e.index].Text,
		Choices: append([]string(nil), e.choices...),
	}}
}

func (e *quizEngine) Submit(answer Answer) (*Feedback, error) {
	if e.Complete() {
		return nil, ErrRunComplete
	}

	q := e.questions[e.index]
	correct := strings.TrimSpace(answer.Text) == q.CorrectAnswer

	if correct {
		e.lastCorrect = q.CorrectAnswer
		e.successes++
		e.index++
	} else {
		e.mistakes++
	}
	e.shuffleChoices()

	return &Feedback{
		Correct:     correct,
		RunComplete: e.Complete(),
		Next:        e.Prompt(),
	}, nil
}

func (e *quizEngine) Complete() bool {
	return e.successes >= e.target
}

func (e *quizEngine) Record(childName string) *models.HistoryRecord {
	return &models.HistoryRecord{
		GameType:  models.ExerciseQuiz,
		ChildName: childName,
		Details: models.HistoryDetails{
			Score:           models.IntPtr(e.successes),
			TotalQuestions:  models.IntPtr(e.target),
			Mistakes:        models.IntPtr(e.mistakes),
			ExerciseSummary: models.StringPtr(fmt.Sprintf("Mot : %s", e.lastCorrect)),
		},
	}
}
