package exercise

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"screenclash/internal/models"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func mathItems(pairs ...[2]int) []models.LibraryItem {
	var items []models.LibraryItem
	for _, p := range pairs {
		content, _ := json.Marshal(models.MathContent{Num1: p[0], Num2: p[1]})
		items = append(items, models.LibraryItem{Type: models.ExerciseMath, Content: content})
	}
	return items
}

func TestArithmeticRunCompletesAfterTargetSuccesses(t *testing.T) {
	engine, err := New(models.ExerciseMath, 3, mathItems([2]int{7, 6}), testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 3; i++ {
		if engine.Complete() {
			t.Fatalf("run complete after %d successes, want 3", i)
		}
		p := engine.Prompt()
		if p == nil || p.Math == nil {
			t.Fatal("expected a math prompt")
		}
		answer := fmt.Sprintf("%d", p.Math.Num1*p.Math.Num2)
		fb, err := engine.Submit(Answer{Text: answer})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if !fb.Correct {
			t.Fatalf("correct product scored as wrong: %s", answer)
		}
	}

	if !engine.Complete() {
		t.Error("run should be complete after three successes")
	}
	if engine.Prompt() != nil {
		t.Error("complete run should have no prompt")
	}
	if _, err := engine.Submit(Answer{Text: "42"}); err != ErrRunComplete {
		t.Errorf("submit after completion = %v, want ErrRunComplete", err)
	}
}

func TestArithmeticWrongAnswerKeepsPromptAndCountsMistake(t *testing.T) {
	engine, err := New(models.ExerciseMath, 1, mathItems([2]int{7, 6}), testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before := engine.Prompt()
	fb, err := engine.Submit(Answer{Text: "41"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.Correct {
		t.Error("wrong product scored as correct")
	}
	after := engine.Prompt()
	if *after.Math != *before.Math {
		t.Error("wrong answer should keep the same problem")
	}

	// A second miss, then the correct answer
	if _, err := engine.Submit(Answer{Text: "x"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := engine.Submit(Answer{Text: "42"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rec := engine.Record("emma")
	if got := *rec.Details.Mistakes; got != 2 {
		t.Errorf("mistakes = %d, want 2", got)
	}
	if got := *rec.Details.Score; got != 1 {
		t.Errorf("score = %d, want 1", got)
	}
	if got := *rec.Details.ExerciseSummary; got != "7 x 6 = 42" {
		t.Errorf("summary = %q, want %q", got, "7 x 6 = 42")
	}
}

func TestArithmeticFallbackWhenPoolEmpty(t *testing.T) {
	engine, err := New(models.ExerciseMath, 5, nil, testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 5; i++ {
		p := engine.Prompt()
		if p == nil || p.Math == nil {
			t.Fatal("expected a fallback math prompt")
		}
		if p.Math.Num1 < 2 || p.Math.Num1 > 9 || p.Math.Num2 < 2 || p.Math.Num2 > 9 {
			t.Errorf("fallback operands out of range: %d x %d", p.Math.Num1, p.Math.Num2)
		}
		if _, err := engine.Submit(Answer{Text: fmt.Sprintf("%d", p.Math.Num1*p.Math.Num2)}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if !engine.Complete() {
		t.Error("fallback run should complete")
	}
}

func TestSmallPoolDrawsWithReplacement(t *testing.T) {
	// Two problems, five questions: the pool must be reused
	engine, err := New(models.ExerciseMath, 5, mathItems([2]int{2, 3}, [2]int{4, 5}), testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 5; i++ {
		p := engine.Prompt()
		product := p.Math.Num1 * p.Math.Num2
		if product != 6 && product != 20 {
			t.Fatalf("prompt %d x %d not drawn from pool", p.Math.Num1, p.Math.Num2)
		}
		if _, err := engine.Submit(Answer{Text: fmt.Sprintf("%d", product)}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if !engine.Complete() {
		t.Error("run should complete even with a pool smaller than the target")
	}
}

func TestQuizWrongAnswerReshufflesSameQuestion(t *testing.T) {
	content, _ := json.Marshal(models.QuizContent{
		Text:          "Qui est Zeus ?",
		CorrectAnswer: "Un dieu",
		WrongAnswers:  []string{"Un titan", "Un heros", "Un mortel"},
	})
	items := []models.LibraryItem{{Type: models.ExerciseQuiz, Content: content}}

	engine, err := New(models.ExerciseQuiz, 1, items, testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before := engine.Prompt()
	if before.Quiz.Text != "Qui est Zeus ?" {
		t.Fatalf("unexpected question %q", before.Quiz.Text)
	}
	if len(before.Quiz.Choices) != 4 {
		t.Fatalf("got %d choices, want 4", len(before.Quiz.Choices))
	}

	fb, err := engine.Submit(Answer{Text: "Un titan"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.Correct {
		t.Error("wrong choice scored as correct")
	}

	after := engine.Prompt()
	if after.Quiz.Text != before.Quiz.Text {
		t.Error("wrong answer should keep the same question")
	}
	found := false
	for _, c := range after.Quiz.Choices {
		if c == "Un dieu" {
			found = true
		}
	}
	if !found {
		t.Error("reshuffled choices must still contain the correct answer")
	}

	fb, err = engine.Submit(Answer{Text: "Un dieu"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !fb.Correct || !fb.RunComplete {
		t.Errorf("correct choice should finish the run: %+v", fb)
	}

	rec := engine.Record("emma")
	if *rec.Details.Mistakes != 1 || *rec.Details.Score != 1 {
		t.Errorf("record = score %d mistakes %d, want 1 and 1", *rec.Details.Score, *rec.Details.Mistakes)
	}
}

func TestQuizRecordNamesLastCorrectAnswer(t *testing.T) {
	first, _ := json.Marshal(models.QuizContent{
		Text:          "Qui est le roi des dieux ?",
		CorrectAnswer: "Zeus",
		WrongAnswers:  []string{"Hermes"},
	})
	second, _ := json.Marshal(models.QuizContent{
		Text:          "Qui est le dieu de la mer ?",
		CorrectAnswer: "Poseidon",
		WrongAnswers:  []string{"Apollon"},
	})
	items := []models.LibraryItem{
		{Type: models.ExerciseQuiz, Content: first},
		{Type: models.ExerciseQuiz, Content: second},
	}

	engine, err := New(models.ExerciseQuiz, 2, items, testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var last string
	for !engine.Complete() {
		p := engine.Prompt()
		var answer string
		switch p.Quiz.Text {
		case "Qui est le roi des dieux ?":
			answer = "Zeus"
		case "Qui est le dieu de la mer ?":
			answer = "Poseidon"
		default:
			t.Fatalf("unexpected question %q", p.Quiz.Text)
		}
		if _, err := engine.Submit(Answer{Text: answer}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		last = answer
	}

	rec := engine.Record("emma")
	if rec.Details.ExerciseSummary == nil {
		t.Fatal("quiz record should carry a summary")
	}
	want := "Mot : " + last
	if got := *rec.Details.ExerciseSummary; got != want {
		t.Errorf("summary = %q, want %q (the last correct answer)", got, want)
	}
}

func TestQuizFallbackWhenPoolEmpty(t *testing.T) {
	engine, err := New(models.ExerciseQuiz, 3, nil, testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := engine.Prompt()
	if p == nil || p.Quiz == nil || p.Quiz.Text == "" {
		t.Fatal("expected a fallback quiz prompt")
	}
}

func TestSpellingIsCaseInsensitive(t *testing.T) {
	content, _ := json.Marshal(models.WriteContent{Correct: "MYTHOLOGIE", Wrong: "MITHOLOGIE"})
	items := []models.LibraryItem{{Type: models.ExerciseWrite, Content: content}}

	engine, err := New(models.ExerciseWrite, 1, items, testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p := engine.Prompt()
	if p.Write.Wrong != "MITHOLOGIE" {
		t.Errorf("prompt shows %q, want the wrong spelling", p.Write.Wrong)
	}

	fb, err := engine.Submit(Answer{Text: "mythologie"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !fb.Correct {
		t.Error("lowercase spelling of the correct word should be accepted")
	}
	if !engine.Complete() {
		t.Error("run should be complete")
	}
}

func TestSpellingWrongAnswerKeepsWord(t *testing.T) {
	engine, err := New(models.ExerciseWrite, 2, nil, testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	before := engine.Prompt()
	fb, err := engine.Submit(Answer{Text: before.Write.Wrong})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fb.Correct {
		t.Error("submitting the misspelling should not be correct")
	}
	if engine.Prompt().Write.Wrong != before.Write.Wrong {
		t.Error("wrong answer should keep the same word")
	}
}

func TestReadingRequiresContent(t *testing.T) {
	if _, err := New(models.ExerciseLecture, 1, nil, testRand()); err != ErrNoContent {
		t.Errorf("New with empty pool = %v, want ErrNoContent", err)
	}
}

func TestReadingDoneSignalRecordsDurationAndAudio(t *testing.T) {
	content, _ := json.Marshal(models.LectureContent{Text: "Il etait une fois un petit dragon."})
	items := []models.LibraryItem{{Type: models.ExerciseLecture, Content: content}}

	engine, err := New(models.ExerciseLecture, 1, items, testRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p := engine.Prompt()
	if p.Lecture.Text == "" {
		t.Fatal("expected a reading prompt")
	}

	fb, err := engine.Submit(Answer{DurationSeconds: 45, AudioURL: "/static/recordings/reading_abc.m4a"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !fb.Correct || !fb.RunComplete {
		t.Errorf("done signal should finish the run: %+v", fb)
	}

	rec := engine.Record("emma")
	if rec.GameType != models.ExerciseLecture {
		t.Errorf("game type = %s, want lecture", rec.GameType)
	}
	if *rec.Details.DurationSeconds != 45 {
		t.Errorf("duration = %d, want 45", *rec.Details.DurationSeconds)
	}
	if *rec.Details.AudioURL != "/static/recordings/reading_abc.m4a" {
		t.Errorf("audio url = %q", *rec.Details.AudioURL)
	}
	if *rec.Details.TextRead != "Il etait une fois un petit dragon." {
		t.Errorf("text read = %q", *rec.Details.TextRead)
	}
	if rec.Details.Score != nil {
		t.Error("reading record should not carry a score")
	}
}

func TestNewRejectsUnknownType(t *testing.T) {
	if _, err := New("chess", 1, nil, testRand()); err == nil {
		t.Error("expected error for unknown exercise type")
	}
}

func TestDrawIndicesCoversPoolBeforeRepeating(t *testing.T) {
	rng := testRand()
	indices := drawIndices(rng, 3, 6)
	if len(indices) != 6 {
		t.Fatalf("got %d indices, want 6", len(indices))
	}

	// Each full pass is a permutation of the pool
	for pass := 0; pass < 2; pass++ {
		seen := make(map[int]bool)
		for _, i := range indices[pass*3 : pass*3+3] {
			seen[i] = true
		}
		if len(seen) != 3 {
			t.Errorf("pass %d is not a full permutation: %v", pass, indices)
		}
	}
}
