package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"quiz-trainer/internal/app"
	"quiz-trainer/internal/domain"
)

type poolUploader struct {
	questions []domain.Question
	err       error
}

func (p poolUploader) Upload(context.Context, string, []byte) ([]domain.Question, error) {
	return p.questions, p.err
}

func pool() []domain.Question {
	return []domain.Question{
		{ID: "1", Text: "Q1", Options: []domain.Option{{ID: "1", Text: "yes", Correct: true}, {ID: "2", Text: "no"}}},
		{ID: "2", Text: "Q2", Options: []domain.Option{{ID: "1", Text: "yes", Correct: true}, {ID: "2", Text: "no"}}},
		{ID: "3", Text: "Q3", Options: []domain.Option{{ID: "1", Text: "yes", Correct: true}, {ID: "2", Text: "no"}}},
	}
}

func TestRunScriptedQuiz(t *testing.T) {
	var out bytes.Buffer
	view := NewView(&out)
	c := app.NewController(view, poolUploader{questions: pool()})

	script := "s 2\n1\n1\nn\nf\nm\nq\n"
	if err := Run(context.Background(), c, view, strings.NewReader(script), "q.txt", []byte("x")); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "3 questions loaded") {
		t.Fatalf("expected settings prompt, got:\n%s", text)
	}
	if !strings.Contains(text, "Question 1/2") || !strings.Contains(text, "Question 2/2") {
		t.Fatalf("expected two questions, got:\n%s", text)
	}
	if !strings.Contains(text, "Total: 2") {
		t.Fatalf("expected results for two questions, got:\n%s", text)
	}
	// Q2 was never answered, so m always opens a mistakes session.
	if st := c.State(); st.Stage != app.StageQuiz || !st.Mistakes {
		t.Fatalf("expected mistakes session, got %+v", st)
	}
}

func TestRunReportsUploadFailure(t *testing.T) {
	var out bytes.Buffer
	view := NewView(&out)
	c := app.NewController(view, poolUploader{err: errors.New("boom")})

	err := Run(context.Background(), c, view, strings.NewReader("q\n"), "q.txt", []byte("x"))
	if err == nil {
		t.Fatalf("expected upload error")
	}
	if !strings.Contains(out.String(), "! ") {
		t.Fatalf("expected an alert, got:\n%s", out.String())
	}
}

func TestSettingsInput(t *testing.T) {
	in := settingsInput(nil)
	if !in.UseAll {
		t.Fatalf("expected all questions by default")
	}
	in = settingsInput([]string{"5", "10"})
	if in.UseAll || in.Count != "5" || in.TimeLimitMinutes != "10" {
		t.Fatalf("unexpected input %+v", in)
	}
	in = settingsInput([]string{"all", "3"})
	if !in.UseAll || in.TimeLimitMinutes != "3" {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestUnknownOptionIsReported(t *testing.T) {
	var out bytes.Buffer
	view := NewView(&out)
	c := app.NewController(view, poolUploader{questions: pool()})

	if err := Run(context.Background(), c, view, strings.NewReader("s\n9\nq\n"), "q.txt", []byte("x")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "no option 9") {
		t.Fatalf("expected out-of-range message, got:\n%s", out.String())
	}
	if len(c.State().Answers) != 0 {
		t.Fatalf("expected no answers recorded")
	}
}
