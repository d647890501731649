package app

import (
	"fmt"

	"quiz-trainer/internal/domain"
)

// Stage is the visible section of the trainer.
type Stage string

const (
	StageUpload   Stage = "upload"
	StageSettings Stage = "settings"
	StageQuiz     Stage = "quiz"
	StageResults  Stage = "results"
)

// Mark is the feedback styling applied to an option once its question is answered.
type Mark string

const (
	MarkNone      Mark = ""
	MarkCorrect   Mark = "correct"
	MarkIncorrect Mark = "incorrect"
)

// OptionView is one rendered option.
type OptionView struct {
	ID       domain.ID `json:"id"`
	Text     string    `json:"text"`
	Disabled bool      `json:"disabled"`
	Selected bool      `json:"selected"`
	Mark     Mark      `json:"mark,omitempty"`
}

// QuestionView is everything needed to draw the current question and the navigation bar.
type QuestionView struct {
	QuestionID domain.ID    `json:"questionId"`
	Number     int          `json:"number"`
	Total      int          `json:"total"`
	Text       string       `json:"text"`
	Options    []OptionView `json:"options"`
	Answered   bool         `json:"answered"`
	CanPrev    bool         `json:"canPrev"`
	ShowNext   bool         `json:"showNext"`
	ShowFinish bool         `json:"showFinish"`
	Mistakes   bool         `json:"mistakes"`
}

// ProgressView feeds the progress text and bar.
type ProgressView struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

// TimerView feeds the countdown display.
type TimerView struct {
	Remaining int    `json:"remaining"`
	Display   string `json:"display"`
	Warning   bool   `json:"warning"`
}

// ResultsView feeds the score, stats and mistakes button.
type ResultsView struct {
	domain.Summary
	CanRetryMistakes bool `json:"canRetryMistakes"`
	Mistakes         bool `json:"mistakes"`
}

// View is the presentation side of the controller. Methods are called while the
// controller holds its lock, so implementations must not call back into it.
type View interface {
	ShowStage(stage Stage)
	ShowBusy(busy bool)
	Alert(message string)
	ShowSettings(poolSize int)
	RenderQuestion(q QuestionView)
	RenderProgress(p ProgressView)
	RenderTimer(t TimerView)
	RenderResults(r ResultsView)
}

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
