package terminal

import (
	"fmt"
	"io"
	"sync"

	"quiz-trainer/internal/app"
)

// View prints the trainer as plain text. The countdown renders from its own
// goroutine, so every write goes through mu.
type View struct {
	mu   sync.Mutex
	out  io.Writer
	last app.QuestionView
}

func NewView(out io.Writer) *View {
	return &View{out: out}
}

func (v *View) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}

func (v *View) ShowStage(stage app.Stage) {
	switch stage {
	case app.StageUpload:
		v.printf("== upload ==\n")
	case app.StageResults:
		v.printf("== results ==\n")
	}
}

func (v *View) ShowBusy(busy bool) {
	if busy {
		v.printf("uploading...\n")
	}
}

func (v *View) Alert(message string) {
	v.printf("! %s\n", message)
}

func (v *View) ShowSettings(poolSize int) {
	v.printf("%d questions loaded. Start with: s [count|all] [minutes]\n", poolSize)
}

func (v *View) RenderQuestion(q app.QuestionView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.last = q

	title := "Question"
	if q.Mistakes {
		title = "Mistake"
	}
	fmt.Fprintf(v.out, "\n%s %d/%d: %s\n", title, q.Number, q.Total, q.Text)
	for i, opt := range q.Options {
		selected := " "
		if opt.Selected {
			selected = "*"
		}
		fmt.Fprintf(v.out, " %s%d) %s%s\n", selected, i+1, opt.Text, markSuffix(opt.Mark))
	}

	var nav []string
	if q.CanPrev {
		nav = append(nav, "p=prev")
	}
	if q.ShowNext {
		nav = append(nav, "n=next")
	}
	if q.ShowFinish {
		nav = append(nav, "f=finish")
	}
	fmt.Fprintf(v.out, "%v\n", nav)
}

func markSuffix(m app.Mark) string {
	switch m {
	case app.MarkCorrect:
		return "  [correct]"
	case app.MarkIncorrect:
		return "  [wrong]"
	}
	return ""
}

func (v *View) RenderProgress(p app.ProgressView) {
	v.printf("answered %d/%d (%d%%)\n", p.Answered, p.Total, p.Percent)
}

// RenderTimer prints on whole minutes and every second of the last ten.
func (v *View) RenderTimer(t app.TimerView) {
	if t.Remaining%60 != 0 && t.Remaining > 10 {
		return
	}
	if t.Warning {
		v.printf("time left %s!\n", t.Display)
		return
	}
	v.printf("time left %s\n", t.Display)
}

func (v *View) RenderResults(r app.ResultsView) {
	v.printf("Correct: %d  Incorrect: %d  Total: %d  Score: %d%% (%s)\n",
		r.Correct, r.Incorrect, r.Total, r.Percentage, r.Tier)
	if r.CanRetryMistakes && !r.Mistakes {
		v.printf("m=retry mistakes  s=new quiz  r=restart  q=quit\n")
	} else if r.CanRetryMistakes {
		v.printf("m=retry mistakes again  s=new quiz  r=restart  q=quit\n")
	} else {
		v.printf("s=new quiz  r=restart  q=quit\n")
	}
}

// option returns the id of the n-th option (1-based) of the last rendered question.
func (v *View) option(n int) (app.QuestionView, int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n < 1 || n > len(v.last.Options) {
		return v.last, 0, false
	}
	return v.last, n - 1, true
}
