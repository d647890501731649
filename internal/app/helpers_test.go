package app_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	"quiz-trainer/internal/app"
	"quiz-trainer/internal/domain"
)

type recordingView struct {
	mu        sync.Mutex
	stages    []app.Stage
	busy      []bool
	alerts    []string
	settings  []int
	questions []app.QuestionView
	progress  []app.ProgressView
	timers    []app.TimerView
	results   []app.ResultsView
	resultsCh chan app.ResultsView
}

func newRecordingView() *recordingView {
	return &recordingView{resultsCh: make(chan app.ResultsView, 4)}
}

func (v *recordingView) ShowStage(stage app.Stage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stages = append(v.stages, stage)
}

func (v *recordingView) ShowBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busy = append(v.busy, busy)
}

func (v *recordingView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

func (v *recordingView) ShowSettings(poolSize int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.settings = append(v.settings, poolSize)
}

func (v *recordingView) RenderQuestion(q app.QuestionView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.questions = append(v.questions, q)
}

func (v *recordingView) RenderProgress(p app.ProgressView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress = append(v.progress, p)
}

func (v *recordingView) RenderTimer(t app.TimerView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.timers = append(v.timers, t)
}

func (v *recordingView) RenderResults(r app.ResultsView) {
	v.mu.Lock()
	v.results = append(v.results, r)
	v.mu.Unlock()
	v.resultsCh <- r
}

func (v *recordingView) lastQuestion() app.QuestionView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.questions[len(v.questions)-1]
}

func (v *recordingView) events() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.stages) + len(v.busy) + len(v.alerts) + len(v.settings) +
		len(v.questions) + len(v.progress) + len(v.timers) + len(v.results)
}

type stubUploader struct {
	mu        sync.Mutex
	questions []domain.Question
	err       error
	calls     int
	gate      chan struct{}
}

func (u *stubUploader) Upload(ctx context.Context, _ string, _ []byte) ([]domain.Question, error) {
	u.mu.Lock()
	u.calls++
	gate := u.gate
	u.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return u.questions, u.err
}

func (u *stubUploader) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *manualTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type tickerFactory struct {
	mu      sync.Mutex
	tickers []*manualTicker
}

func (f *tickerFactory) New(time.Duration) app.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &manualTicker{ch: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *tickerFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func (f *tickerFactory) last() *manualTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickers[len(f.tickers)-1]
}

// samplePool builds n questions, each with option "1" correct and "2", "3" wrong.
func samplePool(n int) []domain.Question {
	pool := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		id := strconv.Itoa(i)
		pool = append(pool, domain.Question{
			ID:   domain.ID(id),
			Text: "Question " + id,
			Options: []domain.Option{
				{ID: "1", Text: "right " + id, Correct: true},
				{ID: "2", Text: "wrong " + id},
				{ID: "3", Text: "other " + id},
			},
		})
	}
	return pool
}

func wrongOption(q domain.Question) domain.ID {
	for _, opt := range q.Options {
		if !opt.Correct {
			return opt.ID
		}
	}
	return ""
}

func rightOption(q domain.Question) domain.ID {
	opt, _ := q.CorrectOption()
	return opt.ID
}
