package app

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"quiz-trainer/internal/domain"
)

// Uploader turns an uploaded file into the question pool. Implemented by the
// HTTP client (remote endpoint) and the ingest service (in-process).
type Uploader interface {
	Upload(ctx context.Context, filename string, content []byte) ([]domain.Question, error)
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithRand fixes the shuffle source, mostly for tests.
func WithRand(rnd *rand.Rand) ControllerOption {
	return func(c *Controller) { c.rnd = rnd }
}

// WithTicker replaces the one-second countdown ticker.
func WithTicker(fn TickerFunc) ControllerOption {
	return func(c *Controller) { c.newTicker = fn }
}

// WithMessages overrides alert texts; blank fields keep their defaults.
func WithMessages(m Messages) ControllerOption {
	return func(c *Controller) { c.messages = m.merge(DefaultMessages()) }
}

// Controller owns the state of one trainer: the uploaded pool, the running
// session and its countdown. All transitions go through its methods.
type Controller struct {
	view      View
	uploader  Uploader
	rnd       *rand.Rand
	newTicker TickerFunc
	messages  Messages

	mu        sync.Mutex
	stage     Stage
	uploading bool
	pool      []domain.Question
	session   *Session
	countdown *countdown
}

func NewController(view View, uploader Uploader, opts ...ControllerOption) *Controller {
	c := &Controller{
		view:      view,
		uploader:  uploader,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		newTicker: NewTicker,
		messages:  DefaultMessages(),
		stage:     StageUpload,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Upload sends the file to the uploader and, on success, stores the pool and
// moves to the settings stage. Failures are alerted and leave state untouched.
func (c *Controller) Upload(ctx context.Context, filename string, content []byte) error {
	c.mu.Lock()
	if c.uploading || c.stage != StageUpload {
		c.mu.Unlock()
		return nil
	}
	if filename == "" || len(content) == 0 {
		c.view.Alert(c.messages.NoFile)
		c.mu.Unlock()
		return domain.ErrNoFile
	}
	c.uploading = true
	c.view.ShowBusy(true)
	c.mu.Unlock()

	questions, err := c.uploader.Upload(ctx, filename, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploading = false
	c.view.ShowBusy(false)
	if err != nil {
		c.view.Alert(c.uploadFailure(err))
		return err
	}
	if len(questions) == 0 {
		c.view.Alert(c.messages.EmptyPool)
		return domain.ErrEmptyPool
	}
	if c.stage != StageUpload {
		return nil
	}

	c.pool = questions
	c.stage = StageSettings
	c.view.ShowStage(StageSettings)
	c.view.ShowSettings(len(c.pool))
	return nil
}

func (c *Controller) uploadFailure(err error) string {
	var uerr *domain.UploadError
	if errors.As(err, &uerr) && uerr.Detail != "" {
		return uerr.Detail
	}
	return c.messages.UploadFailed
}

// Start builds a session from the pool using the given settings input.
func (c *Controller) Start(in domain.SettingsInput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage != StageSettings && c.stage != StageResults {
		return
	}
	if len(c.pool) == 0 {
		return
	}
	c.beginLocked(c.pool, ResolveSettings(len(c.pool), in), false)
}

func (c *Controller) beginLocked(pool []domain.Question, settings domain.Settings, mistakes bool) {
	c.stopCountdownLocked()
	c.session = newSession(c.rnd, pool, settings, mistakes)
	c.stage = StageQuiz
	c.view.ShowStage(StageQuiz)
	c.renderLocked()

	if settings.Timed() {
		cd := newCountdown(int(settings.TimeLimit/time.Second), c.newTicker)
		c.countdown = cd
		c.view.RenderTimer(cd.view())
		go cd.run(func() { c.tick(cd) })
	}
}

func (c *Controller) renderLocked() {
	c.view.RenderProgress(c.session.progress())
	c.view.RenderQuestion(c.session.questionView())
}

// Select records the first answer for a question and shows feedback right away.
// It reports whether an answer was recorded.
func (c *Controller) Select(questionID, optionID domain.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage != StageQuiz {
		return false
	}
	if !c.session.record(questionID, optionID) {
		return false
	}
	c.renderLocked()
	return true
}

// Next moves to the following question, staying on the last one.
func (c *Controller) Next() {
	c.navigate(1)
}

// Prev moves to the previous question, staying on the first one.
func (c *Controller) Prev() {
	c.navigate(-1)
}

func (c *Controller) navigate(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage != StageQuiz {
		return
	}
	c.session.move(delta)
	c.renderLocked()
}

// Finish ends the running session and shows the results. Calling it again,
// or after the timer already expired, does nothing.
func (c *Controller) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finishLocked()
}

func (c *Controller) finishLocked() {
	if c.stage != StageQuiz {
		return
	}
	c.stopCountdownLocked()
	c.stage = StageResults

	summary := c.session.summary()
	c.view.ShowStage(StageResults)
	c.view.RenderResults(ResultsView{
		Summary:          summary,
		CanRetryMistakes: summary.Correct < summary.Total,
		Mistakes:         c.session.mistakes,
	})
}

func (c *Controller) tick(cd *countdown) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.countdown != cd || c.stage != StageQuiz {
		return
	}
	if cd.remaining > 0 {
		cd.remaining--
	}
	c.view.RenderTimer(cd.view())
	if cd.remaining == 0 {
		c.finishLocked()
	}
}

func (c *Controller) stopCountdownLocked() {
	if c.countdown == nil {
		return
	}
	c.countdown.stop()
	c.countdown = nil
}

// RetryMistakes starts an untimed session over the questions of the finished
// session that were answered wrong or not at all. It reports whether a session
// was started; with no mistakes it leaves everything as is.
func (c *Controller) RetryMistakes() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stage != StageResults || c.session == nil {
		return false
	}
	mistakes := c.session.wrongOrUnanswered()
	if len(mistakes) == 0 {
		return false
	}
	c.beginLocked(mistakes, domain.Settings{}, true)
	return true
}

// Restart drops the pool and any session and returns to the upload stage.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopCountdownLocked()
	c.pool = nil
	c.session = nil
	c.stage = StageUpload
	c.view.ShowStage(StageUpload)
}

// Close stops the countdown without touching the view.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopCountdownLocked()
}

// State is a read-only snapshot of the controller.
type State struct {
	Stage     Stage
	PoolSize  int
	Index     int
	Questions []domain.Question
	Answers   map[domain.ID]domain.Answer
	Settings  domain.Settings
	Mistakes  bool
	Timed     bool
	Remaining int
	Summary   domain.Summary
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{Stage: c.stage, PoolSize: len(c.pool)}
	if c.session != nil {
		st.Index = c.session.index
		st.Questions = make([]domain.Question, len(c.session.questions))
		copy(st.Questions, c.session.questions)
		st.Answers = make(map[domain.ID]domain.Answer, len(c.session.answers))
		for id, ans := range c.session.answers {
			st.Answers[id] = ans
		}
		st.Settings = c.session.settings
		st.Mistakes = c.session.mistakes
		st.Summary = c.session.summary()
	}
	if c.countdown != nil {
		st.Timed = true
		st.Remaining = c.countdown.remaining
	}
	return st
}
