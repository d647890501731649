package app

import (
	"math/rand"

	"quiz-trainer/internal/domain"
)

// Session is one run over a shuffled, possibly truncated copy of the pool.
type Session struct {
	questions []domain.Question
	answers   map[domain.ID]domain.Answer
	index     int
	settings  domain.Settings
	mistakes  bool
}

func newSession(rnd *rand.Rand, pool []domain.Question, settings domain.Settings, mistakes bool) *Session {
	return &Session{
		questions: selectQuestions(rnd, pool, settings.QuestionCount),
		answers:   make(map[domain.ID]domain.Answer),
		settings:  settings,
		mistakes:  mistakes,
	}
}

func (s *Session) current() domain.Question {
	return s.questions[s.index]
}

func (s *Session) find(questionID domain.ID) (domain.Question, bool) {
	for _, q := range s.questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return domain.Question{}, false
}

// record stores the first answer for a question; later answers are ignored.
func (s *Session) record(questionID, optionID domain.ID) bool {
	if _, answered := s.answers[questionID]; answered {
		return false
	}
	q, ok := s.find(questionID)
	if !ok {
		return false
	}
	opt, ok := q.Option(optionID)
	if !ok {
		return false
	}
	s.answers[questionID] = domain.Answer{OptionID: opt.ID, Correct: opt.Correct}
	return true
}

// move shifts the index by delta, clamped to the question range.
func (s *Session) move(delta int) {
	next := s.index + delta
	if next < 0 {
		next = 0
	}
	if next > len(s.questions)-1 {
		next = len(s.questions) - 1
	}
	s.index = next
}

// wrongOrUnanswered returns the questions a mistake-retry run should cover.
func (s *Session) wrongOrUnanswered() []domain.Question {
	var out []domain.Question
	for _, q := range s.questions {
		if ans, ok := s.answers[q.ID]; !ok || !ans.Correct {
			out = append(out, q)
		}
	}
	return out
}

func (s *Session) summary() domain.Summary {
	return Summarize(s.questions, s.answers)
}

func (s *Session) progress() ProgressView {
	answered := 0
	for _, q := range s.questions {
		if _, ok := s.answers[q.ID]; ok {
			answered++
		}
	}
	p := ProgressView{Answered: answered, Total: len(s.questions)}
	if p.Total > 0 {
		p.Percent = answered * 100 / p.Total
	}
	return p
}

// questionView renders the current question. Feedback marks are keyed by option id only.
func (s *Session) questionView() QuestionView {
	q := s.current()
	last := s.index == len(s.questions)-1
	view := QuestionView{
		QuestionID: q.ID,
		Number:     s.index + 1,
		Total:      len(s.questions),
		Text:       q.Text,
		Options:    make([]OptionView, 0, len(q.Options)),
		CanPrev:    s.index > 0,
		ShowNext:   !last,
		ShowFinish: last,
		Mistakes:   s.mistakes,
	}

	ans, answered := s.answers[q.ID]
	view.Answered = answered
	for _, opt := range q.Options {
		ov := OptionView{ID: opt.ID, Text: opt.Text}
		if answered {
			ov.Disabled = true
			switch {
			case opt.ID == ans.OptionID:
				ov.Selected = true
				if ans.Correct {
					ov.Mark = MarkCorrect
				} else {
					ov.Mark = MarkIncorrect
				}
			case !ans.Correct && opt.Correct:
				ov.Mark = MarkCorrect
			}
		}
		view.Options = append(view.Options, ov)
	}
	return view
}
