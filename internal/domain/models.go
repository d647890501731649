package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ID identifies questions and options. The upload endpoint emits numeric ids,
// so both JSON numbers and strings are accepted.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits canonical integer ids as numbers to match the upload
// contract. Anything that would not read back identically, like "007" or "+5",
// stays a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(string(id)), nil
	}
	return json.Marshal(string(id))
}

// Option represents a possible answer for a question.
type Option struct {
	ID      ID     `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"isCorrect"`
}

// Question models an MCQ question; exactly one option is expected to be correct.
type Question struct {
	ID      ID       `json:"id"`
	Text    string   `json:"question"`
	Options []Option `json:"options"`
}

// CorrectOption returns the first option flagged correct.
func (q Question) CorrectOption() (Option, bool) {
	for _, opt := range q.Options {
		if opt.Correct {
			return opt, true
		}
	}
	return Option{}, false
}

// Option looks up an option by id.
func (q Question) Option(id ID) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Answer is the first (and only) recorded choice for a question.
type Answer struct {
	OptionID ID   `json:"optionId"`
	Correct  bool `json:"isCorrect"`
}

// Settings is the validated configuration of one quiz run.
type Settings struct {
	QuestionCount int           // 0 means all questions
	TimeLimit     time.Duration // 0 means untimed
}

// Timed reports whether the run has a countdown.
func (s Settings) Timed() bool {
	return s.TimeLimit > 0
}

// SettingsInput is the raw form input before validation.
type SettingsInput struct {
	UseAll           bool   `json:"useAll"`
	Count            string `json:"count"`
	TimeLimitMinutes string `json:"timeLimit"`
}

// Tier buckets a percentage for presentation.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Summary is the score of a finished session.
type Summary struct {
	Correct    int  `json:"correct"`
	Incorrect  int  `json:"incorrect"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Tier       Tier `json:"tier"`
}

// UploadResponse is the success body of POST /upload.
type UploadResponse struct {
	Questions []Question `json:"questions"`
}

// ErrorResponse is the failure body of POST /upload.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"`
}
