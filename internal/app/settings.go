package app

import (
	"strconv"
	"strings"
	"time"

	"quiz-trainer/internal/domain"
)

// ResolveSettings validates raw settings input against the pool size. An invalid
// custom count falls back to the whole pool; an invalid time limit means untimed.
func ResolveSettings(poolSize int, in domain.SettingsInput) domain.Settings {
	var settings domain.Settings
	if !in.UseAll {
		if n, err := strconv.Atoi(strings.TrimSpace(in.Count)); err == nil && n > 0 && n <= poolSize {
			settings.QuestionCount = n
		}
	}
	if minutes, err := strconv.Atoi(strings.TrimSpace(in.TimeLimitMinutes)); err == nil && minutes > 0 {
		settings.TimeLimit = time.Duration(minutes) * time.Minute
	}
	return settings
}
