package app

import (
	"math"

	"quiz-trainer/internal/domain"
)

const (
	highTierMin   = 80
	mediumTierMin = 50
)

// Summarize scores a session. Unanswered questions count as incorrect.
func Summarize(questions []domain.Question, answers map[domain.ID]domain.Answer) domain.Summary {
	total := len(questions)
	correct := 0
	for _, q := range questions {
		if ans, ok := answers[q.ID]; ok && ans.Correct {
			correct++
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(correct) / float64(total)))
	}

	return domain.Summary{
		Correct:    correct,
		Incorrect:  total - correct,
		Total:      total,
		Percentage: percentage,
		Tier:       TierFor(percentage),
	}
}

func TierFor(percentage int) domain.Tier {
	switch {
	case percentage >= highTierMin:
		return domain.TierHigh
	case percentage >= mediumTierMin:
		return domain.TierMedium
	default:
		return domain.TierLow
	}
}
