package app

import (
	"math/rand"

	"quiz-trainer/internal/domain"
)

// shuffle returns a Fisher-Yates permutation of items without touching the input.
func shuffle[T any](rnd *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// selectQuestions shuffles the pool, keeps count questions (0 keeps all) and
// shuffles the options of each kept question independently.
func selectQuestions(rnd *rand.Rand, pool []domain.Question, count int) []domain.Question {
	selected := shuffle(rnd, pool)
	if count > 0 && count < len(selected) {
		selected = selected[:count]
	}
	for i := range selected {
		selected[i].Options = shuffle(rnd, selected[i].Options)
	}
	return selected
}
