package session

import (
	"math/rand/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/wrongset"
)

// RoundSize is the number of questions drawn for a normal-mode round.
const RoundSize = 50

// RandSource supplies uniform random integers in [0, n).
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand returns a RandSource backed by the runtime's global generator.
func DefaultRand() RandSource {
	return globalRand{}
}

// Shuffle returns a uniformly random permutation of items (Fisher-Yates).
// items is not modified.
func Shuffle[T any](items []T, rng RandSource) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// PickRandom returns n questions drawn without replacement, in random
// order. When the source has n or fewer questions the whole source is
// returned shuffled.
func PickRandom(source []bank.Question, n int, rng RandSource) []bank.Question {
	if len(source) <= n {
		return Shuffle(source, rng)
	}

	indices := make([]int, len(source))
	for i := range indices {
		indices[i] = i
	}
	indices = Shuffle(indices, rng)[:n]

	picked := make([]bank.Question, 0, n)
	for _, idx := range indices {
		picked = append(picked, source[idx])
	}
	return picked
}

// SelectWorkingList builds the ordered question list for a round.
func SelectWorkingList(questions []bank.Question, mode Mode, wrong wrongset.Set, rng RandSource) []bank.Question {
	if mode == ModeReview {
		var missed []bank.Question
		for _, q := range questions {
			if wrong.Has(q.ID()) {
				missed = append(missed, q)
			}
		}
		if len(missed) == 0 {
			return nil
		}
		return Shuffle(missed, rng)
	}

	return PickRandom(questions, RoundSize, rng)
}
