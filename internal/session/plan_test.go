package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/wrongset"
)

func ids(qs []bank.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID()
	}
	return out
}

func TestShuffle_DoesNotModifyInput(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	out := Shuffle(in, seededRand(1))

	assert.Equal(t, []int{1, 2, 3, 4, 5}, in)
	assert.ElementsMatch(t, in, out)
}

func TestShuffle_Deterministic(t *testing.T) {
	in := []int{1, 2, 3}
	assert.Equal(t, in, Shuffle(in, identityRand{}))

	// IntN always 0: i=2 swaps with 0, then i=1 swaps with 0.
	assert.Equal(t, []int{2, 3, 1}, Shuffle(in, zeroRand{}))
}

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func TestSelectWorkingList_NormalSmallBank(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"single", 1},
		{"small", 2},
		{"exact", RoundSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := makeBank(tt.size)
			got := SelectWorkingList(qs, ModeNormal, wrongset.New(), seededRand(42))

			if len(got) != tt.size {
				t.Errorf("len = %d, want %d", len(got), tt.size)
			}
			assert.ElementsMatch(t, ids(qs), ids(got))
		})
	}
}

func TestSelectWorkingList_NormalLargeBank(t *testing.T) {
	qs := makeBank(137)
	inBank := make(map[string]bool)
	for _, q := range qs {
		inBank[q.ID()] = true
	}

	for seed := uint64(0); seed < 20; seed++ {
		got := SelectWorkingList(qs, ModeNormal, wrongset.New(), seededRand(seed))
		require.Len(t, got, RoundSize)

		seen := make(map[string]bool)
		for _, q := range got {
			assert.True(t, inBank[q.ID()], "question %s not in bank", q.ID())
			assert.False(t, seen[q.ID()], "duplicate question %s", q.ID())
			seen[q.ID()] = true
		}
	}
}

func TestSelectWorkingList_ShuffleThenTruncate(t *testing.T) {
	qs := makeBank(60)

	got := SelectWorkingList(qs, ModeNormal, wrongset.New(), identityRand{})
	assert.Equal(t, ids(qs[:RoundSize]), ids(got))
}

func TestSelectWorkingList_NormalIgnoresWrongSet(t *testing.T) {
	qs := makeBank(3)
	got := SelectWorkingList(qs, ModeNormal, wrongset.New("2"), identityRand{})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestSelectWorkingList_Review(t *testing.T) {
	qs := makeBank(10)

	got := SelectWorkingList(qs, ModeReview, wrongset.New("3", "7", "missing"), seededRand(5))
	assert.ElementsMatch(t, []string{"3", "7"}, ids(got))

	got = SelectWorkingList(qs, ModeReview, wrongset.New(), seededRand(5))
	assert.Empty(t, got)
}

func TestSelectWorkingList_ReviewNotCapped(t *testing.T) {
	qs := makeBank(70)
	wrong := wrongset.New()
	for _, q := range qs {
		wrong.Add(q.ID())
	}

	got := SelectWorkingList(qs, ModeReview, wrong, seededRand(9))
	assert.Len(t, got, 70)
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct, answered, want int
	}{
		{0, 0, 0},
		{0, 1, 0},
		{1, 1, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{49, 50, 98},
	}

	for _, tt := range tests {
		if got := Accuracy(tt.correct, tt.answered); got != tt.want {
			t.Errorf("Accuracy(%d, %d) = %d, want %d", tt.correct, tt.answered, got, tt.want)
		}
	}
}
