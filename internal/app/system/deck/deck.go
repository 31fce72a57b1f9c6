// Package deck implements the shared card-pool allocator.
//
// A room's deck is an ordered slice of cards in which drawn slots remain as
// tombstones. Drawing picks a uniform candidate index and, when it lands on a
// tombstone (or a slot already claimed earlier in the same batch), repairs the
// index by scanning forward with wraparound to the next live slot. A scan that
// comes all the way back around means the pool is exhausted; the draw then
// fulfills partially rather than failing. Tombstones are never compacted, so
// the slice length is stable for the life of a room.
package deck

import (
	"math/rand/v2"

	"github.com/dalemusser/memedeck/internal/domain/models"
)

// Rand supplies candidate indices. It matches *rand.Rand from math/rand/v2;
// tests inject a scripted sequence instead.
type Rand interface {
	IntN(n int) int
}

// NewRand returns the allocator's default randomness source. It delegates to
// the package-global generator, which is safe for concurrent requests.
func NewRand() Rand {
	return globalRand{}
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Draw removes up to k distinct cards from the pool and returns their text.
// Claimed indices accumulate for the whole batch before any tombstoning, so
// no slot can be handed out twice within one call. Fewer than k results means
// the deck ran out; that is the partial-fulfillment contract, not an error.
func Draw(cards []models.Card, k int, rng Rand) []string {
	if k <= 0 || len(cards) == 0 {
		return nil
	}

	claimed := make(map[int]bool, k)
	order := make([]int, 0, k)

	for n := 0; n < k; n++ {
		// A single-slot deck has exactly one valid index; IntN(0) would panic.
		start := 0
		if len(cards) > 1 {
			start = rng.IntN(len(cards))
		}

		idx := start
		found := false
		for {
			if !cards[idx].Drawn && !claimed[idx] {
				found = true
				break
			}
			idx = (idx + 1) % len(cards)
			if idx == start {
				break // full circle: nothing left to claim
			}
		}
		if !found {
			break
		}

		claimed[idx] = true
		order = append(order, idx)
	}

	out := make([]string, 0, len(order))
	for _, idx := range order {
		cards[idx].Drawn = true
		out = append(out, cards[idx].Text)
	}
	return out
}

// Remaining counts the live slots left in the pool.
func Remaining(cards []models.Card) int {
	n := 0
	for i := range cards {
		if !cards[i].Drawn {
			n++
		}
	}
	return n
}

// New builds a fresh pool from caption texts, all slots live.
func New(texts []string) []models.Card {
	cards := make([]models.Card, len(texts))
	for i, t := range texts {
		cards[i] = models.Card{Text: t}
	}
	return cards
}
