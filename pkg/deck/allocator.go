package deck

import (
	"errors"

	"handhistory-server/internal/rng"
)

// ErrDeckExhausted is returned when every card is already excluded
var ErrDeckExhausted = errors.New("every card has already been dealt")

// Allocator hands out cards that do not collide with cards already dealt.
// There is no physical deck: each draw samples a random rank and suit and
// rejects anything in the exclusion set.
type Allocator struct {
	rng rng.Generator
}

// NewAllocator returns an allocator backed by the generator
func NewAllocator(g rng.Generator) *Allocator {
	if g == nil {
		g = rng.Crypto{}
	}

	return &Allocator{rng: g}
}

// Draw returns a card that is not a member of excluding
func (a *Allocator) Draw(excluding CardSet) (Card, error) {
	if exhausted(excluding) {
		return "", ErrDeckExhausted
	}

	for {
		card := NewCard(Ranks[a.rng.Intn(len(Ranks))], Suits[a.rng.Intn(len(Suits))])
		if !excluding.Has(card) {
			return card, nil
		}
	}
}

// DrawN draws n cards. Each drawn card is added to excluding.
func (a *Allocator) DrawN(n int, excluding CardSet) (Hand, error) {
	if excluding == nil {
		excluding = make(CardSet)
	}

	cards := make(Hand, 0, n)
	for i := 0; i < n; i++ {
		card, err := a.Draw(excluding)
		if err != nil {
			return nil, err
		}

		excluding.Add(card)
		cards = append(cards, card)
	}

	return cards, nil
}

func exhausted(excluding CardSet) bool {
	if len(excluding) < len(Ranks)*len(Suits) {
		return false
	}

	for _, card := range All() {
		if !excluding.Has(card) {
			return false
		}
	}

	return true
}
