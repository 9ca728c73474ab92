package deck

import (
	"fmt"
	"strings"
)

// Ranks lists every valid rank character, lowest first
const Ranks = "23456789TJQKA"

// Suits lists every valid suit character
const Suits = "hdcs"

// Card is a two character identifier such as "Ah" or "Tc"
type Card string

// InvalidCardError is returned when card text does not use the rank/suit alphabets
type InvalidCardError struct {
	Card string
}

func (e *InvalidCardError) Error() string {
	return fmt.Sprintf("invalid card: %s", e.Card)
}

// NewCard returns the card for the rank and suit characters
func NewCard(rank, suit byte) Card {
	return Card([]byte{rank, suit})
}

// Rank returns the rank character
func (c Card) Rank() byte {
	if len(c) == 0 {
		return 0
	}

	return c[0]
}

// Suit returns the suit character
func (c Card) Suit() byte {
	if len(c) < 2 {
		return 0
	}

	return c[1]
}

// Valid returns true if the card is exactly a known rank followed by a known suit
func (c Card) Valid() bool {
	return len(c) == 2 &&
		strings.IndexByte(Ranks, c[0]) >= 0 &&
		strings.IndexByte(Suits, c[1]) >= 0
}

func (c Card) String() string {
	return string(c)
}

// ParseCard normalizes card text (rank uppercased, suit lowercased) and validates it
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return "", &InvalidCardError{Card: s}
	}

	card := Card(strings.ToUpper(s[0:1]) + strings.ToLower(s[1:2]))
	if !card.Valid() {
		return "", &InvalidCardError{Card: s}
	}

	return card, nil
}

// ParseCards parses a slice of card text, failing on the first invalid card
func ParseCards(s []string) (Hand, error) {
	cards := make(Hand, len(s))
	for i, text := range s {
		card, err := ParseCard(text)
		if err != nil {
			return nil, err
		}

		cards[i] = card
	}

	return cards, nil
}

// All returns all 52 cards, grouped by suit
func All() Hand {
	cards := make(Hand, 0, len(Ranks)*len(Suits))
	for i := 0; i < len(Suits); i++ {
		for j := 0; j < len(Ranks); j++ {
			cards = append(cards, NewCard(Ranks[j], Suits[i]))
		}
	}

	return cards
}
