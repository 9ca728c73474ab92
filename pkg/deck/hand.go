package deck

import "strings"

// Hand represents a collection of cards
type Hand []Card

// String returns the cards joined by commas, i.e. "Ah,Kd,2c"
func (h Hand) String() string {
	return h.Join(",")
}

// Join joins the card identifiers with sep
func (h Hand) Join(sep string) string {
	c := make([]string, len(h))
	for i, card := range h {
		c[i] = string(card)
	}

	return strings.Join(c, sep)
}

// Strings returns the card identifiers
func (h Hand) Strings() []string {
	c := make([]string, len(h))
	for i, card := range h {
		c[i] = string(card)
	}

	return c
}

// CardSet is a set of cards that may not be dealt again
type CardSet map[Card]struct{}

// NewCardSet returns a set containing every card in the hands
func NewCardSet(hands ...Hand) CardSet {
	s := make(CardSet)
	for _, h := range hands {
		s.Add(h...)
	}

	return s
}

// Add adds the cards to the set
func (s CardSet) Add(cards ...Card) {
	for _, c := range cards {
		s[c] = struct{}{}
	}
}

// Has returns true if the card is in the set
func (s CardSet) Has(card Card) bool {
	_, ok := s[card]
	return ok
}
