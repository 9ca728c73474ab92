package holdem

import (
	"handhistory-server/pkg/action"
	"handhistory-server/pkg/deck"
)

// HandState is the authoritative state of the current hand
// Only the engine mutates it; everything else works from a Snapshot()
type HandState struct {
	Active         bool                 `json:"isHandActive"`
	Street         Street               `json:"currentStreet"`
	Dealer         int                  `json:"dealerPosition"`
	Acting         int                  `json:"currentPlayer"`
	CurrentBet     int                  `json:"currentBet"`
	Bets           [SeatCount]int       `json:"playerBets"`
	Stacks         [SeatCount]int       `json:"playerStacks"`
	HoleCards      [SeatCount]deck.Hand `json:"playerCards"`
	Community      deck.Hand            `json:"communityCards"`
	Pot            int                  `json:"pot"`
	ActionSequence string               `json:"actionSequence"`
	Disabled       []action.Action      `json:"disabledActions"`
	LastActions    [SeatCount]string    `json:"lastActions"`

	Folded [SeatCount]bool `json:"folded"`
	AllIn  [SeatCount]bool `json:"allIn"`
	acted  [SeatCount]bool
}

// SmallBlindSeat returns the seat after the dealer
func (h *HandState) SmallBlindSeat() int {
	return seatAfter(h.Dealer, 1)
}

// BigBlindSeat returns the seat two after the dealer
func (h *HandState) BigBlindSeat() int {
	return seatAfter(h.Dealer, 2)
}

// Owed returns how many chips the seat needs to add to match the current bet
func (h *HandState) Owed(seat int) int {
	if owed := h.CurrentBet - h.Bets[seat]; owed > 0 {
		return owed
	}

	return 0
}

// IsDisabled returns true if the action is currently disabled for the acting seat
func (h *HandState) IsDisabled(a action.Action) bool {
	for _, d := range h.Disabled {
		if d == a {
			return true
		}
	}

	return false
}

// dealt returns every card dealt so far this hand
func (h *HandState) dealt() deck.CardSet {
	s := deck.NewCardSet(h.Community)
	for _, hole := range h.HoleCards {
		s.Add(hole...)
	}

	return s
}

// commit moves chips from a seat's stack into its bet and the pot
func (h *HandState) commit(seat, amount int) int {
	if amount > h.Stacks[seat] {
		amount = h.Stacks[seat]
	}

	if amount <= 0 {
		return 0
	}

	h.Stacks[seat] -= amount
	h.Bets[seat] += amount
	h.Pot += amount

	if h.Stacks[seat] == 0 {
		h.AllIn[seat] = true
	}

	return amount
}

func (h *HandState) appendToken(token string) {
	if h.ActionSequence == "" {
		h.ActionSequence = token
		return
	}

	h.ActionSequence += " " + token
}

func (h *HandState) resetBets() {
	h.CurrentBet = 0
	for i := range h.Bets {
		h.Bets[i] = 0
		h.acted[i] = false
	}
}

// clone returns a deep copy
func (h *HandState) clone() *HandState {
	cp := *h
	for i, hole := range h.HoleCards {
		cp.HoleCards[i] = append(deck.Hand(nil), hole...)
	}

	cp.Community = append(deck.Hand{}, h.Community...)
	cp.Disabled = append([]action.Action{}, h.Disabled...)
	return &cp
}

func seatAfter(seat, n int) int {
	return (seat + n) % SeatCount
}
