package holdem

import (
	"handhistory-server/pkg/action"
	"handhistory-server/pkg/deck"
)

// SeatView is what the presentation layer shows for one seat
type SeatView struct {
	Seat       int       `json:"seat"`
	Name       string    `json:"name"`
	Stack      int       `json:"stack"`
	Cards      deck.Hand `json:"cards"`
	IsActive   bool      `json:"isActive"`
	IsDealer   bool      `json:"isDealer"`
	IsSB       bool      `json:"isSB"`
	IsBB       bool      `json:"isBB"`
	Bet        int       `json:"bet"`
	LastAction string    `json:"lastAction"`
	Folded     bool      `json:"folded"`
}

// View is a read-only projection of the hand for rendering
type View struct {
	Active         bool            `json:"isHandActive"`
	Street         Street          `json:"currentStreet"`
	Seats          []SeatView      `json:"players"`
	Community      deck.Hand       `json:"communityCards"`
	Pot            int             `json:"pot"`
	CurrentPlayer  int             `json:"currentPlayer"`
	CurrentBet     int             `json:"currentBet"`
	ActionSequence string          `json:"actionSequence"`
	Disabled       []action.Action `json:"disabledActions"`
}

// View projects the state for the given seat names.
// Hole cards are only shown while the hand is active.
func (h *HandState) View(names []string) *View {
	seats := make([]SeatView, SeatCount)
	for i := range seats {
		cards := deck.Hand{}
		if h.Active {
			cards = append(cards, h.HoleCards[i]...)
		}

		seats[i] = SeatView{
			Seat:       i,
			Name:       seatName(names, i),
			Stack:      h.Stacks[i],
			Cards:      cards,
			IsActive:   h.Active && i == h.Acting,
			IsDealer:   i == h.Dealer,
			IsSB:       i == h.SmallBlindSeat(),
			IsBB:       i == h.BigBlindSeat(),
			Bet:        h.Bets[i],
			LastAction: h.LastActions[i],
			Folded:     h.Folded[i],
		}
	}

	return &View{
		Active:         h.Active,
		Street:         h.Street,
		Seats:          seats,
		Community:      append(deck.Hand{}, h.Community...),
		Pot:            h.Pot,
		CurrentPlayer:  h.Acting,
		CurrentBet:     h.CurrentBet,
		ActionSequence: h.ActionSequence,
		Disabled:       append([]action.Action{}, h.Disabled...),
	}
}
