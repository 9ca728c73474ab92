package holdem

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// advance moves the turn pointer after an action and ends the round, street or hand when due
func (e *Engine) advance(result *Result) error {
	if e.options.RoundCompletion == CompletionAllMatched {
		return e.advanceAllMatched(result)
	}

	return e.advanceDealerWrap(result)
}

// advanceDealerWrap treats the round as over when the next seat is the dealer.
// It does not look at who has matched the bet, and folded seats keep their turns.
func (e *Engine) advanceDealerWrap(result *Result) error {
	h := &e.state
	next := seatAfter(h.Acting, 1)
	if next != h.Dealer {
		h.Acting = next
		e.updateDisabled()
		return nil
	}

	if h.Street == StreetRiver {
		e.complete(result)
		return nil
	}

	h.Acting = next
	if err := e.nextStreet(result); err != nil {
		return err
	}

	e.updateDisabled()
	return nil
}

func (e *Engine) advanceAllMatched(result *Result) error {
	h := &e.state
	if e.liveCount() == 1 {
		e.complete(result)
		return nil
	}

	if !e.roundComplete() {
		h.Acting = e.nextToAct(h.Acting)
		e.updateDisabled()
		return nil
	}

	for {
		if h.Street == StreetRiver {
			e.complete(result)
			return nil
		}

		if err := e.nextStreet(result); err != nil {
			return err
		}

		if e.actionableCount() >= 2 {
			h.Acting = e.nextToAct(h.Dealer)
			e.updateDisabled()
			return nil
		}

		// nobody is left to bet against; run out the board
	}
}

// canAct is true for seats that have neither folded nor gone all-in
func (e *Engine) canAct(seat int) bool {
	return !e.state.Folded[seat] && !e.state.AllIn[seat]
}

func (e *Engine) liveCount() int {
	n := 0
	for _, folded := range e.state.Folded {
		if !folded {
			n++
		}
	}

	return n
}

func (e *Engine) actionableCount() int {
	n := 0
	for seat := 0; seat < SeatCount; seat++ {
		if e.canAct(seat) {
			n++
		}
	}

	return n
}

// roundComplete is true once every seat that can act has acted and matched the bet
func (e *Engine) roundComplete() bool {
	h := &e.state
	for seat := 0; seat < SeatCount; seat++ {
		if !e.canAct(seat) {
			continue
		}

		if !h.acted[seat] || h.Bets[seat] != h.CurrentBet {
			return false
		}
	}

	return true
}

// nextToAct returns the first seat after from that can act, or from if there is none
func (e *Engine) nextToAct(from int) int {
	for i := 1; i <= SeatCount; i++ {
		seat := seatAfter(from, i)
		if e.canAct(seat) {
			return seat
		}
	}

	return from
}

// nextStreet deals the next street's community cards and resets the bets
func (e *Engine) nextStreet(result *Result) error {
	h := &e.state
	h.Street++

	cards, err := e.allocator.DrawN(h.Street.cardsToDeal(), h.dealt())
	if err != nil {
		return err
	}

	h.Community = append(h.Community, cards...)
	h.resetBets()
	h.ActionSequence += fmt.Sprintf(" / %s: [%s]", h.Street.Title(), cards.String())

	e.logger.WithFields(logrus.Fields{
		"street": h.Street.String(),
		"cards":  cards.String(),
	}).Debug("dealt street")

	result.add(Event{Type: EventStreetDealt, Street: h.Street, Cards: cards})
	return nil
}

// complete ends the hand
func (e *Engine) complete(result *Result) {
	h := &e.state
	h.Active = false
	e.updateDisabled()
	result.Completed = true
	result.add(Event{Type: EventHandComplete, Street: h.Street})

	e.logger.WithFields(logrus.Fields{
		"hand":     e.hands,
		"pot":      h.Pot,
		"sequence": h.ActionSequence,
	}).Info("hand complete")
}
