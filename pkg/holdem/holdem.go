package holdem

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"handhistory-server/internal/rng"
	"handhistory-server/pkg/action"
	"handhistory-server/pkg/deck"
)

// ErrHandNotActive is returned when an action arrives while no hand is in progress.
// Callers treat it as a no-op.
var ErrHandNotActive = errors.New("no hand is in progress")

// ErrInvalidAmount is returned for a bet or raise the acting seat cannot make
var ErrInvalidAmount = errors.New("invalid amount")

// Intent is an action submitted for the acting seat.
// Amount is only meaningful for bet (chips added) and raise (new total bet).
type Intent struct {
	Action action.Action `json:"action"`
	Amount *int          `json:"amount,omitempty"`
}

// NewIntent returns an intent with an amount
func NewIntent(a action.Action, amount int) Intent {
	return Intent{Action: a, Amount: &amount}
}

// Engine runs hands of No-Limit Texas Hold'em at a single six-seat table.
// It is not safe for concurrent use; the owner must serialize calls.
type Engine struct {
	options   Options
	logger    logrus.FieldLogger
	allocator *deck.Allocator
	state     HandState
	hands     int
}

// NewEngine returns an idle engine. Every seat starts with opts.StartingStack.
func NewEngine(logger logrus.FieldLogger, g rng.Generator, opts Options) (*Engine, error) {
	if opts.RoundCompletion == "" {
		opts.RoundCompletion = CompletionAllMatched
	}

	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	e := &Engine{
		options:   opts,
		logger:    logger,
		allocator: deck.NewAllocator(g),
	}

	for i := range e.state.Stacks {
		e.state.Stacks[i] = opts.StartingStack
	}

	e.state.Disabled = append([]action.Action{}, action.All...)
	return e, nil
}

// Options returns the options the engine was created with
func (e *Engine) Options() Options {
	return e.options
}

// HandCount returns how many hands have been started
func (e *Engine) HandCount() int {
	return e.hands
}

// Snapshot returns a copy of the current hand state
func (e *Engine) Snapshot() *HandState {
	return e.state.clone()
}

// StartHand deals a new hand. A hand in progress is abandoned.
func (e *Engine) StartHand() (*Result, error) {
	if e.state.Active {
		e.logger.WithField("sequence", e.state.ActionSequence).Warn("abandoning hand in progress")
	}

	dealer := 0
	if e.hands > 0 {
		dealer = seatAfter(e.state.Dealer, 1)
	}

	next := HandState{
		Active:      true,
		Street:      StreetPreflop,
		Dealer:      dealer,
		Acting:      seatAfter(dealer, 3),
		Stacks:      e.state.Stacks,
		Community:   make(deck.Hand, 0, 5),
		LastActions: [SeatCount]string{},
	}

	dealt := make(deck.CardSet)
	for i := range next.HoleCards {
		cards, err := e.allocator.DrawN(2, dealt)
		if err != nil {
			return nil, err
		}

		next.HoleCards[i] = cards
	}

	sb, bb := next.SmallBlindSeat(), next.BigBlindSeat()
	sbPosted := next.commit(sb, e.options.SmallBlind)
	bbPosted := next.commit(bb, e.options.BigBlind)
	next.CurrentBet = e.options.BigBlind
	next.LastActions[sb] = "SB"
	next.LastActions[bb] = "BB"

	for i, stack := range next.Stacks {
		next.AllIn[i] = stack == 0
	}

	e.state = next
	e.hands++

	if e.options.RoundCompletion == CompletionAllMatched && !e.canAct(e.state.Acting) {
		e.state.Acting = e.nextToAct(e.state.Acting)
	}

	e.updateDisabled()

	e.logger.WithFields(logrus.Fields{
		"hand":   e.hands,
		"dealer": dealer,
	}).Debug("hand started")

	result := &Result{}
	result.add(Event{Type: EventHandStarted, Seat: dealer})
	result.add(Event{Type: EventSmallBlind, Seat: sb, Amount: sbPosted})
	result.add(Event{Type: EventBigBlind, Seat: bb, Amount: bbPosted})
	result.add(Event{Type: EventToAct, Seat: e.state.Acting})
	return result, nil
}

// ApplyAction applies the intent for the acting seat, then advances the turn
// and, when the betting round is complete, the street.
func (e *Engine) ApplyAction(intent Intent) (*Result, error) {
	if !e.state.Active {
		return nil, ErrHandNotActive
	}

	if !intent.Action.IsValid() {
		return nil, fmt.Errorf("unknown action: %q", string(intent.Action))
	}

	h := &e.state
	seat := h.Acting
	result := &Result{}

	reopened := false
	switch intent.Action {
	case action.Fold:
		h.Folded[seat] = true
		e.record(result, seat, intent.Action, 0)
	case action.Check:
		e.record(result, seat, intent.Action, 0)
	case action.Call:
		moved := h.commit(seat, h.Owed(seat))
		e.record(result, seat, intent.Action, moved)
	case action.Bet:
		if intent.Amount == nil {
			break
		}

		amount := *intent.Amount
		if amount <= 0 || amount > h.Stacks[seat] {
			return nil, fmt.Errorf("%w: cannot bet %d with a stack of %d", ErrInvalidAmount, amount, h.Stacks[seat])
		}

		h.commit(seat, amount)
		reopened = e.raiseCurrentBet(seat)
		e.record(result, seat, intent.Action, amount)
	case action.Raise:
		if intent.Amount == nil {
			break
		}

		amount := *intent.Amount
		add := amount - h.Bets[seat]
		if add <= 0 || add > h.Stacks[seat] {
			return nil, fmt.Errorf("%w: cannot raise to %d with a bet of %d and a stack of %d", ErrInvalidAmount, amount, h.Bets[seat], h.Stacks[seat])
		}

		h.commit(seat, add)
		reopened = e.raiseCurrentBet(seat)
		e.record(result, seat, intent.Action, amount)
	case action.AllIn:
		moved := h.commit(seat, h.Stacks[seat])
		h.AllIn[seat] = true
		reopened = e.raiseCurrentBet(seat)
		e.record(result, seat, intent.Action, moved)
	}

	h.acted[seat] = true
	if reopened {
		for i := range h.acted {
			h.acted[i] = i == seat
		}
	}

	if err := e.advance(result); err != nil {
		return nil, err
	}

	return result, nil
}

// record appends the token and label for an applied action
func (e *Engine) record(result *Result, seat int, a action.Action, amount int) {
	e.state.appendToken(a.Token(amount))
	e.state.LastActions[seat] = a.Label(amount)
	result.add(Event{Type: EventAction, Seat: seat, Action: a, Amount: amount, Street: e.state.Street})
}

// raiseCurrentBet lifts the bet to call to the seat's bet and reports whether it went up
func (e *Engine) raiseCurrentBet(seat int) bool {
	if e.state.Bets[seat] > e.state.CurrentBet {
		e.state.CurrentBet = e.state.Bets[seat]
		return true
	}

	return false
}

// updateDisabled recomputes which actions the acting seat should not be offered
func (e *Engine) updateDisabled() {
	h := &e.state
	if !h.Active {
		h.Disabled = append([]action.Action{}, action.All...)
		return
	}

	if h.Owed(h.Acting) > 0 {
		h.Disabled = []action.Action{action.Check}
	} else {
		h.Disabled = []action.Action{action.Call}
	}
}
