package holdem

import (
	"handhistory-server/pkg/action"
	"handhistory-server/pkg/deck"
)

// EventType identifies what happened
type EventType string

// EventType constants
const (
	EventHandStarted  EventType = "handStarted"
	EventSmallBlind   EventType = "smallBlind"
	EventBigBlind     EventType = "bigBlind"
	EventToAct        EventType = "toAct"
	EventAction       EventType = "action"
	EventStreetDealt  EventType = "streetDealt"
	EventHandComplete EventType = "handComplete"
)

// Event is something the engine did, in the order it did it
type Event struct {
	Type   EventType     `json:"type"`
	Seat   int           `json:"seat"`
	Action action.Action `json:"action,omitempty"`
	Amount int           `json:"amount,omitempty"`
	Street Street        `json:"street"`
	Cards  deck.Hand     `json:"cards,omitempty"`
}

// Result is returned by the engine after every intent
type Result struct {
	Events []Event `json:"events"`

	// Completed is true if the hand reached its terminal state during this call
	Completed bool `json:"completed"`
}

func (r *Result) add(ev Event) {
	r.Events = append(r.Events, ev)
}
