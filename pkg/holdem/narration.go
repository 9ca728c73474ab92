package holdem

import "fmt"

// DefaultNames are the seat display names used when none are configured
var DefaultNames = []string{"Player1", "Player2", "Player3", "Player4", "Player5", "Player6"}

// Narrate turns engine events into display lines, preserving their order
func Narrate(names []string, events []Event) []string {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		if line := NarrateEvent(names, ev); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// NarrateEvent returns the display line for a single event
func NarrateEvent(names []string, ev Event) string {
	name := seatName(names, ev.Seat)

	switch ev.Type {
	case EventHandStarted:
		return fmt.Sprintf("New hand started. Dealer: %s", name)
	case EventSmallBlind:
		return fmt.Sprintf("%s posts small blind: %d", name, ev.Amount)
	case EventBigBlind:
		return fmt.Sprintf("%s posts big blind: %d", name, ev.Amount)
	case EventToAct:
		return fmt.Sprintf("%s to act", name)
	case EventAction:
		return fmt.Sprintf("%s %s", name, ev.Action.LogMessage(ev.Amount))
	case EventStreetDealt:
		return fmt.Sprintf("%s: %s", ev.Street.Title(), ev.Cards.Join(" "))
	case EventHandComplete:
		return "Hand complete - saving to history"
	}

	return ""
}

func seatName(names []string, seat int) string {
	if seat >= 0 && seat < len(names) {
		return names[seat]
	}

	return fmt.Sprintf("Seat %d", seat+1)
}
