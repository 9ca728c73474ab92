package hand

import (
	"fmt"
	"strings"

	"handhistory-server/pkg/action"
	"handhistory-server/pkg/deck"
	"handhistory-server/pkg/holdem"
)

// Step is one parsed action token
type Step struct {
	Action action.Action `json:"action"`
	Amount int           `json:"amount,omitempty"`
}

// StreetLog is the board dealt for a street and the actions taken on it
type StreetLog struct {
	Street holdem.Street `json:"street"`
	Cards  deck.Hand     `json:"cards"`
	Steps  []Step        `json:"steps"`
}

// ParsedSequence is an action sequence split by street
type ParsedSequence struct {
	Streets []*StreetLog `json:"streets"`
}

// ParseActionSequence parses "f c b80 / Flop: [Ah,Kd,2c] x x / Turn: [9s] ..."
// Actions may follow the board in the same segment or sit in their own segment.
func ParseActionSequence(s string) (*ParsedSequence, error) {
	current := &StreetLog{Street: holdem.StreetPreflop}
	parsed := &ParsedSequence{Streets: []*StreetLog{current}}

	for _, segment := range strings.Split(s, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		if street, rest, ok := streetHeader(segment); ok {
			if street != current.Street+1 {
				return nil, fmt.Errorf("%s dealt after %s", street, current.Street)
			}

			cards, remaining, err := parseBoard(street, rest)
			if err != nil {
				return nil, err
			}

			current = &StreetLog{Street: street, Cards: cards}
			parsed.Streets = append(parsed.Streets, current)
			segment = remaining
		}

		for _, token := range strings.Fields(segment) {
			a, amount, err := action.ParseToken(token)
			if err != nil {
				return nil, err
			}

			current.Steps = append(current.Steps, Step{Action: a, Amount: amount})
		}
	}

	return parsed, nil
}

// streetHeader matches a leading "Flop:", "Turn:" or "River:"
func streetHeader(segment string) (holdem.Street, string, bool) {
	for _, street := range []holdem.Street{holdem.StreetFlop, holdem.StreetTurn, holdem.StreetRiver} {
		prefix := street.Title() + ":"
		if strings.HasPrefix(segment, prefix) {
			return street, strings.TrimSpace(segment[len(prefix):]), true
		}
	}

	return 0, "", false
}

func parseBoard(street holdem.Street, s string) (deck.Hand, string, error) {
	end := strings.Index(s, "]")
	if !strings.HasPrefix(s, "[") || end < 0 {
		return nil, "", fmt.Errorf("%s cards must be in brackets", street)
	}

	var text []string
	for _, c := range strings.Split(s[1:end], ",") {
		text = append(text, strings.TrimSpace(c))
	}

	cards, err := deck.ParseCards(text)
	if err != nil {
		return nil, "", err
	}

	expected := street.CommunityCount() - (street - 1).CommunityCount()
	if len(cards) != expected {
		return nil, "", fmt.Errorf("%s expects %d cards, got %d", street, expected, len(cards))
	}

	return cards, s[end+1:], nil
}

// Board returns the community cards in the order they were dealt
func (p *ParsedSequence) Board() deck.Hand {
	var board deck.Hand
	for _, st := range p.Streets {
		board = append(board, st.Cards...)
	}

	return board
}

// StepCount returns how many actions were taken across all streets
func (p *ParsedSequence) StepCount() int {
	n := 0
	for _, st := range p.Streets {
		n += len(st.Steps)
	}

	return n
}

// Lines returns one readable line per street, i.e. "Flop [Ah Kd 2c]: checks, bets 80, calls"
func (p *ParsedSequence) Lines() []string {
	lines := make([]string, 0, len(p.Streets))
	for _, st := range p.Streets {
		steps := make([]string, len(st.Steps))
		for i, step := range st.Steps {
			switch step.Action {
			case action.Call:
				steps[i] = "calls"
			case action.AllIn:
				steps[i] = "goes all-in"
			default:
				steps[i] = step.Action.LogMessage(step.Amount)
			}
		}

		header := st.Street.Title()
		if len(st.Cards) > 0 {
			header = fmt.Sprintf("%s [%s]", header, st.Cards.Join(" "))
		}

		lines = append(lines, fmt.Sprintf("%s: %s", header, strings.Join(steps, ", ")))
	}

	return lines
}
