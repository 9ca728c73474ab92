package holdem

import (
	"encoding/json"
	"fmt"
)

// Street is a betting round phase
type Street int

// Street constants
const (
	StreetPreflop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver
)

func (s Street) String() string {
	switch s {
	case StreetPreflop:
		return "preflop"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	}

	return ""
}

// Title returns the capitalized name used in the action sequence, i.e. "Flop"
func (s Street) Title() string {
	switch s {
	case StreetPreflop:
		return "Preflop"
	case StreetFlop:
		return "Flop"
	case StreetTurn:
		return "Turn"
	case StreetRiver:
		return "River"
	}

	return ""
}

// CommunityCount is how many community cards are showing on the street
func (s Street) CommunityCount() int {
	switch s {
	case StreetFlop:
		return 3
	case StreetTurn:
		return 4
	case StreetRiver:
		return 5
	}

	return 0
}

// cardsToDeal is how many community cards are dealt when the street begins
func (s Street) cardsToDeal() int {
	switch s {
	case StreetFlop:
		return 3
	case StreetTurn, StreetRiver:
		return 1
	}

	return 0
}

// StreetFromString parses the lowercase street name
func StreetFromString(s string) (Street, error) {
	for st := StreetPreflop; st <= StreetRiver; st++ {
		if st.String() == s {
			return st, nil
		}
	}

	return 0, fmt.Errorf("unknown street: %s", s)
}

// MarshalJSON encodes the street as its name
func (s Street) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the street name
func (s *Street) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}

	st, err := StreetFromString(name)
	if err != nil {
		return err
	}

	*s = st
	return nil
}
