package action

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Action represents an action a player can take
type Action string

// action constants
const (
	Fold  Action = "fold"
	Check Action = "check"
	Call  Action = "call"
	Bet   Action = "bet"
	Raise Action = "raise"
	AllIn Action = "allin"
)

// All lists the actions in the order a client should offer them
var All = []Action{Fold, Check, Call, Bet, Raise, AllIn}

var allowedActions = map[Action]bool{
	Fold:  true,
	Check: true,
	Call:  true,
	Bet:   true,
	Raise: true,
	AllIn: true,
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	if _, ok := allowedActions[Action(s)]; ok {
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Bet:
		return "Bet"
	case Raise:
		return "Raise"
	case AllIn:
		return "All-In"
	}

	panic("unknown action")
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// UnmarshalJSON accepts either the bare identifier or the object form MarshalJSON writes
func (a *Action) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		var obj struct {
			ID string `json:"id"`
		}

		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}

		id = obj.ID
	}

	parsed, err := FromString(id)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// RequiresAmount is true for actions that carry a chip amount from the player
func (a Action) RequiresAmount() bool {
	return a == Bet || a == Raise
}

// Token returns the compact hand-history token, i.e. "f", "c", "b80", "r200"
func (a Action) Token(amount int) string {
	switch a {
	case Fold:
		return "f"
	case Check:
		return "x"
	case Call:
		return "c"
	case Bet:
		return "b" + strconv.Itoa(amount)
	case Raise:
		return "r" + strconv.Itoa(amount)
	case AllIn:
		return "allin"
	}

	return ""
}

// Label returns the short text shown next to a seat after it acts
func (a Action) Label(amount int) string {
	switch a {
	case Bet, Raise:
		return fmt.Sprintf("%s %d", a.String(), amount)
	}

	return a.String()
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(amount int) string {
	switch a {
	case Fold:
		return "folds"
	case Check:
		return "checks"
	case Call:
		return fmt.Sprintf("calls %d", amount)
	case Bet:
		return fmt.Sprintf("bets %d", amount)
	case Raise:
		return fmt.Sprintf("raises to %d", amount)
	case AllIn:
		return fmt.Sprintf("goes all-in for %d", amount)
	}

	return ""
}

// ParseToken reverses Token: "b80" returns (Bet, 80)
func ParseToken(token string) (Action, int, error) {
	switch token {
	case "f":
		return Fold, 0, nil
	case "x":
		return Check, 0, nil
	case "c":
		return Call, 0, nil
	case "allin":
		return AllIn, 0, nil
	}

	if len(token) > 1 && (token[0] == 'b' || token[0] == 'r') {
		amount, err := strconv.Atoi(token[1:])
		if err == nil && amount > 0 {
			if token[0] == 'b' {
				return Bet, amount, nil
			}

			return Raise, amount, nil
		}
	}

	return "", 0, fmt.Errorf("unknown action token: %s", token)
}
