package hand

import (
	"errors"
	"fmt"
	"sort"

	"handhistory-server/pkg/deck"
	"handhistory-server/pkg/holdem"
)

// NewCreateRequest builds the request for a finished hand. Card text is normalized;
// a card that does not parse returns a *deck.InvalidCardError.
func NewCreateRequest(h *holdem.HandState, names []string) (*CreateRequest, error) {
	if len(names) != holdem.SeatCount {
		return nil, fmt.Errorf("expected %d seat names, got %d", holdem.SeatCount, len(names))
	}

	req := &CreateRequest{
		StackSettings: make(map[string]int, holdem.SeatCount),
		PlayerRoles: map[string]string{
			RoleDealer:     names[h.Dealer],
			RoleSmallBlind: names[h.SmallBlindSeat()],
			RoleBigBlind:   names[h.BigBlindSeat()],
		},
		HoleCards:      make(map[string][]string, holdem.SeatCount),
		ActionSequence: h.ActionSequence,
	}

	for seat, name := range names {
		req.StackSettings[name] = h.Stacks[seat]

		cards, err := deck.ParseCards(h.HoleCards[seat].Strings())
		if err != nil {
			return nil, err
		}

		req.HoleCards[name] = cards.Strings()
	}

	return req, nil
}

// Validate checks a request before it is stored. Failures are UserErrors.
// Card text is checked against the rank and suit alphabets only; a card that
// appears twice across hands or the board is accepted.
func Validate(req *CreateRequest) error {
	if len(req.StackSettings) == 0 {
		return UserError("stack_settings is required")
	}

	for _, role := range []string{RoleDealer, RoleSmallBlind, RoleBigBlind} {
		name, ok := req.PlayerRoles[role]
		if !ok || name == "" {
			return UserError(fmt.Sprintf("player_roles is missing %s", role))
		}

		if _, ok := req.StackSettings[name]; !ok {
			return UserError(fmt.Sprintf("player_roles %s is not a player: %s", role, name))
		}
	}

	for _, name := range sortedNames(req.HoleCards) {
		if _, ok := req.StackSettings[name]; !ok {
			return UserError(fmt.Sprintf("hole_cards for unknown player: %s", name))
		}

		cards, err := deck.ParseCards(req.HoleCards[name])
		if err != nil {
			var invalid *deck.InvalidCardError
			if errors.As(err, &invalid) {
				return UserError(fmt.Sprintf("hole_cards for %s: %s", name, err))
			}

			return err
		}

		if len(cards) != 2 {
			return UserError(fmt.Sprintf("hole_cards for %s: expected 2 cards, got %d", name, len(cards)))
		}
	}

	if req.ActionSequence == "" {
		return UserError("action_sequence is required")
	}

	if _, err := ParseActionSequence(req.ActionSequence); err != nil {
		return UserError(fmt.Sprintf("action_sequence: %s", err))
	}

	return nil
}

func sortedNames(m map[string][]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
