package hand

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Role keys used in PlayerRoles
const (
	RoleDealer     = "dealer"
	RoleSmallBlind = "sb"
	RoleBigBlind   = "bb"
)

// CreateRequest is what a client submits once a hand is over
type CreateRequest struct {
	StackSettings  map[string]int      `json:"stack_settings"`
	PlayerRoles    map[string]string   `json:"player_roles"`
	HoleCards      map[string][]string `json:"hole_cards"`
	ActionSequence string              `json:"action_sequence"`
}

// Record is a stored hand history
type Record struct {
	ID             uuid.UUID           `json:"id"`
	CreatedAt      time.Time           `json:"created_at"`
	StackSettings  map[string]int      `json:"stack_settings"`
	PlayerRoles    map[string]string   `json:"player_roles"`
	HoleCards      map[string][]string `json:"hole_cards"`
	ActionSequence string              `json:"action_sequence"`
	Winnings       map[string]int      `json:"winnings"`
}

// Process builds the record the server stores for a request.
// Winnings are not computed; every player in StackSettings starts at zero.
// CreatedAt is truncated to the microsecond so it survives a postgres round trip.
func Process(req *CreateRequest, now time.Time, id uuid.UUID) *Record {
	r := &Record{
		ID:             id,
		CreatedAt:      now.UTC().Truncate(time.Microsecond),
		StackSettings:  make(map[string]int, len(req.StackSettings)),
		PlayerRoles:    make(map[string]string, len(req.PlayerRoles)),
		HoleCards:      make(map[string][]string, len(req.HoleCards)),
		ActionSequence: req.ActionSequence,
		Winnings:       make(map[string]int, len(req.StackSettings)),
	}

	for name, stack := range req.StackSettings {
		r.StackSettings[name] = stack
		r.Winnings[name] = 0
	}

	for role, name := range req.PlayerRoles {
		r.PlayerRoles[role] = name
	}

	for name, cards := range req.HoleCards {
		r.HoleCards[name] = append([]string{}, cards...)
	}

	return r
}

// Request returns the fields a client originally submitted
func (r *Record) Request() *CreateRequest {
	return &CreateRequest{
		StackSettings:  r.StackSettings,
		PlayerRoles:    r.PlayerRoles,
		HoleCards:      r.HoleCards,
		ActionSequence: r.ActionSequence,
	}
}

// SetWinnings replaces the winnings. Every name must be a player in the hand.
func (r *Record) SetWinnings(winnings map[string]int) error {
	for name := range winnings {
		if _, ok := r.StackSettings[name]; !ok {
			return UserError("unknown player in winnings: " + name)
		}
	}

	r.Winnings = make(map[string]int, len(r.StackSettings))
	for name := range r.StackSettings {
		r.Winnings[name] = winnings[name]
	}

	return nil
}

// SortByCreatedDesc sorts newest first
func SortByCreatedDesc(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
