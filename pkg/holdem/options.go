package holdem

import (
	"errors"
	"fmt"
)

// SeatCount is the fixed number of seats at the table
const SeatCount = 6

// RoundCompletion selects how the engine decides a betting round is over
type RoundCompletion string

// RoundCompletion constants
const (
	// CompletionDealerWrap ends the round as soon as the turn pointer wraps back
	// to the dealer seat, regardless of who has matched the bet
	CompletionDealerWrap RoundCompletion = "dealer-wrap"

	// CompletionAllMatched ends the round once every seat that can still act has
	// acted since the last bet or raise and matched it. Folded and all-in seats
	// are skipped, and the hand ends when only one seat has not folded.
	CompletionAllMatched RoundCompletion = "all-matched"
)

// Options configures the table
type Options struct {
	SmallBlind      int             `yaml:"smallBlind" json:"smallBlind"`
	BigBlind        int             `yaml:"bigBlind" json:"bigBlind"`
	StartingStack   int             `yaml:"startingStack" json:"startingStack"`
	RoundCompletion RoundCompletion `yaml:"roundCompletion" json:"roundCompletion"`
}

// DefaultOptions returns the default options: 20/40 blinds with 1,000 chip stacks
func DefaultOptions() Options {
	return Options{
		SmallBlind:      20,
		BigBlind:        40,
		StartingStack:   1000,
		RoundCompletion: CompletionAllMatched,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind must be >= the small blind")
	}

	if opts.StartingStack < opts.BigBlind {
		return errors.New("starting stack must cover the big blind")
	}

	switch opts.RoundCompletion {
	case CompletionDealerWrap, CompletionAllMatched:
	default:
		return fmt.Errorf("unknown round completion: %q", opts.RoundCompletion)
	}

	return nil
}
