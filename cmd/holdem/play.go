package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"handhistory-server/internal/config"
	"handhistory-server/internal/rng"
	"handhistory-server/internal/util"
	"handhistory-server/pkg/action"
	"handhistory-server/pkg/holdem"
	"handhistory-server/pkg/room"
)

// PlayCmd runs the table from the terminal
type PlayCmd struct {
	Seed        int64 `help:"Seed for a repeatable deal. 0 shuffles with crypto/rand."`
	RandomNames bool  `help:"Seat random names instead of the configured players."`
	Hands       int   `help:"Stop after this many hands. 0 plays until quit."`
}

const playHelp = `actions: f (fold), x (check), c (call), b<n> (bet n), r<n> (raise to n), allin
table:   n (new hand), s (show table), q (quit)`

// Run implements kong
func (p *PlayCmd) Run(cli *CLI) error {
	cfg := config.Instance()

	var g rng.Generator = rng.Crypto{}
	if p.Seed != 0 {
		g = rng.NewSeeded(p.Seed)
	}

	names := cfg.Table.Players
	if p.RandomNames {
		names = util.RandomSeatNames(g, holdem.SeatCount)
	}

	logger := cli.logger()
	engine, err := holdem.NewEngine(logger, g, cfg.Table.Options())
	if err != nil {
		return err
	}

	ctx := context.Background()
	dealer := room.NewDealer(logger, engine, names, cli.store())
	dealer.StartShift(ctx)
	defer func() {
		dealer.Flush()
		dealer.EndShift()
	}()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Println(playHelp)
	}

	return p.loop(ctx, dealer, os.Stdin, os.Stdout, interactive)
}

func (p *PlayCmd) loop(ctx context.Context, dealer *room.Dealer, in io.Reader, out io.Writer, interactive bool) error {
	ts, err := dealer.Reset(ctx)
	if err != nil {
		return err
	}

	printed := printLog(out, ts, 0)
	scanner := bufio.NewScanner(in)
	for {
		if !ts.Table.Active && p.Hands > 0 && ts.HandCount >= p.Hands {
			return nil
		}

		if interactive {
			fmt.Fprint(out, prompt(ts))
		}

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "q", "quit":
			return nil
		case "?", "help":
			fmt.Fprintln(out, playHelp)
			continue
		case "s", "show":
			printTable(out, ts)
			continue
		case "n", "new":
			if ts, err = dealer.Reset(ctx); err != nil {
				return err
			}

			printed = 0
		default:
			a, amount, err := action.ParseToken(line)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}

			intent := holdem.Intent{Action: a}
			if a.RequiresAmount() {
				intent = holdem.NewIntent(a, amount)
			}

			next, err := dealer.Action(ctx, intent)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}

			ts = next
		}

		printed = printLog(out, ts, printed)
	}
}

// printLog prints the log lines after the first printed lines
func printLog(out io.Writer, ts *room.TableState, printed int) int {
	if printed > len(ts.Log) {
		printed = len(ts.Log)
	}

	for _, msg := range ts.Log[printed:] {
		fmt.Fprintln(out, msg.Message)
	}

	return len(ts.Log)
}

func prompt(ts *room.TableState) string {
	if !ts.Table.Active {
		return "hand over (n: new hand, q: quit) > "
	}

	seat := ts.Table.Seats[ts.Table.CurrentPlayer]
	return fmt.Sprintf("%s [%s] stack %d, to call %d > ", seat.Name, seat.Cards, seat.Stack, ts.Table.CurrentBet-seat.Bet)
}

func printTable(out io.Writer, ts *room.TableState) {
	v := ts.Table
	fmt.Fprintf(out, "hand %d, %s, pot %d, board [%s]\n", ts.HandCount, v.Street, v.Pot, v.Community)
	for _, seat := range v.Seats {
		marker := " "
		if seat.IsActive {
			marker = ">"
		}

		var roles []string
		if seat.IsDealer {
			roles = append(roles, "D")
		}
		if seat.IsSB {
			roles = append(roles, "SB")
		}
		if seat.IsBB {
			roles = append(roles, "BB")
		}

		fmt.Fprintf(out, "%s %-16s %5d  bet %-4d %-3s %s\n", marker, seat.Name, seat.Stack, seat.Bet, strings.Join(roles, ","), seat.LastAction)
	}

	if v.ActionSequence != "" {
		fmt.Fprintln(out, v.ActionSequence)
	}
}
