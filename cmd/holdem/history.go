package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/google/uuid"
	"handhistory-server/pkg/hand"
)

// ListCmd lists stored hands
type ListCmd struct {
	Limit int `help:"Show at most this many hands." default:"20"`
}

// Run implements kong
func (l *ListCmd) Run(cli *CLI) error {
	records, err := cli.store().GetAllHands(context.Background())
	if err != nil {
		return err
	}

	if l.Limit > 0 && len(records) > l.Limit {
		records = records[:l.Limit]
	}

	return writeList(os.Stdout, records)
}

func writeList(out io.Writer, records []*hand.Record) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tDEALER\tACTIONS")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.PlayerRoles[hand.RoleDealer], r.ActionSequence)
	}

	return w.Flush()
}

// ReplayCmd prints one hand
type ReplayCmd struct {
	ID uuid.UUID `arg:"" help:"Hand id."`
}

// Run implements kong
func (r *ReplayCmd) Run(cli *CLI) error {
	rec, err := cli.store().GetHandByID(context.Background(), r.ID)
	if err != nil {
		return err
	}

	return writeReplay(os.Stdout, rec)
}

func writeReplay(out io.Writer, rec *hand.Record) error {
	parsed, err := hand.ParseActionSequence(rec.ActionSequence)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Hand %s (%s), %d actions\n", rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04:05"), parsed.StepCount())
	fmt.Fprintf(out, "Dealer %s, small blind %s, big blind %s\n",
		rec.PlayerRoles[hand.RoleDealer], rec.PlayerRoles[hand.RoleSmallBlind], rec.PlayerRoles[hand.RoleBigBlind])

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, name := range playerNames(rec) {
		fmt.Fprintf(w, "  %s\t%d\t%v\t%+d\n", name, rec.StackSettings[name], rec.HoleCards[name], rec.Winnings[name])
	}

	if err := w.Flush(); err != nil {
		return err
	}

	for _, line := range parsed.Lines() {
		fmt.Fprintln(out, line)
	}

	return nil
}

func playerNames(rec *hand.Record) []string {
	names := make([]string, 0, len(rec.StackSettings))
	for name := range rec.StackSettings {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// WinningsCmd records who won what in a stored hand
type WinningsCmd struct {
	ID     uuid.UUID      `arg:"" help:"Hand id."`
	Amount map[string]int `short:"a" help:"Player winnings as name=amount. Repeat for each player." required:""`
}

// Run implements kong
func (wc *WinningsCmd) Run(cli *CLI) error {
	rec, err := cli.store().SetWinnings(context.Background(), wc.ID, wc.Amount)
	if err != nil {
		return err
	}

	return writeReplay(os.Stdout, rec)
}
