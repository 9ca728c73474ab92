package main

import (
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"handhistory-server/pkg/handclient"
	"handhistory-server/pkg/store"
)

// CLI plays hands at a local table and reads back stored histories
type CLI struct {
	Server   string `help:"Hands API base URL. Hands are kept in memory when empty." env:"HHS_SERVER"`
	LogLevel string `help:"Log level for the table." default:"warn" enum:"trace,debug,info,warn,error"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play hands at a local six-seat table."`
	List     ListCmd     `cmd:"" help:"List stored hands, newest first."`
	Replay   ReplayCmd   `cmd:"" help:"Print a stored hand street by street."`
	Winnings WinningsCmd `cmd:"" help:"Set the winnings of a stored hand."`
}

func (c *CLI) store() store.Store {
	if c.Server == "" {
		return store.NewMemory()
	}

	return handclient.New(c.Server)
}

func (c *CLI) logger() logrus.FieldLogger {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	return logger
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("No-Limit Hold'em hand history recorder."),
		kong.UsageOnError(),
	)

	ctx.FatalIfErrorf(ctx.Run(&cli))
}
