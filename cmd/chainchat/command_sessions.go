package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"chainchat/internal/config"
	"chainchat/internal/store"
	"chainchat/internal/types"
)

type SessionsCommand struct {
	stdout      io.Writer
	stderr      io.Writer
	loadConfig  func() (config.Config, error)
	openArchive func(cfg config.Config) (store.Archive, error)
}

func NewSessionsCommand(wiring commandWiring) *SessionsCommand {
	return &SessionsCommand{
		stdout:      wiring.stdout,
		stderr:      wiring.stderr,
		loadConfig:  wiring.loadConfig,
		openArchive: wiring.openArchive,
	}
}

func (c *SessionsCommand) Run(args []string) error {
	fs := flag.NewFlagSet("sessions", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	archive, err := c.openArchive(cfg)
	if err != nil {
		return err
	}
	defer archive.Close()

	sessions, err := archive.Load(context.Background())
	if err != nil {
		return err
	}
	printSessions(c.stdout, sessions)
	return nil
}

func printSessions(output io.Writer, sessions []*types.ChatSession) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tMESSAGES")
	for _, session := range sessions {
		fmt.Fprintf(writer, "%s\t%s\t%d\n", session.ID, session.Title, len(session.Messages))
	}
	_ = writer.Flush()
}
