package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"

	"chainchat/internal/app"
	"chainchat/internal/chat"
	"chainchat/internal/client"
	"chainchat/internal/config"
	"chainchat/internal/logging"
	"chainchat/internal/store"
	"chainchat/internal/txlink"
)

type UICommand struct {
	stderr      io.Writer
	loadConfig  func() (config.Config, error)
	openArchive func(cfg config.Config) (store.Archive, error)
}

func NewUICommand(wiring commandWiring) *UICommand {
	return &UICommand{
		stderr:      wiring.stderr,
		loadConfig:  wiring.loadConfig,
		openArchive: wiring.openArchive,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	serviceURL := fs.String("service", "", "chat service base URL (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	url := cfg.ServiceURL()
	if *serviceURL != "" {
		url = *serviceURL
	}

	log := openUILogger(cfg)

	archive, err := c.openArchive(cfg)
	if err != nil {
		return err
	}
	defer archive.Close()

	sessions, err := store.NewSessionStore(context.Background(), archive, log)
	if err != nil {
		return err
	}
	submitter := chat.NewSubmitter(sessions, client.NewWithBaseURL(url), log)
	linker := txlink.Linker{ExplorerBase: cfg.ExplorerBaseURL()}
	return app.Run(sessions, submitter, linker, log)
}

// openUILogger logs to a file; the TUI owns the terminal. Failures fall
// back to a no-op logger rather than polluting the alt screen.
func openUILogger(cfg config.Config) logging.Logger {
	path, err := config.LogPath()
	if err != nil {
		return logging.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return logging.Nop()
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return logging.Nop()
	}
	return logging.New(file, logging.ParseLevel(cfg.LogLevel()))
}
