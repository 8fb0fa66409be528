package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"chainchat/internal/config"
	"chainchat/internal/store"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout      io.Writer
	stderr      io.Writer
	loadConfig  func() (config.Config, error)
	openArchive func(cfg config.Config) (store.Archive, error)
	version     string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:      stdout,
		stderr:      stderr,
		loadConfig:  config.LoadConfig,
		openArchive: openConfiguredArchive,
		version:     buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":       NewUICommand(wiring),
		"config":   NewConfigCommand(wiring),
		"sessions": NewSessionsCommand(wiring),
		"version":  NewVersionCommand(wiring),
	}
}

func openConfiguredArchive(cfg config.Config) (store.Archive, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	return store.OpenArchive(path, cfg.StoreBackend())
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision, modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			version := revision
			if len(version) > 12 {
				version = version[:12]
			}
			if modified == "true" {
				version += "-dirty"
			}
			return version
		}
	}
	return "dev"
}
