package main

import (
	"fmt"
	"os"
)

const usageText = `chainchat is a terminal client for the on-chain trading assistant.

Usage:
  chainchat [command] [flags]

Commands:
  ui        run the chat UI (default)
  config    print effective configuration
  sessions  list persisted chat sessions
  version   print version
  help      show help

Flags:
  -h, --help   show help

Examples:
  chainchat
  chainchat config --format toml
  chainchat sessions
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	if len(args) == 0 {
		exitOnErr("ui", commands["ui"].Run(nil), wiring.stderr)
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
