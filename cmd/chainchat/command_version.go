package main

import (
	"fmt"
	"io"
)

type VersionCommand struct {
	stdout  io.Writer
	version string
}

func NewVersionCommand(wiring commandWiring) *VersionCommand {
	return &VersionCommand{stdout: wiring.stdout, version: wiring.version}
}

func (c *VersionCommand) Run(args []string) error {
	_, err := fmt.Fprintln(c.stdout, c.version)
	return err
}
