package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"chainchat/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type ConfigCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, error)
}

func NewConfigCommand(wiring commandWiring) *ConfigCommand {
	return &ConfigCommand{
		stdout:     wiring.stdout,
		stderr:     wiring.stderr,
		loadConfig: wiring.loadConfig,
	}
}

type configOutput struct {
	ConfigPath string `json:"config_path" toml:"config_path"`
	Service    string `json:"service_url" toml:"service_url"`
	Explorer   string `json:"explorer_base_url" toml:"explorer_base_url"`
	Backend    string `json:"store_backend" toml:"store_backend"`
	StorePath  string `json:"store_path" toml:"store_path"`
	LogLevel   string `json:"log_level" toml:"log_level"`
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	format := fs.String("format", configFormatTOML, "output format: toml or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	storePath, err := cfg.StorePath()
	if err != nil {
		return err
	}
	out := configOutput{
		ConfigPath: configPath,
		Service:    cfg.ServiceURL(),
		Explorer:   cfg.ExplorerBaseURL(),
		Backend:    cfg.StoreBackend(),
		StorePath:  storePath,
		LogLevel:   cfg.LogLevel(),
	}

	switch strings.ToLower(strings.TrimSpace(*format)) {
	case configFormatTOML:
		encoder := toml.NewEncoder(c.stdout)
		return encoder.Encode(out)
	case configFormatJSON:
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	default:
		return fmt.Errorf("unknown format: %s", *format)
	}
}
