package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultServiceURL   = "http://localhost:8000"
	defaultExplorerBase = "https://testnet.bscscan.com"
	defaultStoreBackend = "bbolt"
)

type Config struct {
	Service  ServiceConfig  `toml:"service"`
	Explorer ExplorerConfig `toml:"explorer"`
	Store    StoreConfig    `toml:"store"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServiceConfig struct {
	URL string `toml:"url"`
}

type ExplorerConfig struct {
	BaseURL string `toml:"base_url"`
}

type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			URL: defaultServiceURL,
		},
		Explorer: ExplorerConfig{
			BaseURL: defaultExplorerBase,
		},
		Store: StoreConfig{
			Backend: defaultStoreBackend,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadConfigFromPath(path)
}

func (c Config) ServiceURL() string {
	url := strings.TrimSpace(c.Service.URL)
	if url == "" {
		return defaultServiceURL
	}
	return strings.TrimRight(url, "/")
}

func (c Config) ExplorerBaseURL() string {
	base := strings.TrimSpace(c.Explorer.BaseURL)
	if base == "" {
		return defaultExplorerBase
	}
	return strings.TrimRight(base, "/")
}

func (c Config) StoreBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if backend == "" {
		return defaultStoreBackend
	}
	return backend
}

// StorePath returns the configured archive path, or the default for the
// effective backend.
func (c Config) StorePath() (string, error) {
	path := strings.TrimSpace(c.Store.Path)
	if path != "" {
		return path, nil
	}
	if c.StoreBackend() == "file" {
		return SessionsPath()
	}
	return DBPath()
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func loadConfigFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
