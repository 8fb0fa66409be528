package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".chainchat"

// DataDir returns the base data directory for chainchat.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML settings file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// SessionsPath returns the path to the JSON session archive (file backend).
func SessionsPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "sessions.json"), nil
}

// DBPath returns the path to the bbolt database (bbolt backend).
func DBPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "chainchat.db"), nil
}

// LogPath returns the path to the UI log file. The TUI owns the terminal,
// so diagnostics go to a file instead of stderr.
func LogPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "chainchat.log"), nil
}
