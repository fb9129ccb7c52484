package kv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/keyring"
)

// Open returns the Provider described by cfg without initializing or loading it:
//   - "postgres" / "postgresql": connection string from TALLY_DB_CONNECTION, then the OS keyring
//   - "postgres://..." URL: used as-is, must not embed a password
//   - a path ending in ".json": FileStore
//   - any other path: SQLiteStore
func Open(cfg string) (Provider, error) {
	switch {
	case cfg == "postgres" || cfg == "postgresql":
		connStr, err := resolveConnString()
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(connStr), nil

	case IsPostgresConnString(cfg):
		if err := ValidateConnString(cfg); err != nil {
			if errors.Is(err, ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; store it with '%s keyring set' or export %s instead",
					err, constants.AppName, constants.EnvDBConnection)
			}
			return nil, err
		}
		return NewPostgresStore(cfg), nil
	}

	path, err := ExpandPath(cfg)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewFileStore(path), nil
	}
	return NewSQLiteStore(path), nil
}

// resolveConnString looks up a stored connection string. Stored values may
// carry credentials since they never appear on the command line.
func resolveConnString() (string, error) {
	if connStr := os.Getenv(constants.EnvDBConnection); connStr != "" {
		return connStr, nil
	}

	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("no PostgreSQL connection string configured: set %s or run '%s keyring set'",
				constants.EnvDBConnection, constants.AppName)
		}
		return "", err
	}
	return connStr, nil
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigDir returns the directory that holds logs and the lockfile for cfg.
// PostgreSQL configurations fall back to the user config directory.
func ConfigDir(cfg string) (string, error) {
	if cfg == "postgres" || cfg == "postgresql" || IsPostgresConnString(cfg) {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user config dir: %w", err)
		}
		return filepath.Join(dir, constants.AppName), nil
	}
	path, err := ExpandPath(cfg)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}
