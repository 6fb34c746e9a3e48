package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const (
	// FileName is the config file inside the user config directory.
	FileName = "notebk"
	// LegacyFileName is the dotfile in the home directory.
	LegacyFileName = ".notebk"
)

// DefaultConfigPath is the primary config location, <config dir>/notebk.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := homedir.Dir()
		if herr != nil {
			return filepath.Join(".config", FileName)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, FileName)
}

// LegacyConfigPath is the fallback config location, ~/.notebk.
func LegacyConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return LegacyFileName
	}
	return filepath.Join(home, LegacyFileName)
}

// SearchPaths lists the config locations in lookup order.
func SearchPaths() []string {
	return []string{DefaultConfigPath(), LegacyConfigPath()}
}

func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	return homedir.Expand(path)
}

// ResolveRoot returns the notebook root with ~ expanded.
func ResolveRoot(cfg Config) (string, error) {
	expanded, err := ExpandPath(cfg.Root)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}

func DefaultAuditPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "notebk", "audit.log")
}

// ResolveAuditPath returns where mutations are logged, or "" when disabled.
func ResolveAuditPath(cfg Config) (string, error) {
	switch cfg.Audit.Path {
	case AuditOff:
		return "", nil
	case "":
		return DefaultAuditPath(), nil
	}
	return ExpandPath(cfg.Audit.Path)
}
