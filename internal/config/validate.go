package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

func Validate(cfg Config) error {
	if cfg.Version != SchemaVersion {
		return fmt.Errorf("DOC_CONFIG_VERSION: unsupported version %d", cfg.Version)
	}
	if cfg.Root == "" {
		return fmt.Errorf("DOC_CONFIG_ROOT: missing notebook root")
	}
	if cfg.List.Count < 0 {
		return fmt.Errorf("DOC_CONFIG_LIST: list count must not be negative, got %d", cfg.List.Count)
	}
	if _, err := logrus.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("DOC_CONFIG_LOGGING: %w", err)
	}
	return nil
}
