package config

import "strings"

func Normalize(cfg Config) Config {
	if cfg.Version == 0 {
		cfg.Version = SchemaVersion
	}
	cfg.Root = strings.TrimSpace(cfg.Root)
	cfg.Editor = strings.TrimSpace(cfg.Editor)
	if cfg.List.Count == 0 {
		cfg.List.Count = DefaultListCount
	}
	if cfg.Sync.Message == "" {
		cfg.Sync.Message = DefaultSyncMessage
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	return cfg
}
