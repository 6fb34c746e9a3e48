package config

// Build metadata, set with -ldflags "-X notebk/internal/config.Version=...".
var (
	Version = "v0.1.0-dev"
	Commit  = "none"
	Date    = "unknown"
)
