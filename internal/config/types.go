package config

// Config is the v1 notebk config document.
type Config struct {
	Version int           `toml:"version"`
	Root    string        `toml:"root"`
	Editor  string        `toml:"editor,omitempty"`
	List    ListConfig    `toml:"list"`
	Sync    SyncConfig    `toml:"sync"`
	Logging LoggingConfig `toml:"logging"`
	Audit   AuditConfig   `toml:"audit"`

	// Source is the file the config was read from, empty when none was.
	Source string `toml:"-"`
}

type ListConfig struct {
	Count int `toml:"count"`
}

type SyncConfig struct {
	Message string `toml:"message"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// AuditConfig locates the mutation log. "off" disables it.
type AuditConfig struct {
	Path string `toml:"path,omitempty"`
}
