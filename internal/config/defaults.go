package config

const (
	SchemaVersion = 1

	DefaultListCount   = 10
	DefaultSyncMessage = "sync"
	DefaultLogLevel    = "warn"
	DefaultEditor      = "vim"

	AuditOff = "off"
)

// DefaultConfig returns a fully-populated v1 config document for root.
func DefaultConfig(root string) Config {
	return Config{
		Version: SchemaVersion,
		Root:    root,
		List:    ListConfig{Count: DefaultListCount},
		Sync:    SyncConfig{Message: DefaultSyncMessage},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}
