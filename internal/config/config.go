package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"notebk/internal/fsutil"
)

const (
	EnvRoot   = "NOTEBK_ROOT"
	EnvEditor = "NOTEBK_EDITOR"
)

// ErrNotConfigured means no config location could be read.
var ErrNotConfigured = errors.New("DOC_CONFIG_MISSING")

// Options selects where configuration comes from. Explicit values win over
// the environment, which wins over the config file.
type Options struct {
	ConfigPath string
	Root       string
}

// Resolve loads the config and applies overrides. A root given by flag or
// environment is enough to run without any config file.
func Resolve(opts Options) (Config, error) {
	cfg, err := Find(opts.ConfigPath)
	root := opts.Root
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if err != nil {
		if root == "" || !errors.Is(err, ErrNotConfigured) {
			return Config{}, err
		}
		cfg = DefaultConfig(root)
	}
	if root != "" {
		cfg.Root = root
	}
	if editor := os.Getenv(EnvEditor); editor != "" {
		cfg.Editor = editor
	}
	cfg = Normalize(cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Find loads the first readable config. With an explicit path only that
// file is tried.
func Find(explicit string) (Config, error) {
	paths := SearchPaths()
	if explicit != "" {
		paths = []string{explicit}
	}
	for _, p := range paths {
		cfg, err := Load(p)
		if err == nil {
			return cfg, nil
		}
		var perr *os.PathError
		if errors.As(err, &perr) {
			continue
		}
		return Config{}, err
	}
	return Config{}, fmt.Errorf("%w: please place a notebk file at %s", ErrNotConfigured, strings.Join(paths, " or "))
}

func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Parse reads either a TOML document or the legacy format, a file whose first
// non-blank line is the notebook root.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		root := firstLine(data)
		if root == "" {
			return Config{}, fmt.Errorf("DOC_CONFIG_PARSE: %w", err)
		}
		return Normalize(Config{Root: root}), nil
	}
	cfg = Normalize(cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg = Normalize(cfg)
	if err := Validate(cfg); err != nil {
		return err
	}

	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return err
	}
	blob, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("DOC_CONFIG_ENCODE: %w", err)
	}
	return fsutil.AtomicWrite(path, blob, 0o644)
}

// Init writes a fresh config for root at path. An existing file is kept
// unless force is set.
func Init(path, root string, force bool) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return Config{}, fmt.Errorf("DOC_CONFIG_EXISTS: %s already exists (use --force to overwrite)", path)
	}
	cfg := DefaultConfig(root)
	if err := Save(path, cfg); err != nil {
		return Config{}, err
	}
	cfg.Source = path
	return cfg, nil
}

// EditorCommand picks the editor: config (or NOTEBK_EDITOR), then $EDITOR, then vim.
func EditorCommand(cfg Config) string {
	if cfg.Editor != "" {
		return cfg.Editor
	}
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	return DefaultEditor
}

func firstLine(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
