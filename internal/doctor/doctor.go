// Package doctor checks that a notebook can be listed, resolved and synced.
package doctor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"notebk/internal/config"
	"notebk/internal/fsutil"
	"notebk/internal/notebook"
)

type Finding struct {
	Code    string `json:"code"`
	Level   string `json:"level"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

type Report struct {
	Healthy  bool      `json:"healthy"`
	Root     string    `json:"root,omitempty"`
	Config   string    `json:"config,omitempty"`
	Findings []Finding `json:"findings"`
}

type Service struct {
	// ConfigPath is the file the config came from, empty when only
	// overrides were used.
	ConfigPath string
	// ConfigErr is the error from loading config, if any. When set the
	// notebook itself is not inspected.
	ConfigErr  error
	Root       string
	IsWorkTree func(ctx context.Context, dir string) bool
}

func (s *Service) Run(ctx context.Context) Report {
	findings := []Finding{}
	switch {
	case errors.Is(s.ConfigErr, config.ErrNotConfigured):
		findings = append(findings, Finding{Code: "DOC_CONFIG_MISSING", Level: "error", Message: s.ConfigErr.Error()})
	case s.ConfigErr != nil:
		findings = append(findings, Finding{Code: "DOC_CONFIG_INVALID", Level: "error", Message: s.ConfigErr.Error()})
	default:
		findings = append(findings, s.checkRoot(ctx)...)
	}

	healthy := true
	for _, f := range findings {
		if f.Level == "error" {
			healthy = false
			break
		}
	}
	return Report{Healthy: healthy, Root: s.Root, Config: s.ConfigPath, Findings: findings}
}

func (s *Service) checkRoot(ctx context.Context) []Finding {
	info, err := os.Stat(s.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return []Finding{{Code: "DOC_ROOT_MISSING", Level: "error", Message: "notebook root does not exist", Path: s.Root}}
	}
	if err != nil {
		return []Finding{{Code: "DOC_ROOT_MISSING", Level: "error", Message: err.Error(), Path: s.Root}}
	}
	if !info.IsDir() {
		return []Finding{{Code: "DOC_ROOT_NOT_DIR", Level: "error", Message: "notebook root is not a directory", Path: s.Root}}
	}

	findings := s.walk()
	if s.IsWorkTree == nil || !s.IsWorkTree(ctx, s.Root) {
		findings = append(findings, Finding{Code: "SYNC_NOT_GIT", Level: "warn", Message: "notebook root is not a git work tree; sync will fail", Path: s.Root})
	}
	return findings
}

func (s *Service) walk() []Finding {
	var findings []Finding
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			findings = append(findings, Finding{Code: "DOC_WALK_FAILED", Level: "error", Message: err.Error(), Path: path})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == s.Root {
			return nil
		}
		rel, _ := filepath.Rel(s.Root, path)
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			findings = append(findings, Finding{Code: "NB_SYMLINK", Level: "error", Message: "symlinks cannot be ordered by date", Path: rel})
		case d.IsDir():
			if d.Name() == notebook.ReservedDir {
				return fs.SkipDir
			}
			if empty, err := fsutil.IsEmptyDir(path); err == nil && empty {
				findings = append(findings, Finding{Code: "NB_EMPTY_DIR", Level: "warn", Message: "empty folder", Path: rel})
			}
		case d.Type().IsRegular():
			if _, err := notebook.ParseEntryName(d.Name()); err != nil {
				findings = append(findings, Finding{Code: "NB_CORRUPT_NAME", Level: "error", Message: "file is not named YYYY-MM-DD.md", Path: rel})
			}
		}
		return nil
	})
	if err != nil {
		findings = append(findings, Finding{Code: "DOC_WALK_FAILED", Level: "error", Message: err.Error(), Path: s.Root})
	}
	return findings
}
