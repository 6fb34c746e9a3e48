// Package resolver turns parsed notebook addresses into filesystem paths
// below a notebook root.
package resolver

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"notebk/internal/notebook"
)

type Resolver struct {
	Root string
	// Now picks the day used for addresses without an index.
	Now func() time.Time
}

func New(root string) *Resolver {
	return &Resolver{Root: root, Now: time.Now}
}

// DirPath resolves p to the folder it names. An address with an index names an
// entry, never a folder. The folder does not have to exist.
func (r *Resolver) DirPath(p notebook.Path) (string, error) {
	if p.Indexed {
		return "", fmt.Errorf("%w: expected a directory, but %q ends in an entry number", notebook.ErrInvalidArgument, p.String())
	}
	return r.join(p.Folders)
}

// FilePath resolves p to a concrete entry. With an index n it selects the nth
// most recent child of the folder; without one it names today's entry, which
// may not exist yet.
func (r *Resolver) FilePath(p notebook.Path) (string, error) {
	dir, err := r.join(p.Folders)
	if err != nil {
		return "", err
	}
	if !p.Indexed {
		return filepath.Join(dir, notebook.EntryName(r.now())), nil
	}
	if p.Index < 1 {
		return "", fmt.Errorf("%w: there is no entry number %d", notebook.ErrNotFound, p.Index)
	}
	entries, err := notebook.List(dir)
	if err != nil {
		return "", err
	}
	if p.Index > len(entries) {
		return "", fmt.Errorf("%w: there is no entry number %d", notebook.ErrNotFound, p.Index)
	}
	return entries[p.Index-1].Path, nil
}

func (r *Resolver) join(folders []string) (string, error) {
	parts := make([]string, 0, len(folders)+1)
	parts = append(parts, r.Root)
	for _, f := range folders {
		if f == ".." {
			return "", fmt.Errorf("%w: %q would leave the notebook", notebook.ErrInvalidArgument, f)
		}
		if n, err := strconv.Atoi(f); err == nil && n < 0 {
			return "", fmt.Errorf("%w: entry numbers start at 1, got %d", notebook.ErrInvalidArgument, n)
		}
		parts = append(parts, f)
	}
	return filepath.Join(parts...), nil
}

func (r *Resolver) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
