package notebook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Entry is one child of a notebook folder together with its recency key.
type Entry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	IsDir   bool      `json:"isDir"`
	Recency time.Time `json:"recency"`
}

// List returns the children of dir, most recent first. Entries with equal
// recency keep the order the filesystem enumerated them in.
func List(dir string) ([]Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: the path %s doesn't exist", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, dir)
	}
	children, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(children))
	for _, d := range children {
		if isReserved(d) {
			continue
		}
		path := filepath.Join(dir, d.Name())
		key, err := Recency(path, d)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: d.Name(), Path: path, IsDir: d.IsDir(), Recency: key})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Recency.After(entries[j].Recency)
	})
	return entries, nil
}

// Recency computes the ordering key of a directory child. A file's key is the
// date in its name; a directory's key is the newest key below it, or the zero
// time when nothing below it carries a date.
func Recency(path string, d fs.DirEntry) (time.Time, error) {
	switch {
	case d.Type()&fs.ModeSymlink != 0:
		return time.Time{}, fmt.Errorf("%w: unexpected symlink at %s", ErrCorrupt, path)
	case d.Type().IsRegular():
		t, err := ParseEntryName(d.Name())
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: could not parse entry %s as a date", ErrCorrupt, path)
		}
		return t, nil
	case d.IsDir():
		if isReserved(d) {
			return time.Time{}, nil
		}
		children, err := readDir(path)
		if err != nil {
			return time.Time{}, err
		}
		var newest time.Time
		for _, c := range children {
			key, err := Recency(filepath.Join(path, c.Name()), c)
			if err != nil {
				return time.Time{}, err
			}
			if key.After(newest) {
				newest = key
			}
		}
		return newest, nil
	default:
		return time.Time{}, nil
	}
}

func isReserved(d fs.DirEntry) bool {
	return d.IsDir() && d.Name() == ReservedDir
}

// readDir keeps the filesystem's enumeration order; os.ReadDir would sort by name.
func readDir(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read directory %s: %w", ErrIO, dir, err)
	}
	defer f.Close()
	children, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: could not list directory %s: %w", ErrIO, dir, err)
	}
	return children, nil
}
