package notebook

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"notebk/internal/fsutil"
)

// Delete removes the entry at file and then prunes the folders it leaves empty.
func Delete(root, file string) error {
	if err := RequireFile(file); err != nil {
		return err
	}
	if err := os.Remove(file); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return Cleanup(root, file)
}

// Cleanup walks upward from the parent of file, removing every directory that
// is empty. It stops at the first non-empty directory and never removes root.
func Cleanup(root, file string) error {
	root = filepath.Clean(root)
	dir := filepath.Dir(filepath.Clean(file))
	for strictlyWithin(root, dir) {
		empty, err := fsutil.IsEmptyDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				dir = filepath.Dir(dir)
				continue
			}
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		if !empty {
			return nil
		}
		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		dir = filepath.Dir(dir)
	}
	return nil
}

// PrepareWrite creates the folder chain of file so an editor can save it.
// The file itself is left alone.
func PrepareWrite(file string) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Move renames src into dstDir, keeping its file name. An existing file at the
// destination is never replaced. The folder src leaves behind is not pruned.
func Move(src, dstDir string) (string, error) {
	if err := RequireFile(src); err != nil {
		return "", err
	}
	dst := filepath.Join(dstDir, filepath.Base(src))
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("%w: destination %s exists", ErrConflict, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	return dst, nil
}

// RequireFile fails with ErrNotFound unless file is an existing regular file.
func RequireFile(file string) error {
	info, err := os.Lstat(file)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: expected an existing file at %s", ErrNotFound, file)
	}
	return nil
}

func strictlyWithin(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
