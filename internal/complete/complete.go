// Package complete suggests notebook folder addresses for shell completion.
package complete

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"notebk/internal/notebook"
)

// Folders completes the last segment of partial against the folders that
// sit next to it under root. Suggestions keep the typed prefix and end in a
// slash. An empty last segment lists every folder in name order; otherwise
// fuzzy matches come best first.
func Folders(root, partial string) []string {
	prefix, last := "", partial
	if i := strings.LastIndex(partial, "/"); i >= 0 {
		prefix, last = partial[:i+1], partial[i+1:]
	}
	for _, seg := range strings.Split(prefix, "/") {
		if seg == ".." {
			return nil
		}
	}

	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(prefix)))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != notebook.ReservedDir {
			names = append(names, e.Name())
		}
	}

	var picked []string
	if last == "" {
		sort.Strings(names)
		picked = names
	} else {
		for _, m := range fuzzy.Find(last, names) {
			picked = append(picked, m.Str)
		}
	}

	out := make([]string, 0, len(picked))
	for _, name := range picked {
		out = append(out, prefix+name+"/")
	}
	return out
}
