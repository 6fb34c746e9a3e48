package notebook

import (
	"fmt"
	"time"
)

// EntryLayout is the file name of a daily entry, in time layout form.
const EntryLayout = "2006-01-02.md"

// ReservedDir is never treated as a note folder.
const ReservedDir = ".git"

// EntryName returns the file name of the entry for the given day.
func EntryName(t time.Time) string {
	return t.Format(EntryLayout)
}

// ParseEntryName parses a daily entry file name. Anything other than a valid
// zero-padded YYYY-MM-DD.md is a corrupt notebook.
func ParseEntryName(name string) (time.Time, error) {
	if len(name) != len(EntryLayout) {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD.md entry", ErrCorrupt, name)
	}
	t, err := time.Parse(EntryLayout, name)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD.md entry: %v", ErrCorrupt, name, err)
	}
	return t, nil
}
