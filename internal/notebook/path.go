// Package notebook implements the notebook addressing scheme: parsing of
// slash-delimited addresses, recency-ordered directory listings, and the
// filesystem mutations that keep the notebook tree free of empty folders.
package notebook

import (
	"strconv"
	"strings"
)

// Path is a parsed notebook address such as "food/dessert/2".
type Path struct {
	Folders []string
	// Index is the 1-based position in the recency-ordered listing of the
	// folder. It is meaningful only when Indexed is set.
	Index   int
	Indexed bool
}

// ParsePath never fails. Empty segments are dropped, and a purely numeric
// final segment becomes the index.
func ParsePath(s string) Path {
	var folders []string
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			folders = append(folders, seg)
		}
	}
	p := Path{Folders: folders}
	if len(folders) == 0 {
		return p
	}
	last := folders[len(folders)-1]
	if n, ok := parseIndex(last); ok {
		p.Folders = nil
		if len(folders) > 1 {
			p.Folders = folders[:len(folders)-1]
		}
		p.Index = n
		p.Indexed = true
	}
	return p
}

func parseIndex(seg string) (int, bool) {
	digits := strings.TrimPrefix(seg, "+")
	if digits == "" || digits[0] < '0' || digits[0] > '9' {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsDefault reports whether p is the empty address, i.e. today's entry at the root.
func (p Path) IsDefault() bool {
	return len(p.Folders) == 0 && !p.Indexed
}

// String renders p back into address form.
func (p Path) String() string {
	segs := append([]string(nil), p.Folders...)
	if p.Indexed {
		segs = append(segs, strconv.Itoa(p.Index))
	}
	return strings.Join(segs, "/")
}
