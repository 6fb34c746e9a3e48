// Package render formats notebook listings for the terminal.
package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Empty is shown for entries with no visible text.
const Empty = "<empty>"

type frontmatter struct {
	Title string `yaml:"title"`
}

// Summary returns the one-line description of the entry file at path.
func Summary(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("RENDER_READ: %w", err)
	}
	return Summarize(content), nil
}

// Summarize prefers a frontmatter title, then the first non-blank line of
// the body.
func Summarize(content []byte) string {
	title, body := splitFrontmatter(content)
	if title != "" {
		return title
	}
	for _, line := range strings.Split(string(body), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return Empty
}

// DirSummary is how a folder appears in a listing.
func DirSummary(name string) string {
	return name + "/"
}

func splitFrontmatter(content []byte) (string, []byte) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return "", content
	}
	end := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			end = i
			break
		}
	}
	if end == 0 {
		return "", content
	}
	body := bytes.Join(lines[end+1:], []byte("\n"))
	var fm frontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:end], []byte("\n")), &fm); err != nil {
		return "", body
	}
	return strings.TrimSpace(fm.Title), body
}
