// Package command defines the actions notebk can perform and the grammar
// that maps command-line words onto them.
package command

import (
	"errors"
	"fmt"
	"strconv"

	"notebk/internal/notebook"
)

// ErrUsage marks arguments that do not form a valid command.
var ErrUsage = errors.New("NB_USAGE")

// DefaultCount is how many entries ls shows when no count is given.
const DefaultCount = 10

// Action is one of Open, Which, Delete, List, Move or Sync.
type Action interface {
	action()
}

// Open edits the entry at Path, creating today's entry when Path has no index.
type Open struct{ Path notebook.Path }

// Which prints the filesystem path Path resolves to.
type Which struct{ Path notebook.Path }

// Delete removes the entry at Path.
type Delete struct{ Path notebook.Path }

// List shows up to Count entries of the folder at Path.
type List struct {
	Path  notebook.Path
	Count int
}

// Move relocates the entry at Src into the folder at Dst.
type Move struct{ Src, Dst notebook.Path }

// Sync pulls, commits and pushes the notebook repository.
type Sync struct{}

func (Open) action()   {}
func (Which) action()  {}
func (Delete) action() {}
func (List) action()   {}
func (Move) action()   {}
func (Sync) action()   {}

// Parser turns argument words into an Action.
type Parser struct {
	// DefaultCount replaces the package default when positive.
	DefaultCount int
}

// Parse uses the package defaults.
func Parse(args []string) (Action, error) {
	return Parser{}.Parse(args)
}

// Parse accepts:
//
//	[<path>]
//	<path> which
//	<path> delete|rm
//	[<path>] ls [<count>]
//	mv <src> <dst>
//	sync
func (p Parser) Parse(args []string) (Action, error) {
	if len(args) == 0 {
		return Open{Path: notebook.ParsePath("")}, nil
	}
	switch args[0] {
	case "ls":
		return p.list("", args[1:])
	case "mv":
		if len(args) != 3 {
			return nil, usagef("mv takes a source and a destination")
		}
		return Move{Src: notebook.ParsePath(args[1]), Dst: notebook.ParsePath(args[2])}, nil
	case "sync":
		if len(args) != 1 {
			return nil, usagef("sync takes no arguments")
		}
		return Sync{}, nil
	}

	path := notebook.ParsePath(args[0])
	if len(args) == 1 {
		return Open{Path: path}, nil
	}
	switch args[1] {
	case "which":
		if len(args) != 2 {
			return nil, usagef("which takes no arguments")
		}
		return Which{Path: path}, nil
	case "delete", "rm":
		if len(args) != 2 {
			return nil, usagef("%s takes no arguments", args[1])
		}
		return Delete{Path: path}, nil
	case "ls":
		return p.list(args[0], args[2:])
	default:
		return nil, usagef("unknown action %q after path %q", args[1], args[0])
	}
}

func (p Parser) list(path string, rest []string) (Action, error) {
	count := p.DefaultCount
	if count <= 0 {
		count = DefaultCount
	}
	switch len(rest) {
	case 0:
	case 1:
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 0 {
			return nil, usagef("count must be a non-negative number, got %q", rest[0])
		}
		count = n
	default:
		return nil, usagef("ls takes at most one count")
	}
	return List{Path: notebook.ParsePath(path), Count: count}, nil
}

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
