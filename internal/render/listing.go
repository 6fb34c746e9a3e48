package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

type Row struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	IsDir   bool   `json:"isDir"`
	Summary string `json:"summary"`
}

type Printer struct {
	Out   io.Writer
	Color bool
}

// Listing writes one "index  summary" line per row. Files are green and
// folders blue when colour is on.
func (p Printer) Listing(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	file := p.paint(color.FgGreen)
	dir := p.paint(color.FgBlue)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, r := range rows {
		c := file
		if r.IsDir {
			c = dir
		}
		tbl.AddRow(strconv.Itoa(r.Index), c.Sprint(r.Summary))
	}
	_, err := fmt.Fprintln(p.Out, tbl)
	return err
}

// Missing writes the notice shown when ls targets a folder that does not exist.
func (p Printer) Missing(display string) error {
	_, err := fmt.Fprintln(p.Out, MissingPath(display))
	return err
}

func MissingPath(display string) string {
	return fmt.Sprintf("The path `%s` doesn't exist", display)
}

func (p Printer) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if p.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
