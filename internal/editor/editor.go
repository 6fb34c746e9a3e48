// Package editor hands a notebook entry to the user's editor.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

type Runner struct {
	// Command is split on whitespace, so "code -w" works.
	Command string
	Logger  logrus.FieldLogger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Edit blocks until the editor exits. A non-zero exit status is logged and
// otherwise ignored; only a failure to start the editor is returned.
func (r *Runner) Edit(ctx context.Context, file string) error {
	fields := strings.Fields(r.Command)
	if len(fields) == 0 {
		return errors.New("EDITOR_MISSING: no editor configured")
	}
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], file)...)
	cmd.Stdin = orReader(r.Stdin, os.Stdin)
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		r.logger().WithFields(logrus.Fields{
			"editor": fields[0],
			"file":   file,
			"status": exitErr.ExitCode(),
		}).Warn("editor exited with non-zero status")
		return nil
	}
	if err != nil {
		return fmt.Errorf("EDITOR_START: %w", err)
	}
	return nil
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return r.Logger
}

func orReader(r, fallback io.Reader) io.Reader {
	if r == nil {
		return fallback
	}
	return r
}

func orWriter(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
