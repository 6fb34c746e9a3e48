// Package sync mirrors the notebook to its git remote.
package sync

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

// ErrNotWorkTree is returned when the root is a plain folder.
var ErrNotWorkTree = errors.New("SYNC_NOT_GIT")

type gitExecFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

type Service struct {
	Root    string
	Message string
	Logger  logrus.FieldLogger

	execGit gitExecFunc
}

type Report struct {
	Root      string   `json:"root"`
	Committed bool     `json:"committed"`
	Steps     []string `json:"steps"`
}

func New(root, message string, logger logrus.FieldLogger) *Service {
	return &Service{Root: root, Message: message, Logger: logger}
}

func defaultGitExec(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("git %s: %w\n%s", strings.Join(args, " "), err, string(out))
	}
	return out, nil
}

// IsWorkTree reports whether dir is inside a git work tree.
func (s *Service) IsWorkTree(ctx context.Context, dir string) bool {
	out, err := s.git()(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// Run stages everything under the root, pulls, commits and pushes.
func (s *Service) Run(ctx context.Context) (Report, error) {
	report := Report{Root: s.Root}
	info, err := os.Stat(s.Root)
	if err != nil {
		return report, fmt.Errorf("SYNC_ROOT: %w", err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("SYNC_ROOT: %s is not a directory", s.Root)
	}
	if !s.IsWorkTree(ctx, s.Root) {
		return report, fmt.Errorf("%w: %s is not a git work tree", ErrNotWorkTree, s.Root)
	}

	message := s.Message
	if strings.TrimSpace(message) == "" {
		message = "sync"
	}
	steps := [][]string{
		{"add", "-A"},
		{"pull"},
		{"commit", "-m", message},
		{"push"},
	}
	for _, args := range steps {
		step := args[0]
		s.logger().WithField("step", step).Debug("running git")
		out, err := s.git()(ctx, s.Root, args...)
		if err != nil {
			if step == "commit" && nothingToCommit(out, err) {
				s.logger().Info("nothing to commit")
				report.Steps = append(report.Steps, step)
				continue
			}
			return report, fmt.Errorf("SYNC_%s: %w", strings.ToUpper(step), err)
		}
		if step == "commit" {
			report.Committed = true
		}
		report.Steps = append(report.Steps, step)
	}
	return report, nil
}

func nothingToCommit(out []byte, err error) bool {
	text := string(out)
	if err != nil {
		text += err.Error()
	}
	return strings.Contains(text, "nothing to commit") || strings.Contains(text, "nothing added to commit")
}

func (s *Service) git() gitExecFunc {
	if s.execGit != nil {
		return s.execGit
	}
	return defaultGitExec
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return s.Logger
}
