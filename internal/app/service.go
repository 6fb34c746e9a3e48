package app

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"notebk/internal/audit"
	"notebk/internal/complete"
	"notebk/internal/config"
	"notebk/internal/doctor"
	"notebk/internal/editor"
	"notebk/internal/notebook"
	"notebk/internal/render"
	"notebk/internal/resolver"
	syncsvc "notebk/internal/sync"
)

type Options struct {
	ConfigPath string
	Root       string
	Logger     logrus.FieldLogger
	Now        func() time.Time

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Editor opens a file for the user and returns once they are done with it.
type Editor interface {
	Edit(ctx context.Context, file string) error
}

type Service struct {
	ConfigPath string
	Config     config.Config
	Root       string

	Resolver *resolver.Resolver
	Editor   Editor
	Sync     *syncsvc.Service
	Audit    *audit.Logger
	Logger   logrus.FieldLogger
}

type ListResult struct {
	Path    string       `json:"path"`
	Dir     string       `json:"dir"`
	Missing bool         `json:"missing,omitempty"`
	Entries []render.Row `json:"entries"`
}

type MoveResult struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func New(opts Options) (*Service, error) {
	cfg, err := config.Resolve(config.Options{ConfigPath: opts.ConfigPath, Root: opts.Root})
	if err != nil {
		return nil, err
	}
	root, err := config.ResolveRoot(cfg)
	if err != nil {
		return nil, err
	}
	auditPath, err := config.ResolveAuditPath(cfg)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	res := resolver.New(root)
	if opts.Now != nil {
		res.Now = opts.Now
	}
	logger.WithFields(logrus.Fields{"root": root, "config": cfg.Source}).Debug("notebook resolved")
	return &Service{
		ConfigPath: cfg.Source,
		Config:     cfg,
		Root:       root,
		Resolver:   res,
		Editor: &editor.Runner{
			Command: config.EditorCommand(cfg),
			Logger:  logger,
			Stdin:   opts.Stdin,
			Stdout:  opts.Stdout,
			Stderr:  opts.Stderr,
		},
		Sync:   syncsvc.New(root, cfg.Sync.Message, logger),
		Audit:  audit.New(auditPath),
		Logger: logger,
	}, nil
}

// Open edits the entry at p and returns its path. Folders created for a
// new entry are removed again if the editor leaves no file behind.
func (s *Service) Open(ctx context.Context, p notebook.Path) (string, error) {
	file, err := s.Resolver.FilePath(p)
	if err != nil {
		return "", err
	}
	if p.Indexed {
		if err := notebook.RequireFile(file); err != nil {
			return "", err
		}
	}
	if err := notebook.PrepareWrite(file); err != nil {
		return "", err
	}
	editErr := s.Editor.Edit(ctx, file)
	cleanErr := notebook.Cleanup(s.Root, file)
	err = errors.Join(editErr, cleanErr)
	s.record("open", file, "", err)
	if err != nil {
		return "", err
	}
	return file, nil
}

func (s *Service) Which(p notebook.Path) (string, error) {
	return s.Resolver.FilePath(p)
}

// List returns up to count entries of the folder at p, most recent first.
// A folder that does not exist is reported through Missing, not an error.
func (s *Service) List(p notebook.Path, count int) (ListResult, error) {
	dir, err := s.Resolver.DirPath(p)
	if err != nil {
		return ListResult{}, err
	}
	result := ListResult{Path: p.String(), Dir: dir, Entries: []render.Row{}}
	entries, err := notebook.List(dir)
	if errors.Is(err, notebook.ErrNotFound) {
		result.Missing = true
		return result, nil
	}
	if err != nil {
		return ListResult{}, err
	}
	if count < len(entries) {
		entries = entries[:count]
	}
	for i, e := range entries {
		row := render.Row{Index: i + 1, Name: e.Name, Path: e.Path, IsDir: e.IsDir}
		if e.IsDir {
			row.Summary = render.DirSummary(e.Name)
		} else if row.Summary, err = render.Summary(e.Path); err != nil {
			return ListResult{}, err
		}
		result.Entries = append(result.Entries, row)
	}
	return result, nil
}

func (s *Service) Delete(p notebook.Path) (string, error) {
	file, err := s.Resolver.FilePath(p)
	if err != nil {
		return "", err
	}
	err = notebook.Delete(s.Root, file)
	s.record("delete", file, "", err)
	if err != nil {
		return "", err
	}
	return file, nil
}

// Move puts the entry at src into the folder dst. The folder src lived in is
// left in place even when it becomes empty.
func (s *Service) Move(src, dst notebook.Path) (MoveResult, error) {
	file, err := s.Resolver.FilePath(src)
	if err != nil {
		return MoveResult{}, err
	}
	dir, err := s.Resolver.DirPath(dst)
	if err != nil {
		return MoveResult{}, err
	}
	to, err := notebook.Move(file, dir)
	s.record("move", file, dir, err)
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{From: file, To: to}, nil
}

func (s *Service) SyncRun(ctx context.Context) (syncsvc.Report, error) {
	report, err := s.Sync.Run(ctx)
	s.record("sync", s.Root, "", err)
	return report, err
}

// Complete suggests folder addresses for a partially typed path.
func (s *Service) Complete(partial string) []string {
	return complete.Folders(s.Root, partial)
}

// Diagnose runs doctor checks. It does not need a working config, so it is
// usable before New succeeds.
func Diagnose(ctx context.Context, opts Options) doctor.Report {
	svc := &doctor.Service{}
	cfg, err := config.Resolve(config.Options{ConfigPath: opts.ConfigPath, Root: opts.Root})
	if err == nil {
		svc.ConfigPath = cfg.Source
		svc.Root, err = config.ResolveRoot(cfg)
	}
	svc.ConfigErr = err
	svc.IsWorkTree = syncsvc.New("", "", opts.Logger).IsWorkTree
	return svc.Run(ctx)
}

func (s *Service) record(op, path, target string, opErr error) {
	if err := s.Audit.Record(op, path, target, opErr); err != nil {
		s.Logger.WithError(err).Warn("could not write audit log")
	}
}
