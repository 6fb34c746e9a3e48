package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"notebk/internal/app"
	"notebk/internal/command"
	"notebk/internal/config"
	"notebk/internal/render"
)

type ExitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) ExitCode() int { return e.code }

const exitUsage = 2

func usageError(err error) error {
	return &exitError{code: exitUsage, msg: err.Error()}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var ex ExitCoder
		if errors.As(err, &ex) {
			os.Exit(ex.ExitCode())
		}
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	root       string
	jsonOutput bool
	verbose    bool
	noColor    bool
}

func (g *globalFlags) options(logger logrus.FieldLogger) app.Options {
	return app.Options{ConfigPath: g.configPath, Root: g.root, Logger: logger}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	newSvc := func() (*app.Service, error) {
		svc, err := app.New(flags.options(logger))
		if err != nil {
			return nil, err
		}
		if !flags.verbose {
			if lvl, err := logrus.ParseLevel(svc.Config.Logging.Level); err == nil {
				logger.SetLevel(lvl)
			}
		}
		return svc, nil
	}

	cmd := &cobra.Command{
		Use:   "notebk [path] [which|delete|ls [count]]",
		Short: "A notebook of dated markdown entries",
		Long: `notebk keeps one markdown file per day, named YYYY-MM-DD.md, in folders
under a notebook root. A path like work/standup/2 names the second most
recent entry of work/standup; without a number it names today's entry.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: completePathThenAction(newSvc),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			if flags.noColor {
				color.NoColor = true
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), newSvc, flags, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().StringVar(&flags.root, "root", "", "notebook root (overrides config and $"+config.EnvRoot+")")
	cmd.PersistentFlags().BoolVar(&flags.jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging on stderr")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable coloured output")

	cmd.AddCommand(newListCmd(newSvc, flags))
	cmd.AddCommand(newMoveCmd(newSvc, flags))
	cmd.AddCommand(newSyncCmd(newSvc, flags))
	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newDoctorCmd(flags, logger))
	cmd.AddCommand(newVersionCmd(&flags.jsonOutput))

	return cmd
}

func newListCmd(newSvc func() (*app.Service, error), flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [count]",
		Short: "List the most recent entries at the notebook root",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), newSvc, flags, append([]string{"ls"}, args...))
		},
	}
}

func newMoveCmd(newSvc func() (*app.Service, error), flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "mv <src> <dst>",
		Short:             "Move an entry into another folder",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completePaths(newSvc, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), newSvc, flags, append([]string{"mv"}, args...))
		},
	}
}

func newSyncCmd(newSvc func() (*app.Service, error), flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Commit the notebook and sync it with its git remote",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), newSvc, flags, append([]string{"sync"}, args...))
		},
	}
}

func newInitCmd(flags *globalFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init <root>",
		Short: "Write a config file pointing at a notebook root",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Init(flags.configPath, args[0], force)
			if err != nil {
				return err
			}
			return print(flags.jsonOutput, cfg, "wrote "+cfg.Source)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newDoctorCmd(flags *globalFlags, logger logrus.FieldLogger) *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Aliases: []string{"diag", "checkup"},
		Short:   "Check the config and notebook for problems",
		Args:    exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := app.Diagnose(cmd.Context(), flags.options(logger))
			if flags.jsonOutput {
				return print(true, report, "")
			}
			if len(report.Findings) == 0 {
				fmt.Println("healthy")
				return nil
			}
			if report.Healthy {
				fmt.Println("healthy, with warnings:")
			} else {
				fmt.Println("issues found:")
			}
			for _, f := range report.Findings {
				if f.Path != "" {
					fmt.Printf("- [%s] %s: %s\n", f.Code, f.Path, f.Message)
					continue
				}
				fmt.Printf("- [%s] %s\n", f.Code, f.Message)
			}
			return nil
		},
	}
}

// runAction validates the words before loading config, so usage errors are
// reported even when no notebook is configured.
func runAction(ctx context.Context, newSvc func() (*app.Service, error), flags *globalFlags, args []string) error {
	if _, err := command.Parse(args); err != nil {
		return usageError(err)
	}
	svc, err := newSvc()
	if err != nil {
		return err
	}
	action, err := command.Parser{DefaultCount: svc.Config.List.Count}.Parse(args)
	if err != nil {
		return usageError(err)
	}

	switch a := action.(type) {
	case command.Open:
		file, err := svc.Open(ctx, a.Path)
		if err != nil {
			return err
		}
		return print(flags.jsonOutput, map[string]string{"path": file}, "")
	case command.Which:
		file, err := svc.Which(a.Path)
		if err != nil {
			return err
		}
		return print(flags.jsonOutput, map[string]string{"path": file}, file)
	case command.Delete:
		file, err := svc.Delete(a.Path)
		if err != nil {
			return err
		}
		return print(flags.jsonOutput, map[string]string{"deleted": file}, "")
	case command.List:
		result, err := svc.List(a.Path, a.Count)
		if err != nil {
			return err
		}
		if flags.jsonOutput {
			return print(true, result, "")
		}
		printer := render.Printer{Out: os.Stdout, Color: !flags.noColor && !color.NoColor}
		if result.Missing {
			return printer.Missing(result.Dir)
		}
		return printer.Listing(result.Entries)
	case command.Move:
		result, err := svc.Move(a.Src, a.Dst)
		if err != nil {
			return err
		}
		return print(flags.jsonOutput, result, "")
	case command.Sync:
		report, err := svc.SyncRun(ctx)
		if err != nil {
			return err
		}
		return print(flags.jsonOutput, report, "synced "+report.Root)
	default:
		return fmt.Errorf("unhandled action %T", action)
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func print(jsonOutput bool, payload any, message string) error {
	if jsonOutput {
		blob, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(blob))
		return nil
	}
	if message != "" {
		fmt.Println(message)
	}
	return nil
}
