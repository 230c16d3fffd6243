// Package cli implements the abacus command line.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"abacus/internal/buildinfo"
	"abacus/internal/config"
	"abacus/internal/logging"
	"abacus/internal/output"
)

// env is the state shared by all commands, filled in by the root
// command's PersistentPreRunE.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	format output.Format

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (e *env) print(v any) error {
	return output.Print(e.stdout, e.format, v)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := &env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(e).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(e *env) *cobra.Command {
	var (
		configPath string
		logLevel   string
		logFormat  string
		format     string
	)

	root := &cobra.Command{
		Use:          "abacus",
		Short:        "A pocket calculator OS for the PicoCalc and the desktop",
		Long:         "abacus runs the calculator in a window, headless, or as an MCP/HTTP service, and exposes its state machine on the command line.",
		Version:      buildinfo.Read().Text(),
		SilenceUsage: true,
	}
	root.SetIn(e.stdin)
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: console or json")
	pf.StringVar(&format, "format", "", "Output format: yaml, json or text (default text on a terminal, yaml otherwise)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if logFormat != "" {
			cfg.Log.Format = logFormat
		}
		e.cfg = cfg

		e.log, err = logging.New(e.stderr, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}

		out, _ := e.stdout.(*os.File)
		e.format, err = output.ParseFormat(format, out)
		return err
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if e.log != nil {
			_ = e.log.Sync()
		}
	}

	window := newWindowCmd(e)
	root.AddCommand(
		window,
		newHeadlessCmd(e),
		newKeysCmd(e),
		newEvalCmd(e),
		newKeypadCmd(e),
		newServeCmd(e),
		newVersionCmd(e),
	)
	// A bare `abacus` opens the window.
	root.RunE = window.RunE
	root.Flags().AddFlagSet(window.Flags())

	return root
}
