package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gecko-lang/gecko/internal/config"
	"github.com/gecko-lang/gecko/internal/logs"
)

// errFailed signals that diagnostics were already reported and only the exit
// status is left to set.
var errFailed = errors.New("compilation failed")

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfgFile  string
	logLevel string
	format   string
	noColor  bool
	jobs     int

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gecko",
		Short: "gecko language front-end",
		Long: `gecko parses and type-checks gecko source files (.gk).

Commands:
  check    - parse and type-check files or directories
  parse    - check syntax only, optionally dumping the AST
  lsp      - serve diagnostics and hover over the Language Server Protocol
  version  - print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				return a.closeLog()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.format, "format", "", "diagnostic format: text or yaml")
	flags.BoolVar(&a.noColor, "no-color", false, "disable coloured output")
	flags.IntVarP(&a.jobs, "jobs", "j", 0, "number of files compiled concurrently")

	root.AddCommand(newCheckCmd(a), newParseCmd(a), newLSPCmd(a), newVersionCmd())
	return root
}

// setup resolves the configuration (file, then environment, then flags) and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if flags.Changed("no-color") && a.noColor {
		cfg.Color = false
	}
	if flags.Changed("jobs") {
		cfg.Jobs = a.jobs
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := logs.New(logs.Options{
		Level:  cfg.LogLevel,
		Writer: cmd.ErrOrStderr(),
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.With("command", cmd.Name())
	a.closeLog = closeLog
	return nil
}

// Execute runs the gecko command line.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errFailed) {
		root.PrintErrln("Error:", err)
	}
	return err
}
