package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gecko-lang/gecko/internal/config"
	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/driver"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files or directories...]",
		Short: "Parse and type-check gecko sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compile(cmd, args, false)
		},
	}
}

// compile runs the driver over args and reports the diagnostics.
func (a *app) compile(cmd *cobra.Command, args []string, syntaxOnly bool) error {
	results, err := a.run(cmd, args, syntaxOnly)
	if err != nil {
		return err
	}

	if err := a.report(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	for _, r := range results {
		if r.Failed() {
			return errFailed
		}
	}
	return nil
}

func (a *app) run(cmd *cobra.Command, args []string, syntaxOnly bool) ([]*driver.Result, error) {
	files, err := collectFiles(args)
	if err != nil {
		return nil, err
	}
	units, err := driver.LoadUnits(files)
	if err != nil {
		return nil, err
	}

	d := driver.New(driver.Options{
		Jobs:       a.cfg.Jobs,
		Logger:     a.logger,
		SyntaxOnly: syntaxOnly,
	})
	return d.CompileAll(cmd.Context(), units), nil
}

func (a *app) report(w io.Writer, results []*driver.Result) error {
	diags := driver.Diagnostics(results)

	if a.cfg.Format == config.FormatYAML {
		return diag.WriteYAML(w, diags)
	}

	f := diag.NewFormatter(w, a.cfg.Color)
	for _, r := range results {
		f.AddSource(r.Unit.Name, r.Unit.Source)
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", r.Unit.Name, r.Err)
		}
	}
	f.FormatAll(diags)

	errCount := 0
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			errCount++
		}
	}
	if errCount > 0 {
		fmt.Fprintf(w, "%d error(s) in %d file(s)\n", errCount, len(results))
	} else {
		fmt.Fprintf(w, "ok: %d file(s)\n", len(results))
	}
	return nil
}
