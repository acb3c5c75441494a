package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gecko-lang/gecko/internal/ast"
)

func newParseCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "parse [files or directories...]",
		Short: "Check gecko sources for syntax errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !dump {
				return a.compile(cmd, args, true)
			}

			results, err := a.run(cmd, args, true)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.File == nil {
					continue
				}
				fmt.Fprintf(out, "# %s\n", r.Unit.Name)
				if err := ast.Fprint(out, r.File); err != nil {
					return err
				}
			}
			if err := a.report(out, results); err != nil {
				return err
			}
			for _, r := range results {
				if r.Failed() {
					return errFailed
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print the AST of each file")
	return cmd
}
