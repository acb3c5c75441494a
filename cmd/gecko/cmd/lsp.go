package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gecko-lang/gecko/internal/driver"
	"github.com/gecko-lang/gecko/internal/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := driver.New(driver.Options{Jobs: a.cfg.Jobs, Logger: a.logger})
			s := lsp.NewServer(d, a.logger, Version)
			return s.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
