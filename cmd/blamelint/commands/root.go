// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands contains the Cobra commands for the blamelint CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the blamelint root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("BLAMELINT_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "blamelint",
		Short:         "blamelint - validate .git-blame-ignore-revs files",
		Long:          "blamelint checks a blame-ignore list for malformed lines, unknown commits, missing comments, and missing automation commits.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of blamelint",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "blamelint version %s\n", version)
		},
	})

	cmd.AddCommand(NewCheckCommand())

	return cmd
}
