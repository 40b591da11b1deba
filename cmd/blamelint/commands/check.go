// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blamelint/blamelint/cmd/blamelint/internal/clierr"
	"github.com/blamelint/blamelint/internal/config"
	"github.com/blamelint/blamelint/internal/history"
	"github.com/blamelint/blamelint/internal/ignorefile"
	"github.com/blamelint/blamelint/internal/validate"
)

// Exit codes. Violations set per-rule bits (see validate.Rule.ExitBit);
// these two are reserved so operators can tell "the file has problems"
// from "the tool could not run".
const (
	exitNotFound = 1
	exitFatal    = 64
)

// NewCheckCommand returns the `blamelint check` command.
func NewCheckCommand() *cobra.Command {
	var (
		callGit           bool
		strictComments    bool
		strictCommentsGit bool
		preCommitCI       bool
		botAuthor         string
		configPath        string
		listHashes        bool
	)

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a .git-blame-ignore-revs file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			opts, err := resolveOptions(path, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("call-git") {
				opts.CallGit = callGit
			}
			if cmd.Flags().Changed("strict-comments") {
				opts.StrictComments = strictComments
			}
			if cmd.Flags().Changed("strict-comments-git") {
				opts.StrictCommentsGit = strictCommentsGit
			}
			if cmd.Flags().Changed("pre-commit-ci") {
				opts.PreCommitCI = preCommitCI
			}
			if cmd.Flags().Changed("bot-author") {
				opts.BotAuthor = botAuthor
			}

			// Reject bad flag combinations before touching the file.
			if err := opts.Validate(); err != nil {
				return clierr.Wrap(exitFatal, "configuration error", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return clierr.Newf(exitNotFound, "the file %q does not exist", path)
				}
				return clierr.Wrap(exitFatal, "failed to read file", err)
			}
			file := ignorefile.Parse(string(raw))

			var oracle *history.Oracle
			if opts.CallGit {
				source, err := history.OpenGitSource(filepath.Dir(path))
				if err != nil {
					return clierr.Wrap(exitFatal, "cannot query history", err)
				}
				oracle = history.NewOracle(source)
			}

			report, err := validate.Run(cmd.Context(), file, oracle, opts)
			if err != nil {
				if errors.Is(err, history.ErrUnavailable) {
					return clierr.Wrap(exitFatal, "cannot query history", err)
				}
				return clierr.Wrap(exitFatal, "validation aborted", err)
			}

			report.Write(cmd.OutOrStdout(), listHashes)
			if !report.OK() {
				return clierr.Newf(report.ExitCode(), "%s: validation failed", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&callGit, "call-git", false, "Ensure each commit is in the history of the checked-out branch")
	cmd.Flags().BoolVar(&strictComments, "strict-comments", false, "Require each commit line to have one or more comment lines above it")
	cmd.Flags().BoolVar(&strictCommentsGit, "strict-comments-git", false, "Ensure the comment above each commit matches the start of the commit subject (requires --strict-comments and --call-git)")
	cmd.Flags().BoolVar(&preCommitCI, "pre-commit-ci", false, "Ensure all commits by the automation author are present in the file (requires --call-git)")
	cmd.Flags().StringVar(&botAuthor, "bot-author", validate.DefaultBotAuthor, "Automation author checked by --pre-commit-ci")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a .blamelint.yaml config file (default: next to FILE)")
	cmd.Flags().BoolVar(&listHashes, "list", false, "Also print the well-formed hash lines")

	return cmd
}

// resolveOptions loads flag defaults from the config file, if any. An
// explicit --config that cannot be loaded is fatal; a discovered one too,
// since a broken config should never silently relax checks.
func resolveOptions(validatedFile, configPath string) (validate.Options, error) {
	path := configPath
	if path == "" {
		discovered, ok := config.Discover(validatedFile)
		if !ok {
			return validate.Options{}, nil
		}
		path = discovered
	}

	cfg, err := config.Load(path)
	if err != nil {
		return validate.Options{}, clierr.Wrap(exitFatal, fmt.Sprintf("bad config %s", path), err)
	}
	return cfg.Options(), nil
}
