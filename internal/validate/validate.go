// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate runs the blame-ignore checks and accumulates every
// violation into one report.
package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/blamelint/blamelint/internal/history"
	"github.com/blamelint/blamelint/internal/ignorefile"
)

// ErrBadFlagCombination is returned before any file is read when the
// requested checks have unmet prerequisites.
var ErrBadFlagCombination = errors.New("invalid flag combination")

// Rule identifies a check that can emit violations.
type Rule int

const (
	RuleSyntax Rule = iota
	RuleNotInHistory
	RuleMissingComment
	RuleCommentMismatch
	RuleMissingBotCommit
)

func (r Rule) String() string {
	switch r {
	case RuleSyntax:
		return "syntax"
	case RuleNotInHistory:
		return "not-in-history"
	case RuleMissingComment:
		return "missing-comment"
	case RuleCommentMismatch:
		return "comment-mismatch"
	case RuleMissingBotCommit:
		return "missing-bot-commit"
	default:
		return "unknown"
	}
}

// ExitBit returns the exit-status bit set when this rule has violations.
// Bit 0 is reserved for "file not found" at the CLI layer.
func (r Rule) ExitBit() int {
	switch r {
	case RuleSyntax:
		return 1 << 1
	case RuleNotInHistory:
		return 1 << 2
	case RuleMissingComment:
		return 1 << 3
	case RuleCommentMismatch:
		return 1 << 4
	case RuleMissingBotCommit:
		return 1 << 5
	default:
		return 0
	}
}

// Violation is one reported problem. Violations are findings, not failures:
// a run that produces them still completes.
type Violation struct {
	// Line is the 1-based line number, or 0 for file-level findings.
	Line    int
	Rule    Rule
	Message string
}

// Options selects which checks run. Syntax checking is always on.
type Options struct {
	// CallGit enables history-backed checks: every hash must be reachable
	// from the checked-out HEAD.
	CallGit bool

	// StrictComments requires one or more comment lines directly above each
	// hash line.
	StrictComments bool

	// StrictCommentsGit additionally requires the comment block to match the
	// commit subject. Needs StrictComments and CallGit.
	StrictCommentsGit bool

	// PreCommitCI requires every commit authored by BotAuthor to be listed
	// in the file. Needs CallGit.
	PreCommitCI bool

	// BotAuthor is the automation identity checked by PreCommitCI.
	BotAuthor string
}

// DefaultBotAuthor is the automation identity checked when none is configured.
const DefaultBotAuthor = "pre-commit-ci[bot]"

// Validate rejects option combinations whose checks could not run.
func (o Options) Validate() error {
	if o.StrictCommentsGit && !(o.StrictComments && o.CallGit) {
		return fmt.Errorf("%w: --strict-comments-git requires --strict-comments and --call-git", ErrBadFlagCombination)
	}
	if o.PreCommitCI && !o.CallGit {
		return fmt.Errorf("%w: --pre-commit-ci requires --call-git", ErrBadFlagCombination)
	}
	return nil
}

type check func(ctx context.Context, file *ignorefile.File, oracle *history.Oracle, opts Options) ([]Violation, error)

// checks is the canonical order. Each check appends its violations in the
// order discovered; the report preserves that order.
var checks = []check{
	checkStructure,
	checkCommentMatch,
	checkBotCompleteness,
}

// Run executes every applicable check against the parsed file. The oracle
// may be nil when no history-backed check is enabled. History failures are
// fatal and abort the run; violations never do.
func Run(ctx context.Context, file *ignorefile.File, oracle *history.Oracle, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.CallGit && oracle == nil {
		return nil, fmt.Errorf("%w: history checks enabled without a history source", ErrBadFlagCombination)
	}
	if opts.BotAuthor == "" {
		opts.BotAuthor = DefaultBotAuthor
	}

	report := &Report{Options: opts}
	for _, c := range checks {
		violations, err := c(ctx, file, oracle, opts)
		if err != nil {
			return nil, err
		}
		report.Violations = append(report.Violations, violations...)
	}
	report.ValidHashes = file.Hashes()
	return report, nil
}
