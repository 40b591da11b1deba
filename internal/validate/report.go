// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/blamelint/blamelint/internal/ignorefile"
)

// Report is the aggregated outcome of one validation run: every violation
// from every active check, in discovery order.
type Report struct {
	Options     Options
	Violations  []Violation
	ValidHashes []ignorefile.Line
}

// OK reports whether the run passed.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// ByRule returns the violations emitted by one rule, in discovery order.
func (r *Report) ByRule(rule Rule) []Violation {
	return lo.Filter(r.Violations, func(v Violation, _ int) bool {
		return v.Rule == rule
	})
}

// ExitCode folds the report into a process exit status: 0 on pass,
// otherwise the OR of each violated rule's bit.
func (r *Report) ExitCode() int {
	code := 0
	for _, v := range r.Violations {
		code |= v.Rule.ExitBit()
	}
	return code
}

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	lineColor = color.New(color.FgYellow)
)

// Write renders the report. With listHashes, the well-formed hash lines are
// printed first, the way the original pre-commit output did. Every violation
// is printed, not just the first.
func (r *Report) Write(w io.Writer, listHashes bool) {
	if listHashes {
		fmt.Fprintf(w, "Valid hashes (%d):\n", len(r.ValidHashes))
		for _, l := range r.ValidHashes {
			fmt.Fprintf(w, "  line %d: %s\n", l.Number, l.Hash)
		}
	}

	r.writeSection(w, RuleSyntax, true, "No syntax errors found")
	r.writeSection(w, RuleNotInHistory, r.Options.CallGit, "All commits are present in the git history")
	r.writeSection(w, RuleMissingComment, r.Options.StrictComments, "All commit lines have comments above them")
	r.writeSection(w, RuleCommentMismatch, r.Options.StrictCommentsGit, "All comments match their commit subjects")
	r.writeSection(w, RuleMissingBotCommit, r.Options.PreCommitCI, fmt.Sprintf("All %s commits are listed", r.Options.BotAuthor))

	if r.OK() {
		passColor.Fprintln(w, "PASS")
	} else {
		failColor.Fprintf(w, "FAIL: %d violation(s)\n", len(r.Violations))
	}
}

func (r *Report) writeSection(w io.Writer, rule Rule, active bool, allClear string) {
	if !active {
		return
	}

	violations := r.ByRule(rule)
	if len(violations) == 0 {
		fmt.Fprintf(w, "%s\n", allClear)
		return
	}

	failColor.Fprintf(w, "%s (%d):\n", rule, len(violations))
	for _, v := range violations {
		if v.Line > 0 {
			lineColor.Fprintf(w, "  line %d: ", v.Line)
		} else {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprintf(w, "%s\n", v.Message)
	}
}
