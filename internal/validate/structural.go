// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"context"
	"fmt"

	"github.com/blamelint/blamelint/internal/history"
	"github.com/blamelint/blamelint/internal/ignorefile"
)

// checkStructure emits syntax violations for malformed lines (always) and,
// flag-gated, reachability and preceding-comment violations for hash lines.
// Violations come out grouped per rule, each group in file order, matching
// the report sections.
func checkStructure(ctx context.Context, file *ignorefile.File, oracle *history.Oracle, opts Options) ([]Violation, error) {
	var violations []Violation

	for _, line := range file.Lines {
		if line.Kind == ignorefile.Malformed {
			violations = append(violations, Violation{
				Line:    line.Number,
				Rule:    RuleSyntax,
				Message: fmt.Sprintf("not a comment, blank line, or full commit hash: %q", line.Raw),
			})
		}
	}

	if opts.CallGit {
		for _, line := range file.Hashes() {
			reachable, err := oracle.IsReachable(ctx, line.Hash)
			if err != nil {
				return nil, err
			}
			if !reachable {
				violations = append(violations, Violation{
					Line:    line.Number,
					Rule:    RuleNotInHistory,
					Message: fmt.Sprintf("commit %s is not in the history of the checked-out branch", line.Hash),
				})
			}
		}
	}

	if opts.StrictComments {
		for _, line := range file.Hashes() {
			if len(file.CommentBlockAbove(line)) == 0 {
				violations = append(violations, Violation{
					Line:    line.Number,
					Rule:    RuleMissingComment,
					Message: fmt.Sprintf("commit %s has no comment line above it", line.Hash),
				})
			}
		}
	}

	return violations, nil
}
