// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/blamelint/blamelint/internal/history"
	"github.com/blamelint/blamelint/internal/ignorefile"
)

// checkCommentMatch verifies that the comment block above each hash line
// matches the subject of the commit it names.
//
// Matching policy: the comment lines are joined with single spaces (the '#'
// and one following space already stripped per line) and the result, after
// trimming outer whitespace, must be a non-empty prefix of the commit
// subject. Exact equality is the full-length prefix. An empty comment block
// never matches.
func checkCommentMatch(ctx context.Context, file *ignorefile.File, oracle *history.Oracle, opts Options) ([]Violation, error) {
	if !opts.StrictCommentsGit {
		return nil, nil
	}

	var violations []Violation
	for _, line := range file.Hashes() {
		block := file.CommentBlockAbove(line)
		if len(block) == 0 {
			// Already reported as missing-comment by the structural check.
			continue
		}

		commit, ok, err := oracle.Lookup(ctx, line.Hash)
		if err != nil {
			return nil, err
		}
		if !ok {
			// Already reported as not-in-history; there is no message to
			// compare against.
			continue
		}

		comment := joinComment(block)
		subject := commit.Subject()
		if comment == "" || !strings.HasPrefix(subject, comment) {
			violations = append(violations, Violation{
				Line:    line.Number,
				Rule:    RuleCommentMismatch,
				Message: fmt.Sprintf("comment %q does not match commit subject %q", comment, subject),
			})
		}
	}
	return violations, nil
}

func joinComment(block []ignorefile.Line) string {
	parts := lo.Map(block, func(l ignorefile.Line, _ int) string {
		return strings.TrimSpace(l.Comment)
	})
	return strings.TrimSpace(strings.Join(parts, " "))
}
