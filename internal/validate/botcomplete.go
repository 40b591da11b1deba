// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"context"
	"fmt"

	"github.com/blamelint/blamelint/internal/history"
	"github.com/blamelint/blamelint/internal/ignorefile"
)

// checkBotCompleteness verifies that every commit authored by the configured
// automation identity is listed somewhere in the file. Findings are
// file-level omissions, not line errors, so Line is 0.
func checkBotCompleteness(ctx context.Context, file *ignorefile.File, oracle *history.Oracle, opts Options) ([]Violation, error) {
	if !opts.PreCommitCI {
		return nil, nil
	}

	commits, err := oracle.CommitsByAuthor(ctx, opts.BotAuthor)
	if err != nil {
		return nil, err
	}

	listed := file.HashSet()
	var violations []Violation
	for _, commit := range commits {
		if _, ok := listed[commit.Hash]; ok {
			continue
		}
		violations = append(violations, Violation{
			Line:    0,
			Rule:    RuleMissingBotCommit,
			Message: fmt.Sprintf("commit %s (%q) by %s is not listed", commit.Hash, commit.Subject(), opts.BotAuthor),
		})
	}
	return violations, nil
}
