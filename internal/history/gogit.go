// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitSource reads history in-process with go-git. No git binary is needed.
type GitSource struct {
	repo *git.Repository
}

// OpenGitSource opens the repository enclosing dir, walking up to find the
// .git directory the way the git CLI does. A missing repository is an
// ErrUnavailable failure.
func OpenGitSource(dir string) (*GitSource, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening repository at %s: %v", ErrUnavailable, dir, err)
	}
	return &GitSource{repo: repo}, nil
}

func (s *GitSource) ReachableCommits(ctx context.Context) (map[string]Commit, error) {
	commits := make(map[string]Commit)
	err := s.walk(ctx, func(commit *object.Commit) {
		commits[commit.Hash.String()] = Commit{
			Hash:    commit.Hash.String(),
			Message: commit.Message,
		}
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

func (s *GitSource) CommitsByAuthor(ctx context.Context, author string) ([]Commit, error) {
	var commits []Commit
	err := s.walk(ctx, func(commit *object.Commit) {
		if commit.Author.Name == author {
			commits = append(commits, Commit{
				Hash:    commit.Hash.String(),
				Message: commit.Message,
			})
		}
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// walk visits every commit reachable from HEAD, newest first.
func (s *GitSource) walk(ctx context.Context, visit func(*object.Commit)) error {
	head, err := s.repo.Head()
	if err != nil {
		return fmt.Errorf("%w: resolving HEAD: %v", ErrUnavailable, err)
	}

	iter, err := s.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return fmt.Errorf("%w: reading log from %s: %v", ErrUnavailable, head.Hash(), err)
	}
	defer iter.Close()

	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		visit(commit)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: walking history: %v", ErrUnavailable, err)
	}
	return nil
}
