// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history answers read-only questions about the commit history of
// the repository enclosing the validated file.
package history

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrUnavailable marks fatal history failures: not a git repository, no
// usable HEAD, or not enough history to walk. Callers abort the run on it.
var ErrUnavailable = errors.New("git history unavailable")

// Commit is one commit as reported by the history source.
type Commit struct {
	Hash    string
	Message string
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}

// Source lists commits. Implementations must be read-only; the repository
// is never mutated through this interface.
type Source interface {
	// ReachableCommits returns every commit reachable from the currently
	// checked-out HEAD, keyed by full hash.
	ReachableCommits(ctx context.Context) (map[string]Commit, error)

	// CommitsByAuthor returns all reachable commits whose author name equals
	// the given identity, newest first.
	CommitsByAuthor(ctx context.Context, author string) ([]Commit, error)
}

// Oracle memoizes a Source for the lifetime of one validation run. The
// reachable set and each distinct author list are fetched at most once no
// matter how many lines need a lookup; history walks are proportional to
// repository size, so this bounds them to O(1) per run.
type Oracle struct {
	source Source

	mu        sync.Mutex
	reachable map[string]Commit
	byAuthor  map[string][]Commit
}

// NewOracle wraps source with an empty cache. Caches never outlive a run.
func NewOracle(source Source) *Oracle {
	return &Oracle{
		source:   source,
		byAuthor: make(map[string][]Commit),
	}
}

// IsReachable reports whether hash is reachable from the checked-out HEAD.
func (o *Oracle) IsReachable(ctx context.Context, hash string) (bool, error) {
	_, ok, err := o.Lookup(ctx, hash)
	return ok, err
}

// Lookup returns the reachable commit with the given hash, if any.
func (o *Oracle) Lookup(ctx context.Context, hash string) (Commit, bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.reachable == nil {
		commits, err := o.source.ReachableCommits(ctx)
		if err != nil {
			return Commit{}, false, err
		}
		o.reachable = commits
	}

	commit, ok := o.reachable[hash]
	return commit, ok, nil
}

// CommitsByAuthor returns the commits authored by the given identity.
func (o *Oracle) CommitsByAuthor(ctx context.Context, author string) ([]Commit, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if commits, ok := o.byAuthor[author]; ok {
		return commits, nil
	}

	commits, err := o.source.CommitsByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	o.byAuthor[author] = commits
	return commits, nil
}
