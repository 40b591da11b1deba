// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource counts fetches so memoization can be asserted.
type fakeSource struct {
	commits  map[string]Commit
	byAuthor map[string][]Commit
	err      error

	reachableCalls int
	authorCalls    int
}

func (f *fakeSource) ReachableCommits(ctx context.Context) (map[string]Commit, error) {
	f.reachableCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.commits, nil
}

func (f *fakeSource) CommitsByAuthor(ctx context.Context, author string) ([]Commit, error) {
	f.authorCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byAuthor[author], nil
}

const (
	hashA = "fb35435f66eeb8b4825f7022cc2ab315e5379483"
	hashB = "37740d43064bc13445b19ff2d3c5f1154f202896"
)

func TestCommit_Subject(t *testing.T) {
	assert.Equal(t, "fix typo", Commit{Message: "fix typo\n\nlonger body\n"}.Subject())
	assert.Equal(t, "single line", Commit{Message: "single line"}.Subject())
	assert.Equal(t, "", Commit{}.Subject())
}

func TestOracle_IsReachable(t *testing.T) {
	src := &fakeSource{commits: map[string]Commit{
		hashA: {Hash: hashA, Message: "fix typo"},
	}}
	oracle := NewOracle(src)
	ctx := context.Background()

	ok, err := oracle.IsReachable(ctx, hashA)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = oracle.IsReachable(ctx, hashB)
	require.NoError(t, err)
	assert.False(t, ok)

	// The reachable set is fetched exactly once no matter how many lookups.
	_, _, err = oracle.Lookup(ctx, hashA)
	require.NoError(t, err)
	assert.Equal(t, 1, src.reachableCalls)
}

func TestOracle_Lookup(t *testing.T) {
	src := &fakeSource{commits: map[string]Commit{
		hashA: {Hash: hashA, Message: "fix typo\n\nbody"},
	}}
	oracle := NewOracle(src)

	commit, ok, err := oracle.Lookup(context.Background(), hashA)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fix typo", commit.Subject())
}

func TestOracle_CommitsByAuthorMemoized(t *testing.T) {
	src := &fakeSource{byAuthor: map[string][]Commit{
		"pre-commit-ci[bot]": {{Hash: hashA, Message: "autoupdate"}},
	}}
	oracle := NewOracle(src)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		commits, err := oracle.CommitsByAuthor(ctx, "pre-commit-ci[bot]")
		require.NoError(t, err)
		require.Len(t, commits, 1)
	}
	assert.Equal(t, 1, src.authorCalls)

	// A distinct author is a distinct fetch, also memoized.
	commits, err := oracle.CommitsByAuthor(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, commits)
	_, err = oracle.CommitsByAuthor(ctx, "someone-else")
	require.NoError(t, err)
	assert.Equal(t, 2, src.authorCalls)
}

func TestOracle_PropagatesErrors(t *testing.T) {
	src := &fakeSource{err: ErrUnavailable}
	oracle := NewOracle(src)
	ctx := context.Background()

	_, err := oracle.IsReachable(ctx, hashA)
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = oracle.CommitsByAuthor(ctx, "pre-commit-ci[bot]")
	assert.True(t, errors.Is(err, ErrUnavailable))
}
