// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestRepo creates a repository with one commit by a human and one by
// the pre-commit.ci bot, returning their hashes in commit order.
func initTestRepo(t *testing.T) (dir string, human, bot string) {
	t.Helper()
	dir = t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	commit := func(name, email, message, content string) string {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte(content), 0o600))
		_, err := wt.Add("file.txt")
		require.NoError(t, err)
		hash, err := wt.Commit(message, &git.CommitOptions{
			Author: &object.Signature{Name: name, Email: email, When: time.Now()},
		})
		require.NoError(t, err)
		return hash.String()
	}

	human = commit("Jane Dev", "jane@example.com", "add file\n\nwith a body\n", "one\n")
	bot = commit("pre-commit-ci[bot]", "bot@pre-commit.ci", "[pre-commit.ci] auto fixes\n", "two\n")
	return dir, human, bot
}

func TestGitSource_ReachableCommits(t *testing.T) {
	dir, human, bot := initTestRepo(t)

	src, err := OpenGitSource(dir)
	require.NoError(t, err)

	commits, err := src.ReachableCommits(context.Background())
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "add file", commits[human].Subject())
	assert.Equal(t, "[pre-commit.ci] auto fixes", commits[bot].Subject())
}

func TestGitSource_CommitsByAuthor(t *testing.T) {
	dir, _, bot := initTestRepo(t)

	src, err := OpenGitSource(dir)
	require.NoError(t, err)

	commits, err := src.CommitsByAuthor(context.Background(), "pre-commit-ci[bot]")
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, bot, commits[0].Hash)

	none, err := src.CommitsByAuthor(context.Background(), "Nobody Here")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGitSource_DetectsDotGitFromSubdir(t *testing.T) {
	dir, human, _ := initTestRepo(t)
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	src, err := OpenGitSource(sub)
	require.NoError(t, err)

	commits, err := src.ReachableCommits(context.Background())
	require.NoError(t, err)
	assert.Contains(t, commits, human)
}

func TestOpenGitSource_NotARepository(t *testing.T) {
	_, err := OpenGitSource(t.TempDir())
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestGitSource_EmptyRepositoryUnavailable(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	src, err := OpenGitSource(dir)
	require.NoError(t, err)

	_, err = src.ReachableCommits(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
}
