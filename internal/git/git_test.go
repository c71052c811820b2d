package git

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
)

func TestDiffRefs(t *testing.T) {
	old := []reference.Reference{
		{ID: "kept", Title: "Kept"},
		{ID: "changed", Title: "Before"},
		{ID: "gone", Title: "Gone"},
	}
	current := []reference.Reference{
		{ID: "new", Title: "New"},
		{ID: "kept", Title: "Kept"},
		{ID: "changed", Title: "After"},
	}

	d := diffRefs(old, current)

	require.Len(t, d.Added, 1)
	assert.Equal(t, "new", d.Added[0].ID)
	require.Len(t, d.Removed, 1)
	assert.Equal(t, "gone", d.Removed[0].ID)
	require.Len(t, d.Modified, 1)
	assert.Equal(t, "After", d.Modified[0].Title)
}

func TestDiffRefs_Empty(t *testing.T) {
	d := diffRefs(nil, nil)
	assert.NotNil(t, d.Added)
	assert.NotNil(t, d.Removed)
	assert.NotNil(t, d.Modified)
}

func TestParseLog(t *testing.T) {
	out := []byte("abc123def456\tImport Crossref refs\n\n0123456789ab\tAdd book\twith tab\n")
	commits := parseLog(out)
	require.Len(t, commits, 2)
	assert.Equal(t, CommitInfo{SHA: "abc123def456", Message: "Import Crossref refs"}, commits[0])
	assert.Equal(t, "Add book\twith tab", commits[1].Message)
}

func TestShortSHA(t *testing.T) {
	assert.Equal(t, "0123456", shortSHA("0123456789abcdef"))
	assert.Equal(t, "abc", shortSHA("abc"))
}

// newLibraryRepo creates a git repository holding an initialized library.
func newLibraryRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	gitRun(t, dir, "init", "-q")
	require.NoError(t, config.Init(dir))
	return dir
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	base := []string{"-C", dir, "-c", "user.name=Test", "-c", "user.email=test@example.org", "-c", "commit.gpgsign=false"}
	cmd := exec.Command("git", append(base, args...)...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v\n%s", args, out)
}

func commitRefs(t *testing.T, dir, msg string, refs ...reference.Reference) {
	t.Helper()
	require.NoError(t, storage.WriteAll(config.RefsPath(dir), refs))
	gitRun(t, dir, "add", "-A")
	gitRun(t, dir, "commit", "-q", "-m", msg)
}

func TestHistory(t *testing.T) {
	dir := newLibraryRepo(t)
	ctx := context.Background()

	a := reference.Reference{ID: "a", Title: "Alpha", Authors: []string{}, Type: reference.TypeBook}
	b := reference.Reference{ID: "b", Title: "Beta", Authors: []string{}, Type: reference.TypeBook}
	c := reference.Reference{ID: "c", Title: "Gamma", Authors: []string{}, Type: reference.TypeBook}

	commitRefs(t, dir, "add a", a)
	commitRefs(t, dir, "add b", a, b)
	commitRefs(t, dir, "add c", a, b, c)

	require.True(t, IsGitRepo(ctx, dir))
	require.True(t, IsFileTracked(ctx, dir), "refs.jsonl should be tracked")

	t.Run("refs at commit", func(t *testing.T) {
		refs, err := RefsAtCommit(ctx, dir, "HEAD~1")
		require.NoError(t, err)
		assert.Len(t, refs, 2)
	})

	t.Run("unknown commit", func(t *testing.T) {
		_, err := RefsAtCommit(ctx, dir, "no-such-branch")
		assert.ErrorIs(t, err, ErrCommitNotFound)
	})

	t.Run("diff since", func(t *testing.T) {
		b2 := b
		b2.Year = "2020"
		require.NoError(t, storage.WriteAll(config.RefsPath(dir), []reference.Reference{b2, c}))
		defer storage.WriteAll(config.RefsPath(dir), []reference.Reference{a, b, c})

		d, err := DiffSince(ctx, dir, "HEAD~1")
		require.NoError(t, err)
		require.Len(t, d.Added, 1)
		assert.Equal(t, "c", d.Added[0].ID)
		require.Len(t, d.Removed, 1)
		assert.Equal(t, "a", d.Removed[0].ID)
		require.Len(t, d.Modified, 1)
		assert.Equal(t, "b", d.Modified[0].ID)
	})

	t.Run("recent", func(t *testing.T) {
		recent, err := Recent(ctx, dir, RecentOptions{Limit: 2})
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "c", recent[0].Reference.ID)
		assert.Equal(t, "add c", recent[0].Commit.Message)
		assert.Equal(t, "b", recent[1].Reference.ID)
	})
}

func TestFindRepoRoot_NotGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	_, err := FindRepoRoot(context.Background(), dir)
	assert.ErrorIs(t, err, ErrNotGitRepo)
}
