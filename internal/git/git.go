package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
)

// ErrNotGitRepo indicates the directory is not a git repository.
var ErrNotGitRepo = errors.New("not a git repository")

// ErrCommitNotFound indicates the specified commit does not exist.
var ErrCommitNotFound = errors.New("commit not found")

// refsPathspec names refs.jsonl relative to the library root. The "./"
// prefix makes git resolve it from -C, so libraries in a subdirectory of
// the git work tree are found too.
var refsPathspec = "./" + filepath.ToSlash(filepath.Join(config.ScribeDir, config.RefsFile))

// run executes git in dir and returns its stdout.
func run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// FindRepoRoot finds the root of the git repository containing the given path.
// Returns ErrNotGitRepo if not in a git repository.
func FindRepoRoot(ctx context.Context, path string) (string, error) {
	out, err := run(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", ErrNotGitRepo
	}
	return strings.TrimSpace(string(out)), nil
}

// IsGitRepo checks if the given path is inside a git repository.
func IsGitRepo(ctx context.Context, path string) bool {
	_, err := FindRepoRoot(ctx, path)
	return err == nil
}

// ValidateCommit verifies that a commit reference exists.
// Supports SHA, HEAD, HEAD~N, branch names, tags, etc.
// Returns the resolved full SHA or ErrCommitNotFound.
func ValidateCommit(ctx context.Context, repoRoot, commitRef string) (string, error) {
	out, err := run(ctx, repoRoot, "rev-parse", "--verify", "--quiet", commitRef+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCommitNotFound, commitRef)
	}
	return strings.TrimSpace(string(out)), nil
}

// RefsAtCommit retrieves refs.jsonl as it was at a commit. A commit that
// predates the library yields an empty slice.
func RefsAtCommit(ctx context.Context, repoRoot, commitRef string) ([]reference.Reference, error) {
	sha, err := ValidateCommit(ctx, repoRoot, commitRef)
	if err != nil {
		return nil, err
	}

	out, err := run(ctx, repoRoot, "show", sha+":"+refsPathspec)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return []reference.Reference{}, nil
		}
		return nil, fmt.Errorf("getting refs.jsonl at %s: %w", commitRef, err)
	}

	refs, err := storage.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("refs.jsonl at %s: %w", commitRef, err)
	}
	return refs, nil
}

// IsFileTracked checks if refs.jsonl is tracked by git.
func IsFileTracked(ctx context.Context, repoRoot string) bool {
	out, err := run(ctx, repoRoot, "ls-files", "--", refsPathspec)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) != ""
}
