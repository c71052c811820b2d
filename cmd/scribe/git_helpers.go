package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/scribehub/scribe/internal/git"
	"github.com/scribehub/scribe/internal/reference"
)

// mustCheckGit verifies the library is in a git repository with refs.jsonl
// tracked, exits on error.
func mustCheckGit(ctx context.Context, repoRoot string) {
	if !git.IsGitRepo(ctx, repoRoot) {
		exitWithError(ExitError, "not in a git repository\n  Hint: Initialize with 'git init' or navigate to a git repository")
	}
	if !git.IsFileTracked(ctx, repoRoot) {
		exitWithError(ExitError, "refs.jsonl not tracked by git\n  Hint: Run 'git add .scribehub/refs.jsonl' to track the file")
	}
}

// mustValidateCommit validates a commit reference, exits on error.
func mustValidateCommit(ctx context.Context, repoRoot, commitRef string) string {
	sha, err := git.ValidateCommit(ctx, repoRoot, commitRef)
	if err != nil {
		if errors.Is(err, git.ErrCommitNotFound) {
			exitWithError(ExitError, "commit not found: %s\n  Hint: Verify the commit exists with 'git log --oneline'", commitRef)
		}
		exitWithError(ExitError, "validating commit: %v", err)
	}
	return sha
}

// HistoryRef is a compact reference for diff and new output.
type HistoryRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Year    string `json:"year,omitempty"`
	Commit  string `json:"commit,omitempty"`
	Message string `json:"message,omitempty"`
}

func toHistoryRefs(refs []reference.Reference) []HistoryRef {
	out := make([]HistoryRef, 0, len(refs))
	for _, ref := range refs {
		out = append(out, HistoryRef{
			ID:      ref.ID,
			Title:   ref.Title,
			Authors: formatAuthorsShort(ref.Authors, 3),
			Year:    ref.YearLabel(),
		})
	}
	return out
}

func printHistoryRef(prefix string, r HistoryRef) {
	year := r.Year
	if year == "" {
		year = "n.d."
	}
	fmt.Printf("  %s %s: %s (%s, %s)\n", prefix, r.ID, truncateString(r.Title, ListTitleMaxLen), r.Authors, year)
}
