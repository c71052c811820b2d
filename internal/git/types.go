// Package git reads the history of refs.jsonl from the git repository the
// library lives in.
package git

import "github.com/scribehub/scribe/internal/reference"

// Diff represents changes to refs.jsonl between two git states.
type Diff struct {
	Added    []reference.Reference `json:"added"`
	Removed  []reference.Reference `json:"removed"`
	Modified []reference.Reference `json:"modified"`
}

// CommitInfo represents information about a git commit.
type CommitInfo struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
}

// RecentRef is a reference with the commit that added it.
type RecentRef struct {
	Reference reference.Reference `json:"reference"`
	Commit    CommitInfo          `json:"commit"`
}
