package git

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
)

// RecentOptions bounds a Recent query. Zero values mean no bound.
type RecentOptions struct {
	Limit int
	Since time.Time
}

// Recent returns references still in the library, newest addition first,
// with the commit that added each one.
func Recent(ctx context.Context, repoRoot string, opts RecentOptions) ([]RecentRef, error) {
	commits, err := commitsTouchingRefs(ctx, repoRoot, opts.Since)
	if err != nil {
		return nil, err
	}

	current, err := storage.ReadAll(config.RefsPath(repoRoot))
	if err != nil {
		return nil, err
	}
	inLibrary := make(map[string]reference.Reference, len(current))
	for _, ref := range current {
		inLibrary[ref.ID] = ref
	}

	var result []RecentRef
	seen := make(map[string]bool)

	for _, commit := range commits {
		refsAtCommit, err := RefsAtCommit(ctx, repoRoot, commit.SHA)
		if err != nil {
			return nil, err
		}
		parentIDs, err := parentRefIDs(ctx, repoRoot, commit.SHA)
		if err != nil {
			return nil, err
		}

		for _, ref := range refsAtCommit {
			if seen[ref.ID] || parentIDs[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			latest, ok := inLibrary[ref.ID]
			if !ok {
				continue
			}
			result = append(result, RecentRef{
				Reference: latest,
				Commit:    CommitInfo{SHA: shortSHA(commit.SHA), Message: commit.Message},
			})
			if opts.Limit > 0 && len(result) >= opts.Limit {
				return result, nil
			}
		}
	}
	return result, nil
}

// parentRefIDs returns the IDs in refs.jsonl at the first parent of sha.
// A root commit has no parent and yields an empty set.
func parentRefIDs(ctx context.Context, repoRoot, sha string) (map[string]bool, error) {
	ids := make(map[string]bool)
	if _, err := ValidateCommit(ctx, repoRoot, sha+"^"); err != nil {
		return ids, nil
	}
	refs, err := RefsAtCommit(ctx, repoRoot, sha+"^")
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		ids[ref.ID] = true
	}
	return ids, nil
}

// commitsTouchingRefs returns commits that touched refs.jsonl, newest first.
func commitsTouchingRefs(ctx context.Context, repoRoot string, since time.Time) ([]CommitInfo, error) {
	args := []string{"log", "--format=%H%x09%s"}
	if !since.IsZero() {
		args = append(args, "--since="+since.UTC().Format(time.RFC3339))
	}
	args = append(args, "--", refsPathspec)

	out, err := run(ctx, repoRoot, args...)
	if err != nil {
		// No commits yet
		return nil, nil
	}
	return parseLog(out), nil
}

// parseLog parses "sha<TAB>subject" lines.
func parseLog(out []byte) []CommitInfo {
	var commits []CommitInfo
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		sha, msg, _ := strings.Cut(scanner.Text(), "\t")
		if sha = strings.TrimSpace(sha); sha != "" {
			commits = append(commits, CommitInfo{SHA: sha, Message: msg})
		}
	}
	return commits
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
