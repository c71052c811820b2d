package git

import (
	"context"
	"reflect"
	"sort"

	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
)

// DiffSince compares the working tree refs.jsonl to a commit.
func DiffSince(ctx context.Context, repoRoot, commitRef string) (*Diff, error) {
	oldRefs, err := RefsAtCommit(ctx, repoRoot, commitRef)
	if err != nil {
		return nil, err
	}

	currentRefs, err := storage.ReadAll(config.RefsPath(repoRoot))
	if err != nil {
		return nil, err
	}

	return diffRefs(oldRefs, currentRefs), nil
}

// diffRefs computes the difference between two sets of references, keyed
// by ID. Each list is sorted by ID.
func diffRefs(oldRefs, currentRefs []reference.Reference) *Diff {
	oldMap := make(map[string]reference.Reference, len(oldRefs))
	for _, ref := range oldRefs {
		oldMap[ref.ID] = ref
	}

	d := &Diff{
		Added:    []reference.Reference{},
		Removed:  []reference.Reference{},
		Modified: []reference.Reference{},
	}
	currentIDs := make(map[string]bool, len(currentRefs))
	for _, ref := range currentRefs {
		currentIDs[ref.ID] = true
		old, exists := oldMap[ref.ID]
		switch {
		case !exists:
			d.Added = append(d.Added, ref)
		case !reflect.DeepEqual(old, ref):
			d.Modified = append(d.Modified, ref)
		}
	}
	for _, ref := range oldRefs {
		if !currentIDs[ref.ID] {
			d.Removed = append(d.Removed, ref)
		}
	}

	for _, list := range [][]reference.Reference{d.Added, d.Removed, d.Modified} {
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	}
	return d
}
