package citation

import (
	"context"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/style"
	"github.com/scribehub/scribe/internal/thai"
)

var markupTag = regexp.MustCompile(`</?em>`)

// StripMarkup removes the emphasis tags from a formatted entry.
func StripMarkup(s string) string {
	return markupTag.ReplaceAllString(s, "")
}

// Bibliography formats every reference in the given style and returns the
// entries sorted alphabetically by their text without markup. References
// are formatted concurrently; the input is not modified.
func Bibliography(ctx context.Context, refs []reference.Reference, s style.Style) ([]string, error) {
	entries := make([]string, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range refs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries[i] = Format(refs[i], s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries sorts formatted entries in place by their plain text using
// Unicode collation, so accented Latin and Thai entries order correctly.
func SortEntries(entries []string) {
	keys := make([]string, len(entries))
	tag := language.English
	for i, e := range entries {
		keys[i] = sortKey(e)
		if thai.IsThai(keys[i]) {
			tag = language.Thai
		}
	}

	c := collate.New(tag, collate.IgnoreCase)
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return c.CompareString(keys[idx[a]], keys[idx[b]]) < 0
	})

	sorted := make([]string, len(entries))
	for i, j := range idx {
		sorted[i] = entries[j]
	}
	copy(entries, sorted)
}

func sortKey(entry string) string {
	return strings.TrimLeft(StripMarkup(entry), `"[(`)
}
