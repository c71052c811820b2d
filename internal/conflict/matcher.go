package conflict

import (
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// MatchRegion pairs the references of both sides of a region, by DOI first
// (case-insensitive) and then by ID. Unpaired references keep file order.
func MatchRegion(region Region) MatchResult {
	var result MatchResult

	oursMatched := make([]bool, len(region.Ours))
	theirsMatched := make([]bool, len(region.Theirs))

	pair := func(key func(reference.Reference) string, by string) {
		index := make(map[string]int)
		for i, ref := range region.Ours {
			if k := key(ref); k != "" && !oursMatched[i] {
				if _, dup := index[k]; !dup {
					index[k] = i
				}
			}
		}
		for j, theirs := range region.Theirs {
			if theirsMatched[j] {
				continue
			}
			i, ok := index[key(theirs)]
			if !ok || oursMatched[i] {
				continue
			}
			result.Matches = append(result.Matches, Match{Ours: region.Ours[i], Theirs: theirs, MatchedBy: by})
			oursMatched[i] = true
			theirsMatched[j] = true
		}
	}

	pair(func(r reference.Reference) string { return strings.ToLower(strings.TrimSpace(r.DOI)) }, "doi")
	pair(func(r reference.Reference) string { return r.ID }, "id")

	for i, ref := range region.Ours {
		if !oursMatched[i] {
			result.OursOnly = append(result.OursOnly, ref)
		}
	}
	for j, ref := range region.Theirs {
		if !theirsMatched[j] {
			result.TheirsOnly = append(result.TheirsOnly, ref)
		}
	}
	return result
}
