package citation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

var (
	latinSuffixes = strings.Split("abcdefghijklmnopqrstuvwxyz", "")
	thaiSuffixes  = strings.Fields("ก ข ค ง จ ฉ ช ซ ฌ ญ ฎ ฏ ฐ ฑ ฒ ณ ด ต ถ ท ธ น บ ป ผ ฝ พ ฟ ภ ม ย ร ล ว ศ ษ ส ห ฬ อ ฮ")
)

type suffixGroup struct {
	firstAuthor string
	year        string
}

// AssignYearSuffixes returns copies of refs where works sharing the first
// author's surname and the year are told apart by a year suffix, assigned in
// title order. Co-authors are ignored, since "et al." citations hide them.
// Thai groups use Thai consonants (ก, ข, …), others use letters (a, b, …).
// References that do not collide get an empty suffix.
func AssignYearSuffixes(refs []reference.Reference) []reference.Reference {
	out := make([]reference.Reference, len(refs))
	copy(out, refs)

	groups := make(map[suffixGroup][]int)
	for i := range out {
		out[i].YearSuffix = ""
		if out[i].Year == "" || len(out[i].Authors) == 0 {
			continue
		}
		k := suffixGroup{firstAuthor: strings.ToLower(reference.Surname(out[i].Authors[0])), year: out[i].Year}
		groups[k] = append(groups[k], i)
	}

	for _, idx := range groups {
		if len(idx) < 2 {
			continue
		}
		sort.SliceStable(idx, func(a, b int) bool {
			ta, tb := strings.ToLower(out[idx[a]].Title), strings.ToLower(out[idx[b]].Title)
			if ta != tb {
				return ta < tb
			}
			return out[idx[a]].ID < out[idx[b]].ID
		})

		letters := latinSuffixes
		for _, i := range idx {
			if hasThaiContent(out[i]) {
				letters = thaiSuffixes
				break
			}
		}
		for n, i := range idx {
			out[i].YearSuffix = suffixAt(letters, n)
		}
	}

	return out
}

// suffixAt falls back to numbers once the alphabet is exhausted.
func suffixAt(letters []string, n int) string {
	if n < len(letters) {
		return letters[n]
	}
	return strconv.Itoa(n + 1)
}
