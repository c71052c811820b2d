package citation

import (
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// ieeeMaxListed is the largest author list IEEE prints in full.
const ieeeMaxListed = 6

// ieee implements the IEEE reference style.
type ieee struct{}

func (ieee) format(ref reference.Reference) string {
	var rest []string
	if ref.JournalName != "" {
		rest = append(rest, em(ref.JournalName))
	}
	if ref.Volume != "" {
		rest = append(rest, "vol. "+ref.Volume)
	}
	if ref.Issue != "" {
		rest = append(rest, "no. "+ref.Issue)
	}
	if ref.Pages != "" {
		rest = append(rest, pageRange(ref.Pages))
	}
	if year := ref.YearLabel(); year != "" {
		rest = append(rest, year)
	}

	var b strings.Builder
	if authors := ieeeAuthors(ref.Authors); authors != "" {
		b.WriteString(authors + ", ")
	}
	if len(rest) == 0 {
		b.WriteString(quoted(ref.Title, "."))
		return b.String()
	}
	b.WriteString(quoted(ref.Title, ","))
	b.WriteString(" ")
	b.WriteString(terminate(strings.Join(rest, ", "), "."))
	return b.String()
}

// inText cites by record identity, not bibliography position; callers that
// need sequential numbers renumber the list themselves. A reference without
// an ID cites as "[]".
func (ieee) inText(ref reference.Reference) string {
	return "[" + ref.ID + "]"
}

// ieeeAuthors lists "F. M. Last" names joined with a final "and", or the
// first author and "et al." beyond six.
func ieeeAuthors(authors []string) string {
	n := len(authors)
	if n == 0 {
		return ""
	}
	if n > ieeeMaxListed {
		return ieeeName(authors[0]) + " et al."
	}

	names := make([]string, n)
	for i, a := range authors {
		names[i] = ieeeName(a)
	}
	switch n {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:n-1], ", ") + ", and " + names[n-1]
	}
}

func ieeeName(author string) string {
	n := reference.ParseName(author)
	initials := n.Initials()
	if n.Thai || initials == "" {
		return n.Family
	}
	return initials + " " + n.Family
}
