package citation

import (
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// mla implements MLA 9th edition.
type mla struct{}

func (mla) format(ref reference.Reference) string {
	var segs []string

	if authors := invertedAuthors(ref.Authors); authors != "" {
		segs = append(segs, terminate(authors, "."))
	}

	switch ref.Type {
	case reference.TypeJournal, reference.TypeConference, reference.TypeWebsite:
		segs = append(segs, quoted(ref.Title, "."))
	default:
		segs = append(segs, emTitle(ref.Title))
	}

	var elems []string
	if ref.JournalName != "" {
		elems = append(elems, em(ref.JournalName))
	}
	if ref.Volume != "" {
		elems = append(elems, "vol. "+ref.Volume)
	}
	if ref.Issue != "" {
		elems = append(elems, "no. "+ref.Issue)
	}
	if ref.Publisher != "" {
		elems = append(elems, ref.Publisher)
	}
	if year := ref.YearLabel(); year != "" {
		elems = append(elems, year)
	}
	if ref.Pages != "" {
		elems = append(elems, pageRange(ref.Pages))
	}
	if len(elems) > 0 {
		segs = append(segs, terminate(strings.Join(elems, ", "), "."))
	}

	return strings.Join(segs, " ")
}

func (mla) inText(ref reference.Reference) string {
	who := shortAuthors(ref.Authors, "and", "et al.")
	if who == "" {
		who = titleStub(ref.Title)
	}
	return "(" + who + ")"
}

// invertedAuthors is the MLA/Chicago author list: the first author inverted,
// a second author in natural order, three or more collapsed to "et al.".
func invertedAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return reference.ParseName(authors[0]).Inverted()
	case 2:
		return reference.ParseName(authors[0]).Inverted() + ", and " + reference.ParseName(authors[1]).Natural()
	default:
		return reference.ParseName(authors[0]).Inverted() + ", et al."
	}
}
