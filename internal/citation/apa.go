package citation

import (
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// apaMaxListed is the largest author list APA 7 prints in full.
const apaMaxListed = 20

// apa implements APA 7th edition. Harvard uses the same output.
type apa struct{}

func (apa) format(ref reference.Reference) string {
	var segs []string

	if authors := apaAuthors(ref.Authors); authors != "" {
		segs = append(segs, terminate(authors, "."))
	}
	if year := ref.YearLabel(); year != "" {
		segs = append(segs, "("+year+").")
	}

	segs = append(segs, apaTitle(ref))

	if ref.JournalName != "" {
		segs = append(segs, apaContainer(ref))
	} else if ref.Publisher != "" {
		segs = append(segs, terminate(ref.Publisher, "."))
	}

	if l := link(ref); l != "" {
		segs = append(segs, l)
	}

	return strings.Join(segs, " ")
}

func (apa) inText(ref reference.Reference) string {
	who := shortAuthors(ref.Authors, "&", "et al.")
	if who == "" {
		who = titleStub(ref.Title)
	}
	year := ref.YearLabel()
	if year == "" {
		year = "n.d."
	}
	return "(" + who + ", " + year + ")"
}

// apaTitle italicizes standalone works; an edition follows in parentheses.
func apaTitle(ref reference.Reference) string {
	if !ref.Type.Standalone() {
		return terminate(ref.Title, ".")
	}
	if ref.Edition != "" {
		return em(ref.Title) + " (" + editionLabel(ref.Edition) + ")."
	}
	return emTitle(ref.Title)
}

// apaContainer renders "<em>Journal</em>, <em>Vol</em>(Issue), Pages."
func apaContainer(ref reference.Reference) string {
	var b strings.Builder
	b.WriteString(em(ref.JournalName))
	switch {
	case ref.Volume != "":
		b.WriteString(", " + em(ref.Volume))
		if ref.Issue != "" {
			b.WriteString("(" + ref.Issue + ")")
		}
	case ref.Issue != "":
		b.WriteString(", (" + ref.Issue + ")")
	}
	if ref.Pages != "" {
		b.WriteString(", " + ref.Pages)
	}
	b.WriteString(".")
	return b.String()
}

// apaAuthors lists authors as "A", "A & B", "A, B, & C", or for more than
// twenty, the first nineteen, an ellipsis and the last.
func apaAuthors(authors []string) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = apaName(a)
	}

	n := len(names)
	switch {
	case n == 0:
		return ""
	case n == 1:
		return names[0]
	case n == 2:
		return names[0] + " & " + names[1]
	case n > apaMaxListed:
		return strings.Join(names[:apaMaxListed-1], ", ") + ", ... " + names[n-1]
	default:
		return strings.Join(names[:n-1], ", ") + ", & " + names[n-1]
	}
}

// apaName renders "Surname, F. M."; Thai names are left as written.
func apaName(author string) string {
	n := reference.ParseName(author)
	initials := n.Initials()
	if n.Thai || initials == "" {
		return n.Family
	}
	return n.Family + ", " + initials
}
