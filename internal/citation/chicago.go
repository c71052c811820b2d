package citation

import (
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// chicago implements the Chicago author-date bibliography.
type chicago struct{}

func (chicago) format(ref reference.Reference) string {
	var segs []string

	if authors := invertedAuthors(ref.Authors); authors != "" {
		segs = append(segs, terminate(authors, "."))
	}

	switch ref.Type {
	case reference.TypeBook, reference.TypeThesis, reference.TypeReport:
		segs = append(segs, emTitle(ref.Title))
	default:
		segs = append(segs, quoted(ref.Title, "."))
	}

	if ref.Type == reference.TypeJournal {
		if c := chicagoJournal(ref); c != "" {
			segs = append(segs, c)
		}
	} else {
		var pub []string
		if ref.Publisher != "" {
			pub = append(pub, ref.Publisher)
		}
		if year := ref.YearLabel(); year != "" {
			pub = append(pub, year)
		}
		if len(pub) > 0 {
			segs = append(segs, terminate(strings.Join(pub, ", "), "."))
		}
	}

	if l := link(ref); l != "" {
		segs = append(segs, terminate(l, "."))
	}

	return strings.Join(segs, " ")
}

// chicagoJournal renders "<em>Journal</em> Vol, no. Issue (Year): Pages."
func chicagoJournal(ref reference.Reference) string {
	var parts []string
	if ref.JournalName != "" {
		parts = append(parts, em(ref.JournalName))
	}
	if ref.Volume != "" {
		v := ref.Volume
		if ref.Issue != "" {
			v += ","
		}
		parts = append(parts, v)
	}
	if ref.Issue != "" {
		parts = append(parts, "no. "+ref.Issue)
	}
	if year := ref.YearLabel(); year != "" {
		parts = append(parts, "("+year+")")
	}
	if len(parts) == 0 && ref.Pages == "" {
		return ""
	}

	s := strings.Join(parts, " ")
	if ref.Pages != "" {
		if s == "" {
			s = ref.Pages
		} else {
			s += ": " + ref.Pages
		}
	}
	return terminate(s, ".")
}

func (chicago) inText(ref reference.Reference) string {
	who := shortAuthors(ref.Authors, "and", "et al.")
	if who == "" {
		who = titleStub(ref.Title)
	}
	if year := ref.YearLabel(); year != "" {
		return "(" + who + " " + year + ")"
	}
	return "(" + who + ")"
}
