package citation

import (
	"strings"

	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/thai"
)

const (
	thaiAnd    = "และ"
	thaiEtAl   = "และคณะ"
	thaiNoDate = thai.NoDate
)

// thaiUniversity is the shared Thai-university layout. The institution
// label does not change the output.
type thaiUniversity struct {
	institution string
}

func (thaiUniversity) format(ref reference.Reference) string {
	var segs []string

	if authors := thaiAuthors(ref.Authors); authors != "" {
		segs = append(segs, terminate(authors, "."))
	}
	segs = append(segs, "("+thaiYear(ref)+").")

	if ref.Type.Standalone() {
		segs = append(segs, emTitle(ref.Title))
	} else {
		segs = append(segs, terminate(ref.Title, "."))
	}

	if ref.JournalName != "" {
		var b strings.Builder
		b.WriteString(em(ref.JournalName))
		if ref.Volume != "" {
			b.WriteString(", " + ref.Volume)
			if ref.Issue != "" {
				b.WriteString("(" + ref.Issue + ")")
			}
		}
		if ref.Pages != "" {
			b.WriteString(", " + ref.Pages)
		}
		segs = append(segs, terminate(b.String(), "."))
	} else if ref.Publisher != "" {
		segs = append(segs, terminate(ref.Publisher, "."))
	}

	if l := link(ref); l != "" {
		segs = append(segs, l)
	}

	return strings.Join(segs, " ")
}

func (thaiUniversity) inText(ref reference.Reference) string {
	who := shortAuthors(ref.Authors, thaiAnd, thaiEtAl)
	if who == "" {
		who = titleStub(ref.Title)
	}
	return "(" + who + ", " + thaiYear(ref) + ")"
}

// thaiAuthors keeps names as written: "A", "A และ B", or "A และคณะ".
func thaiAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " " + thaiAnd + " " + authors[1]
	default:
		return authors[0] + " " + thaiEtAl
	}
}

// thaiYear returns the year with its suffix, in the Buddhist Era when the
// source itself is Thai, or ม.ป.ป. when no year is known.
func thaiYear(ref reference.Reference) string {
	if ref.Year == "" {
		return thaiNoDate
	}
	year := ref.Year
	if hasThaiContent(ref) {
		year = thai.ConvertToThaiYear(year)
	}
	return year + ref.YearSuffix
}

func hasThaiContent(ref reference.Reference) bool {
	if thai.AnyThai(ref.Title, ref.Publisher, ref.JournalName) {
		return true
	}
	return thai.AnyThai(ref.Authors...)
}
