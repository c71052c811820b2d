package export

import (
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// File conventions for RIS output.
const (
	RISExtension = ".ris"
	RISMIMEType  = "application/x-research-info-systems"
)

// risEnd terminates every RIS record.
const risEnd = "ER  - "

// ToRIS converts a reference to a single RIS record, one "TAG  - value"
// line per field.
func ToRIS(ref reference.Reference) string {
	ref = reference.Normalize(ref)

	var lines []string
	tag := func(name, value string) {
		if value != "" {
			lines = append(lines, name+"  - "+value)
		}
	}

	tag("TY", risType(ref.Type))
	tag("TI", ref.Title)
	for _, a := range ref.Authors {
		tag("AU", a)
	}
	tag("PY", ref.Year)
	if ref.Type == reference.TypeJournal {
		tag("JO", ref.JournalName)
	} else {
		tag("T2", ref.JournalName)
	}
	tag("PB", ref.Publisher)
	tag("VL", ref.Volume)
	tag("IS", ref.Issue)
	if start, end, ok := splitPages(ref.Pages); ok {
		tag("SP", start)
		tag("EP", end)
	} else {
		tag("SP", ref.Pages)
	}
	tag("DO", ref.DOI)
	tag("SN", ref.ISBN)
	tag("UR", ref.URL)
	tag("AB", ref.Abstract)
	tag("N1", ref.Notes)
	for _, kw := range ref.Tags {
		tag("KW", kw)
	}

	lines = append(lines, risEnd)
	return strings.Join(lines, "\n") + "\n"
}

// ToRISList converts multiple references to RIS, separating records with a
// blank line. An empty list yields an empty string.
func ToRISList(refs []reference.Reference) string {
	records := make([]string, 0, len(refs))
	for _, ref := range refs {
		records = append(records, ToRIS(ref))
	}
	return strings.Join(records, "\n")
}

// risType returns the RIS type tag for a reference type.
func risType(t reference.Type) string {
	switch t {
	case reference.TypeBook:
		return "BOOK"
	case reference.TypeJournal:
		return "JOUR"
	case reference.TypeConference:
		return "CONF"
	case reference.TypeThesis:
		return "THES"
	case reference.TypeReport:
		return "RPRT"
	case reference.TypeWebsite:
		return "ELEC"
	default:
		return "GEN"
	}
}

// splitPages splits "436-444" (or "436--444", "436–444") into its start
// and end page.
func splitPages(pages string) (start, end string, ok bool) {
	i := strings.IndexAny(pages, "-–")
	if i < 0 {
		return "", "", false
	}
	start = strings.TrimSpace(pages[:i])
	end = strings.TrimSpace(strings.TrimLeft(pages[i:], "-–"))
	return start, end, true
}
