package importer

import (
	"regexp"

	"github.com/scribehub/scribe/internal/export"
	"github.com/scribehub/scribe/internal/reference"
)

var risTypes = map[string]reference.Type{
	"BOOK":   reference.TypeBook,
	"EBOOK":  reference.TypeBook,
	"CHAP":   reference.TypeBook,
	"ECHAP":  reference.TypeBook,
	"JOUR":   reference.TypeJournal,
	"JFULL":  reference.TypeJournal,
	"MGZN":   reference.TypeJournal,
	"EJOUR":  reference.TypeJournal,
	"CONF":   reference.TypeConference,
	"CPAPER": reference.TypeConference,
	"THES":   reference.TypeThesis,
	"RPRT":   reference.TypeReport,
	"ELEC":   reference.TypeWebsite,
	"WEB":    reference.TypeWebsite,
	"BLOG":   reference.TypeWebsite,
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// FromRIS converts the records of an RIS document into references.
// Records without an ER terminator are skipped.
func FromRIS(text string) []reference.Reference {
	records := export.ParseRIS(text)
	refs := make([]reference.Reference, 0, len(records))
	for _, r := range records {
		refs = append(refs, risRecordToReference(r))
	}
	return refs
}

func risRecordToReference(r export.RISRecord) reference.Reference {
	typ, ok := risTypes[r.Get("TY")]
	if !ok {
		typ = reference.TypeOther
	}

	authors := append([]string{}, r["AU"]...)
	authors = append(authors, r["A1"]...)

	pages := r.Get("SP")
	if ep := r.Get("EP"); ep != "" && pages != "" {
		pages += "-" + ep
	}

	ref := reference.Reference{
		ID:          r.Get("ID"),
		Title:       r.First("TI", "T1"),
		Authors:     authors,
		Type:        typ,
		Year:        yearPattern.FindString(r.First("PY", "Y1", "DA")),
		DOI:         r.Get("DO"),
		ISBN:        r.Get("SN"),
		URL:         r.Get("UR"),
		Publisher:   r.Get("PB"),
		JournalName: r.First("JO", "JF", "T2", "JA"),
		Volume:      r.Get("VL"),
		Issue:       r.Get("IS"),
		Pages:       pages,
		Edition:     r.Get("ET"),
		Abstract:    r.First("AB", "N2"),
		Notes:       r.Get("N1"),
		Tags:        r["KW"],
		Source: reference.ImportSource{
			Type: "ris",
			ID:   r.Get("ID"),
		},
	}
	return reference.Normalize(ref)
}
