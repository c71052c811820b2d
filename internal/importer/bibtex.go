package importer

import (
	"regexp"
	"strings"

	"github.com/scribehub/scribe/internal/export"
	"github.com/scribehub/scribe/internal/reference"
)

// authorSeparator splits a BibTeX author field on "and" delimited by whitespace.
var authorSeparator = regexp.MustCompile(`(?i)\s+and\s+`)

// bibtexTypes maps BibTeX entry types back to reference types.
var bibtexTypes = map[string]reference.Type{
	"article":       reference.TypeJournal,
	"book":          reference.TypeBook,
	"inbook":        reference.TypeBook,
	"incollection":  reference.TypeBook,
	"conference":    reference.TypeConference,
	"inproceedings": reference.TypeConference,
	"proceedings":   reference.TypeConference,
	"mastersthesis": reference.TypeThesis,
	"phdthesis":     reference.TypeThesis,
	"techreport":    reference.TypeReport,
	"online":        reference.TypeWebsite,
}

// FromBibTeX converts the entries of a BibTeX document into references.
// Malformed entries are skipped; LaTeX escapes are left in place.
func FromBibTeX(text string) []reference.Reference {
	entries := export.ParseBibTeX(text)
	refs := make([]reference.Reference, 0, len(entries))
	for _, e := range entries {
		refs = append(refs, bibtexEntryToReference(e))
	}
	return refs
}

func bibtexEntryToReference(e export.Entry) reference.Reference {
	f := e.Fields

	typ, ok := bibtexTypes[e.Type]
	if !ok {
		typ = reference.TypeOther
	}

	ref := reference.Reference{
		ID:          e.Key,
		Title:       f["title"],
		Authors:     splitAuthors(f["author"]),
		Type:        typ,
		Year:        f["year"],
		DOI:         f["doi"],
		ISBN:        f["isbn"],
		URL:         f["url"],
		Publisher:   firstNonEmpty(f["publisher"], f["school"], f["institution"], f["organization"]),
		JournalName: firstNonEmpty(f["journal"], f["booktitle"]),
		Volume:      f["volume"],
		Issue:       f["number"],
		Pages:       strings.ReplaceAll(f["pages"], "--", "-"),
		Edition:     f["edition"],
		Abstract:    f["abstract"],
		Notes:       f["note"],
		Tags:        splitKeywords(f["keywords"]),
		Source: reference.ImportSource{
			Type: "bibtex",
			ID:   e.Key,
		},
	}
	return reference.Normalize(ref)
}

func splitAuthors(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return []string{}
	}
	var authors []string
	for _, a := range authorSeparator.Split(field, -1) {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return authors
}

func splitKeywords(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	var tags []string
	for _, k := range strings.FieldsFunc(field, func(r rune) bool { return r == ',' || r == ';' }) {
		if k = strings.TrimSpace(k); k != "" {
			tags = append(tags, k)
		}
	}
	return tags
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
