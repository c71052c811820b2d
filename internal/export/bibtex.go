// Package export converts references to and from bibliography interchange
// formats (BibTeX and RIS).
package export

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/thai"
)

// File conventions for BibTeX output.
const (
	BibTeXExtension = ".bib"
	BibTeXMIMEType  = "application/x-bibtex"
)

// ToBibTeX converts a reference to a single BibTeX entry.
func ToBibTeX(ref reference.Reference) string {
	ref = reference.Normalize(ref)

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", entryType(ref.Type), CiteKey(ref))

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s = {%s},\n", name, value)
		}
	}

	field("title", escapeLatex(ref.Title))
	field("author", escapeLatex(strings.Join(ref.Authors, " and ")))
	field("year", escapeLatex(ref.Year))
	field("journal", escapeLatex(ref.JournalName))
	field("publisher", escapeLatex(ref.Publisher))
	field("volume", escapeLatex(ref.Volume))
	field("number", escapeLatex(ref.Issue))
	field("pages", escapeLatex(ref.Pages))
	field("edition", escapeLatex(ref.Edition))
	// Identifiers are emitted unescaped
	field("doi", ref.DOI)
	field("isbn", ref.ISBN)
	field("url", ref.URL)
	field("abstract", escapeLatex(ref.Abstract))
	field("keywords", escapeLatex(strings.Join(ref.Tags, ", ")))

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple references to BibTeX, separating entries
// with a blank line. An empty list yields an empty string.
func ToBibTeXList(refs []reference.Reference) string {
	entries := make([]string, 0, len(refs))
	for _, ref := range refs {
		entries = append(entries, ToBibTeX(ref))
	}
	return strings.Join(entries, "\n")
}

// entryType returns the BibTeX entry type for a reference type.
func entryType(t reference.Type) string {
	switch t {
	case reference.TypeBook:
		return "book"
	case reference.TypeJournal:
		return "article"
	case reference.TypeConference:
		return "inproceedings"
	case reference.TypeThesis:
		return "phdthesis"
	case reference.TypeReport:
		return "techreport"
	default:
		return "misc"
	}
}

// CiteKey builds the citation key: first-author surname, year (or
// "nodate") and first title word, lowercased with punctuation removed.
// Keys are not de-duplicated across a collection.
func CiteKey(ref reference.Reference) string {
	var surname string
	if len(ref.Authors) > 0 {
		surname = reference.Surname(ref.Authors[0])
	}

	year := ref.Year
	if year == "" {
		year = "nodate"
	}

	var word string
	if words := strings.Fields(ref.Title); len(words) > 0 {
		word = words[0]
	}

	return strings.ToLower(keyPart(surname) + keyPart(year) + keyPart(word))
}

// keyPart keeps letters and digits. Latin diacritics are folded to their
// base letters; Thai keeps its vowel and tone marks.
func keyPart(s string) string {
	isThai := thai.IsThai(s)
	if !isThai {
		s = norm.NFKD.String(s)
	}
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case isThai && unicode.Is(unicode.Mn, r):
			return r
		default:
			return -1
		}
	}, s)
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`&`, `\&`,
		`%`, `\%`,
		`$`, `\$`,
		`#`, `\#`,
		`_`, `\_`,
		`{`, `\{`,
		`}`, `\}`,
	)
	return replacer.Replace(s)
}
