// Package reference defines the core domain types for bibliographic references.
package reference

import (
	"crypto/rand"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Type classifies the kind of source a reference describes.
type Type string

const (
	TypeBook       Type = "book"
	TypeJournal    Type = "journal"
	TypeWebsite    Type = "website"
	TypeConference Type = "conference"
	TypeThesis     Type = "thesis"
	TypeReport     Type = "report"
	TypeOther      Type = "other"
)

// Types lists every reference type in display order.
var Types = []Type{TypeBook, TypeJournal, TypeWebsite, TypeConference, TypeThesis, TypeReport, TypeOther}

// UntitledTitle replaces an empty title during normalization.
const UntitledTitle = "Untitled"

// ParseType maps a string to a Type, returning TypeOther for unknown values.
func ParseType(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types {
		if t == known {
			return t
		}
	}
	return TypeOther
}

// Standalone reports whether the type is a self-contained work rather than
// a piece inside a journal or proceedings.
func (t Type) Standalone() bool {
	return t != TypeJournal && t != TypeConference
}

// Reference represents a single bibliographic source.
type Reference struct {
	// Identity
	ID string `json:"id"` // Stable identifier (citekey or ULID)

	// Metadata
	Title   string   `json:"title" validate:"required"`
	Authors []string `json:"authors"` // "Given Family" or full name, contribution order
	Type    Type     `json:"type" validate:"omitempty,oneof=book journal website conference thesis report other"`

	// Publication Date
	Year       string `json:"year,omitempty"`
	YearSuffix string `json:"year_suffix,omitempty"` // Disambiguator for same author+year ("a", "ก")

	// Identifiers
	DOI  string `json:"doi,omitempty"`
	ISBN string `json:"isbn,omitempty"`
	URL  string `json:"url,omitempty" validate:"omitempty,url"`

	// Container
	Publisher   string `json:"publisher,omitempty"`
	JournalName string `json:"journal_name,omitempty"`
	Volume      string `json:"volume,omitempty"`
	Issue       string `json:"issue,omitempty"`
	Pages       string `json:"pages,omitempty"`
	Edition     string `json:"edition,omitempty"`

	Abstract string   `json:"abstract,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	// Import Tracking
	Source ImportSource `json:"source"`
}

// ImportSource tracks where a reference was imported from.
type ImportSource struct {
	Type string `json:"type"` // bibtex, ris, crossref, openlibrary, html, pdf, manual
	ID   string `json:"id"`   // Original ID from source system
}

// YearLabel returns the year followed by its disambiguation suffix.
// It is empty when the year is absent.
func (r Reference) YearLabel() string {
	if r.Year == "" {
		return ""
	}
	return r.Year + r.YearSuffix
}

// Normalize returns a copy of ref with whitespace trimmed, an "Untitled"
// fallback title, a non-nil author list without blanks, sorted unique tags
// and a cleared year suffix when no year is present.
func Normalize(ref Reference) Reference {
	out := ref
	out.Title = strings.TrimSpace(ref.Title)
	if out.Title == "" {
		out.Title = UntitledTitle
	}

	out.Authors = make([]string, 0, len(ref.Authors))
	for _, a := range ref.Authors {
		a = strings.Join(strings.Fields(a), " ")
		if a != "" {
			out.Authors = append(out.Authors, a)
		}
	}

	if out.Type == "" {
		out.Type = TypeOther
	} else {
		out.Type = ParseType(string(out.Type))
	}

	for _, f := range []*string{
		&out.Year, &out.YearSuffix, &out.DOI, &out.ISBN, &out.URL,
		&out.Publisher, &out.JournalName, &out.Volume, &out.Issue,
		&out.Pages, &out.Edition, &out.Abstract, &out.Notes,
	} {
		*f = strings.TrimSpace(*f)
	}
	if out.Year == "" {
		out.YearSuffix = ""
	}

	out.Tags = normalizeTags(ref.Tags)
	return out
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// NewID returns a new lexicographically sortable identifier.
func NewID() string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String())
}
