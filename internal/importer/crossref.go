package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// CrossrefWork is the subset of a Crossref works record used for citations.
type CrossrefWork struct {
	DOI            string           `json:"DOI"`
	URL            string           `json:"URL"`
	Type           string           `json:"type"`
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Publisher      string           `json:"publisher"`
	Volume         FlexibleString   `json:"volume"`
	Issue          FlexibleString   `json:"issue"`
	Page           string           `json:"page"`
	EditionNumber  FlexibleString   `json:"edition-number"`
	ISBN           []string         `json:"ISBN"`
	Abstract       string           `json:"abstract"`
	Subject        []string         `json:"subject"`
	Author         []crossrefPerson `json:"author"`
	Editor         []crossrefPerson `json:"editor"`
	Issued         crossrefDate     `json:"issued"`
	PublishedPrint crossrefDate     `json:"published-print"`
}

type crossrefPerson struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"` // Organizational authors
}

type crossrefDate struct {
	DateParts [][]FlexibleString `json:"date-parts"`
}

func (d crossrefDate) year() string {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	return d.DateParts[0][0].String()
}

var crossrefTypes = map[string]reference.Type{
	"journal-article":     reference.TypeJournal,
	"book":                reference.TypeBook,
	"monograph":           reference.TypeBook,
	"edited-book":         reference.TypeBook,
	"reference-book":      reference.TypeBook,
	"book-chapter":        reference.TypeBook,
	"proceedings-article": reference.TypeConference,
	"proceedings":         reference.TypeConference,
	"dissertation":        reference.TypeThesis,
	"report":              reference.TypeReport,
	"posted-content":      reference.TypeWebsite,
}

// Crossref abstracts are JATS XML fragments.
var jatsTag = regexp.MustCompile(`</?jats:[^>]*>`)

// FromCrossref converts a Crossref works response into a reference. Both the
// API envelope ({"message": {...}}) and a bare work record are accepted.
func FromCrossref(data []byte) (reference.Reference, error) {
	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return reference.Reference{}, fmt.Errorf("parsing Crossref JSON: %w", err)
	}
	if len(envelope.Message) > 0 {
		data = envelope.Message
	}

	var work CrossrefWork
	if err := json.Unmarshal(data, &work); err != nil {
		return reference.Reference{}, fmt.Errorf("parsing Crossref work: %w", err)
	}
	if work.DOI == "" && len(work.Title) == 0 {
		return reference.Reference{}, errors.New("crossref record has neither DOI nor title")
	}

	return crossrefWorkToReference(work), nil
}

func crossrefWorkToReference(w CrossrefWork) reference.Reference {
	people := w.Author
	if len(people) == 0 {
		people = w.Editor
	}
	authors := make([]string, 0, len(people))
	for _, p := range people {
		if p.Name != "" {
			authors = append(authors, p.Name)
			continue
		}
		authors = append(authors, strings.TrimSpace(p.Given+" "+p.Family))
	}

	typ, ok := crossrefTypes[w.Type]
	if !ok {
		typ = reference.TypeOther
	}

	year := w.PublishedPrint.year()
	if year == "" {
		year = w.Issued.year()
	}

	var isbn string
	if len(w.ISBN) > 0 {
		isbn = w.ISBN[0]
	}

	ref := reference.Reference{
		Title:       firstOf(w.Title),
		Authors:     authors,
		Type:        typ,
		Year:        year,
		DOI:         w.DOI,
		ISBN:        isbn,
		URL:         w.URL,
		Publisher:   w.Publisher,
		JournalName: firstOf(w.ContainerTitle),
		Volume:      w.Volume.String(),
		Issue:       w.Issue.String(),
		Pages:       w.Page,
		Edition:     w.EditionNumber.String(),
		Abstract:    strings.Join(strings.Fields(jatsTag.ReplaceAllString(w.Abstract, " ")), " "),
		Tags:        w.Subject,
		Source: reference.ImportSource{
			Type: "crossref",
			ID:   w.DOI,
		},
	}
	return reference.Normalize(ref)
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
