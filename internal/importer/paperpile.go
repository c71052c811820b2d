// Package importer converts external bibliographic formats and metadata
// payloads into references.
package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// FlexibleString can unmarshal from either string or number JSON values.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	// Handle null
	if string(data) == "null" {
		*f = ""
		return nil
	}

	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	// Try number
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	// Try int directly
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*f = FlexibleString(strconv.Itoa(i))
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// PaperpileEntry represents a single entry from a Paperpile JSON export.
type PaperpileEntry struct {
	ID        string         `json:"_id"`
	Citekey   string         `json:"citekey"`
	DOI       string         `json:"doi"`
	Title     string         `json:"title"`
	Abstract  string         `json:"abstract"`
	Journal   string         `json:"journal"`
	Publisher string         `json:"publisher"`
	Volume    FlexibleString `json:"volume"`
	Issue     FlexibleString `json:"issue"`
	Pages     FlexibleString `json:"pages"`
	URL       string         `json:"url"`
	Published struct {
		Year FlexibleString `json:"year"`
	} `json:"published"`
	Author []struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"author"`
	Labels []string `json:"labelsNamed"`
}

// ParsePaperpile parses a Paperpile JSON export and returns references.
func ParsePaperpile(data []byte) ([]reference.Reference, []error) {
	var entries []PaperpileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, []error{fmt.Errorf("parsing Paperpile JSON: %w", err)}
	}

	var refs []reference.Reference
	var errs []error

	for i, entry := range entries {
		ref, err := paperpileEntryToReference(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i+1, entry.Citekey, err))
			continue
		}
		refs = append(refs, ref)
	}

	return refs, errs
}

// paperpileEntryToReference converts a Paperpile entry to our Reference type.
func paperpileEntryToReference(entry PaperpileEntry) (reference.Reference, error) {
	// Validate required fields
	if entry.Title == "" {
		return reference.Reference{}, fmt.Errorf("missing required field 'title'")
	}
	if len(entry.Author) == 0 {
		return reference.Reference{}, fmt.Errorf("missing required field 'author'")
	}

	year := entry.Published.Year.String()
	if year != "" {
		if _, err := strconv.Atoi(year); err != nil {
			return reference.Reference{}, fmt.Errorf("invalid year: %s", year)
		}
	}

	authors := make([]string, len(entry.Author))
	for i, a := range entry.Author {
		authors[i] = strings.TrimSpace(a.First + " " + a.Last)
	}

	typ := reference.TypeOther
	if entry.Journal != "" {
		typ = reference.TypeJournal
	}

	// Use citekey as ID, falling back to Paperpile ID if no citekey
	id := entry.Citekey
	if id == "" {
		id = entry.ID
	}

	ref := reference.Reference{
		ID:          id,
		DOI:         entry.DOI,
		Title:       entry.Title,
		Authors:     authors,
		Type:        typ,
		Year:        year,
		URL:         entry.URL,
		Publisher:   entry.Publisher,
		JournalName: entry.Journal,
		Volume:      entry.Volume.String(),
		Issue:       entry.Issue.String(),
		Pages:       entry.Pages.String(),
		Abstract:    entry.Abstract,
		Tags:        entry.Labels,
		Source: reference.ImportSource{
			Type: "paperpile",
			ID:   entry.ID,
		},
	}

	return reference.Normalize(ref), nil
}
