package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/scribehub/scribe/internal/reference"
)

// OpenLibraryBook is the subset of an Open Library edition record used for
// citations. It accepts both the books API (jscmd=data) shape and the
// /isbn/{isbn}.json edition shape.
type OpenLibraryBook struct {
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Authors     namedList `json:"authors"`
	ByStatement string    `json:"by_statement"`
	Publishers  namedList `json:"publishers"`
	PublishDate string    `json:"publish_date"`
	EditionName string    `json:"edition_name"`
	URL         string    `json:"url"`
	Subjects    namedList `json:"subjects"`
}

// namedList decodes either ["a", "b"] or [{"name": "a"}, {"name": "b"}].
// Entries that carry only an Open Library key are dropped.
type namedList []string

func (n *namedList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cannot unmarshal %s into list", string(data))
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("cannot unmarshal %s into list entry", string(item))
		}
		if obj.Name != "" {
			out = append(out, obj.Name)
		}
	}
	*n = out
	return nil
}

// FromOpenLibrary converts an Open Library ISBN lookup response into a book
// reference. Responses keyed by "ISBN:<isbn>" are unwrapped.
func FromOpenLibrary(data []byte, isbn string) (reference.Reference, error) {
	isbn = strings.TrimSpace(isbn)

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return reference.Reference{}, fmt.Errorf("parsing Open Library JSON: %w", err)
	}
	if inner, ok := wrapped["ISBN:"+isbn]; ok {
		data = inner
	} else if len(wrapped) == 0 {
		return reference.Reference{}, fmt.Errorf("no Open Library record for ISBN %s", isbn)
	}

	var book OpenLibraryBook
	if err := json.Unmarshal(data, &book); err != nil {
		return reference.Reference{}, fmt.Errorf("parsing Open Library record: %w", err)
	}
	if book.Title == "" {
		return reference.Reference{}, errors.New("open library record has no title")
	}

	title := book.Title
	if book.Subtitle != "" {
		title += ": " + book.Subtitle
	}

	authors := []string(book.Authors)
	if len(authors) == 0 && book.ByStatement != "" {
		authors = []string{strings.TrimSuffix(strings.TrimSpace(book.ByStatement), ".")}
	}

	ref := reference.Reference{
		Title:     title,
		Authors:   authors,
		Type:      reference.TypeBook,
		Year:      yearPattern.FindString(book.PublishDate),
		ISBN:      isbn,
		URL:       book.URL,
		Publisher: firstOf(book.Publishers),
		Edition:   book.EditionName,
		Tags:      book.Subjects,
		Source: reference.ImportSource{
			Type: "openlibrary",
			ID:   isbn,
		},
	}
	return reference.Normalize(ref), nil
}
