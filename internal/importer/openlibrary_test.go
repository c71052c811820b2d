package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehub/scribe/internal/reference"
)

func TestFromOpenLibrary_BooksAPI(t *testing.T) {
	data := `{
	  "ISBN:9780134190440": {
	    "title": "The Go Programming Language",
	    "authors": [{"url": "https://openlibrary.org/authors/OL1", "name": "Alan A. A. Donovan"},
	                {"name": "Brian W. Kernighan"}],
	    "publishers": [{"name": "Addison-Wesley"}],
	    "publish_date": "Nov 05, 2015",
	    "url": "https://openlibrary.org/books/OL1/The_Go_Programming_Language",
	    "subjects": [{"name": "Go (Computer program language)"}]
	  }
	}`

	ref, err := FromOpenLibrary([]byte(data), "9780134190440")
	require.NoError(t, err)

	assert.Equal(t, "The Go Programming Language", ref.Title)
	assert.Equal(t, []string{"Alan A. A. Donovan", "Brian W. Kernighan"}, ref.Authors)
	assert.Equal(t, reference.TypeBook, ref.Type)
	assert.Equal(t, "2015", ref.Year)
	assert.Equal(t, "Addison-Wesley", ref.Publisher)
	assert.Equal(t, "9780134190440", ref.ISBN)
	assert.Equal(t, []string{"Go (Computer program language)"}, ref.Tags)
	assert.Equal(t, reference.ImportSource{Type: "openlibrary", ID: "9780134190440"}, ref.Source)
}

func TestFromOpenLibrary_EditionRecord(t *testing.T) {
	data := `{
	  "title": "Clean Code",
	  "subtitle": "A Handbook of Agile Software Craftsmanship",
	  "authors": [{"key": "/authors/OL2"}],
	  "by_statement": "Robert C. Martin.",
	  "publishers": ["Prentice Hall"],
	  "publish_date": "2009",
	  "edition_name": "1st ed."
	}`

	ref, err := FromOpenLibrary([]byte(data), " 9780132350884 ")
	require.NoError(t, err)

	assert.Equal(t, "Clean Code: A Handbook of Agile Software Craftsmanship", ref.Title)
	assert.Equal(t, []string{"Robert C. Martin"}, ref.Authors)
	assert.Equal(t, "Prentice Hall", ref.Publisher)
	assert.Equal(t, "2009", ref.Year)
	assert.Equal(t, "1st ed.", ref.Edition)
	assert.Equal(t, "9780132350884", ref.ISBN)
}

func TestFromOpenLibrary_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `[`},
		{"not found", `{}`},
		{"no title", `{"publishers": ["X"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromOpenLibrary([]byte(tt.data), "123")
			assert.Error(t, err)
		})
	}
}
