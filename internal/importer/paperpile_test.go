package importer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehub/scribe/internal/reference"
)

func TestFlexibleString_String(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string year", `"2026"`, "2026"},
		{"number year", `2026`, "2026"},
		{"null value", `null`, ""},
		{"float number", `2026.0`, "2026.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexibleString
			require.NoError(t, json.Unmarshal([]byte(tt.input), &f))
			assert.Equal(t, tt.want, f.String())
		})
	}
}

func TestFlexibleString_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `[1,2,3]`},
		{"object", `{"key": "value"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexibleString
			assert.Error(t, json.Unmarshal([]byte(tt.input), &f))
		})
	}
}

func TestParsePaperpile_ValidEntry(t *testing.T) {
	data := []byte(`[{
		"_id": "abc123",
		"citekey": "Smith2026-ab",
		"doi": "10.1234/test",
		"title": "Test Paper",
		"abstract": "This is a test abstract",
		"journal": "Test Journal",
		"volume": 12,
		"issue": "3",
		"pages": "10-20",
		"published": {"year": "2026"},
		"author": [
			{"first": "John", "last": "Smith"},
			{"first": "Jane", "last": "Doe"}
		],
		"labelsNamed": ["ml", "vision"]
	}]`)

	refs, errs := ParsePaperpile(data)
	require.Empty(t, errs)
	require.Len(t, refs, 1)

	want := reference.Reference{
		ID:          "Smith2026-ab",
		DOI:         "10.1234/test",
		Title:       "Test Paper",
		Authors:     []string{"John Smith", "Jane Doe"},
		Type:        reference.TypeJournal,
		Year:        "2026",
		JournalName: "Test Journal",
		Volume:      "12",
		Issue:       "3",
		Pages:       "10-20",
		Abstract:    "This is a test abstract",
		Tags:        []string{"ml", "vision"},
		Source:      reference.ImportSource{Type: "paperpile", ID: "abc123"},
	}
	assert.Equal(t, want, refs[0])
}

func TestParsePaperpile_NoCitekey(t *testing.T) {
	data := []byte(`[{
		"_id": "abc123",
		"title": "Test Paper",
		"published": {"year": "2026"},
		"author": [{"first": "John", "last": "Smith"}]
	}]`)

	refs, errs := ParsePaperpile(data)
	require.Empty(t, errs)
	require.Len(t, refs, 1)

	// Without a citekey the Paperpile ID is used
	assert.Equal(t, "abc123", refs[0].ID)
	assert.Equal(t, reference.TypeOther, refs[0].Type, "no journal")
}

func TestParsePaperpile_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing title",
			data: `[{"_id": "abc", "published": {"year": "2026"}, "author": [{"first": "John", "last": "Smith"}]}]`,
		},
		{
			name: "missing author",
			data: `[{"_id": "abc", "title": "Test", "published": {"year": "2026"}, "author": []}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs, errs := ParsePaperpile([]byte(tt.data))
			assert.NotEmpty(t, errs)
			assert.Empty(t, refs)
		})
	}
}

func TestParsePaperpile_MissingYear(t *testing.T) {
	data := []byte(`[{"_id": "abc", "title": "Test", "author": [{"first": "John", "last": "Smith"}]}]`)

	refs, errs := ParsePaperpile(data)
	require.Empty(t, errs)
	require.Len(t, refs, 1)
	assert.Empty(t, refs[0].Year)
}

func TestParsePaperpile_InvalidYear(t *testing.T) {
	data := []byte(`[{
		"_id": "abc123",
		"title": "Test Paper",
		"published": {"year": "invalid"},
		"author": [{"first": "John", "last": "Smith"}]
	}]`)

	refs, errs := ParsePaperpile(data)
	assert.Len(t, errs, 1)
	assert.Empty(t, refs)
}

func TestParsePaperpile_NumericYear(t *testing.T) {
	// Paperpile exports years as both strings and numbers
	data := []byte(`[{
		"_id": "abc123",
		"title": "Test Paper",
		"published": {"year": 2026, "month": 6},
		"author": [{"first": "John", "last": "Smith"}]
	}]`)

	refs, errs := ParsePaperpile(data)
	require.Empty(t, errs)
	require.Len(t, refs, 1)
	assert.Equal(t, "2026", refs[0].Year)
}

func TestParsePaperpile_InvalidJSON(t *testing.T) {
	data := []byte(`not valid json`)

	refs, errs := ParsePaperpile(data)
	assert.NotEmpty(t, errs)
	assert.Empty(t, refs)
}

func TestParsePaperpile_EmptyArray(t *testing.T) {
	data := []byte(`[]`)

	refs, errs := ParsePaperpile(data)
	assert.Empty(t, errs)
	assert.Empty(t, refs)
}

func TestParsePaperpile_PartialErrors(t *testing.T) {
	// Mix of valid and invalid entries - should return valid ones and errors for invalid
	data := []byte(`[
		{"_id": "1", "citekey": "Valid2026", "title": "Valid", "published": {"year": "2026"}, "author": [{"last": "Valid"}]},
		{"_id": "2", "citekey": "Invalid", "title": "", "published": {"year": "2026"}, "author": [{"last": "Invalid"}]},
		{"_id": "3", "citekey": "AlsoValid2026", "title": "Also Valid", "published": {"year": "2025"}, "author": [{"last": "Also"}]}
	]`)

	refs, errs := ParsePaperpile(data)
	assert.Len(t, refs, 2)
	assert.Len(t, errs, 1)
}

func TestPaperpileEntry_AuthorWithOnlyLast(t *testing.T) {
	// Corporate authors have only a last name
	data := []byte(`[{
		"_id": "abc123",
		"title": "Test Paper",
		"published": {"year": "2026"},
		"author": [{"last": "Corporation"}]
	}]`)

	refs, errs := ParsePaperpile(data)
	require.Empty(t, errs)
	require.Len(t, refs, 1)
	assert.Equal(t, []string{"Corporation"}, refs[0].Authors)
}
