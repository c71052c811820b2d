package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehub/scribe/internal/reference"
)

func deepLearning() reference.Reference {
	return reference.Reference{
		ID:          "lecun2015deep",
		Title:       "Deep Learning",
		Authors:     []string{"Yann LeCun", "Yoshua Bengio", "Geoffrey Hinton"},
		Type:        reference.TypeJournal,
		Year:        "2015",
		JournalName: "Nature",
		Volume:      "521",
		Issue:       "7553",
		Pages:       "436-444",
		DOI:         "10.1038/nature14539",
	}
}

func TestToBibTeX_BasicArticle(t *testing.T) {
	got := ToBibTeX(deepLearning())

	want := `@article{lecun2015deep,
  title = {Deep Learning},
  author = {Yann LeCun and Yoshua Bengio and Geoffrey Hinton},
  year = {2015},
  journal = {Nature},
  volume = {521},
  number = {7553},
  pages = {436-444},
  doi = {10.1038/nature14539},
}
`
	assert.Equal(t, want, got)
}

func TestToBibTeX_FieldOrder(t *testing.T) {
	ref := reference.Reference{
		Title:       "Everything",
		Authors:     []string{"Ann Lee"},
		Type:        reference.TypeBook,
		Year:        "2001",
		JournalName: "Series",
		Publisher:   "Pub",
		Volume:      "1",
		Issue:       "2",
		Pages:       "3-4",
		Edition:     "5",
		DOI:         "10.1/x",
		ISBN:        "978-0",
		URL:         "https://example.com/a_b",
		Abstract:    "Abs",
		Tags:        []string{"go", "books"},
	}

	got := ToBibTeX(ref)

	order := []string{"title", "author", "year", "journal", "publisher", "volume", "number",
		"pages", "edition", "doi", "isbn", "url", "abstract", "keywords"}
	last := -1
	for _, name := range order {
		i := strings.Index(got, "  "+name+" = {")
		require.GreaterOrEqual(t, i, 0, "missing field %s in:\n%s", name, got)
		assert.Greater(t, i, last, "field %s out of order in:\n%s", name, got)
		last = i
	}

	assert.Contains(t, got, "url = {https://example.com/a_b}", "url is not escaped")
	assert.Contains(t, got, "keywords = {books, go}", "keywords list sorted tags")
}

func TestEntryType(t *testing.T) {
	tests := []struct {
		refType reference.Type
		want    string
	}{
		{reference.TypeBook, "book"},
		{reference.TypeJournal, "article"},
		{reference.TypeConference, "inproceedings"},
		{reference.TypeThesis, "phdthesis"},
		{reference.TypeReport, "techreport"},
		{reference.TypeWebsite, "misc"},
		{reference.TypeOther, "misc"},
		{"", "misc"},
	}

	for _, tt := range tests {
		t.Run(string(tt.refType), func(t *testing.T) {
			assert.Equal(t, tt.want, entryType(tt.refType))
		})
	}
}

func TestCiteKey(t *testing.T) {
	tests := []struct {
		name string
		ref  reference.Reference
		want string
	}{
		{"journal", deepLearning(), "lecun2015deep"},
		{"no year", reference.Reference{Title: "Go Rocks", Authors: []string{"Rob Pike"}}, "pikenodatego"},
		{"no authors", reference.Reference{Title: "Anonymous Work", Year: "1999"}, "1999anonymous"},
		{"punctuation", reference.Reference{Title: "Don't Panic!", Authors: []string{"Douglas O'Brien"}, Year: "1979"}, "obrien1979dont"},
		{"diacritics", reference.Reference{Title: "Über Alles", Authors: []string{"Jürgen Müller"}, Year: "2010"}, "muller2010uber"},
		{"thai", reference.Reference{Title: "ตำรา AI", Authors: []string{"สมชาย ใจดี"}, Year: "2020"}, "สมชายใจดี2020ตำรา"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CiteKey(tt.ref))
		})
	}
}

func TestCiteKey_Deterministic(t *testing.T) {
	ref := deepLearning()
	assert.Equal(t, CiteKey(ref), CiteKey(ref))
}

func TestEscapeLatex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"100% effective", `100\% effective`},
		{"A & B", `A \& B`},
		{"$100 price", `\$100 price`},
		{"section #1", `section \#1`},
		{"under_score", `under\_score`},
		{"{braces}", `\{braces\}`},
		{"test~tilde", "test~tilde"},
		{"A & B: $100 for {item} #1", `A \& B: \$100 for \{item\} \#1`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLatex(tt.input))
		})
	}
}

func TestToBibTeX_OptionalFields(t *testing.T) {
	got := ToBibTeX(reference.Reference{Title: "Minimal Paper"})

	assert.True(t, strings.HasPrefix(got, "@misc{nodateminimal,\n"), "unexpected header:\n%s", got)
	for _, name := range []string{"author", "year", "journal", "doi", "abstract", "keywords"} {
		assert.NotContains(t, got, "  "+name+" = ", "empty %s is omitted", name)
	}
}

func TestToBibTeX_SpecialCharactersInTitle(t *testing.T) {
	ref := reference.Reference{
		Title:   "A Study of α & β: 100% Complete",
		Authors: []string{"Test Author"},
		Year:    "2026",
	}

	got := ToBibTeX(ref)

	assert.Contains(t, got, `title = {A Study of α \& β: 100\% Complete}`)
}

func TestToBibTeXList(t *testing.T) {
	refs := []reference.Reference{
		{Title: "First Paper", Authors: []string{"A B"}, Year: "2026"},
		{Title: "Second Paper", Authors: []string{"C D"}, Year: "2025"},
	}

	got := ToBibTeXList(refs)

	assert.Contains(t, got, "@misc{b2026first,")
	assert.Contains(t, got, "@misc{d2025second,")
	assert.Contains(t, got, "}\n\n@misc{d2025second,", "entries are separated by a blank line")
}

func TestToBibTeXList_Empty(t *testing.T) {
	assert.Empty(t, ToBibTeXList(nil))
	assert.Empty(t, ToBibTeXList([]reference.Reference{}))
}

func TestParseBibTeX(t *testing.T) {
	input := `% a comment line
@Article{lecun2015deep,
  Title = {Deep Learning},
  author = "Yann LeCun and Yoshua Bengio",
  year = 2015,
  journal = {Nature}
}

@comment{ignored, note = {x}}

garbage @ without braces

@book{knuth1984,
  title = {The {TeX}book},
  author = {Donald E. Knuth},
}`

	entries := ParseBibTeX(input)
	require.Len(t, entries, 2)

	e := entries[0]
	assert.Equal(t, "article", e.Type)
	assert.Equal(t, "lecun2015deep", e.Key)
	assert.Equal(t, "Deep Learning", e.Fields["title"], "field names are lowercased")
	assert.Equal(t, "Yann LeCun and Yoshua Bengio", e.Fields["author"])
	assert.Equal(t, "2015", e.Fields["year"])
	assert.Equal(t, "Nature", e.Fields["journal"])

	// Nested braces are not supported: the title is dropped, not mangled
	assert.NotContains(t, entries[1].Fields, "title")
	assert.Equal(t, "Donald E. Knuth", entries[1].Fields["author"])
}

func TestParseBibTeX_Malformed(t *testing.T) {
	for _, input := range []string{"", "no entries here", "@article{unterminated, title = {x"} {
		assert.Empty(t, ParseBibTeX(input), input)
	}
}

func TestParseBibTeX_RoundTripsExport(t *testing.T) {
	ref := reference.Reference{
		Title:   "ตำรา AI",
		Authors: []string{"สมชาย ใจดี"},
		Type:    reference.TypeBook,
		Year:    "2020",
	}

	entries := ParseBibTeX(ToBibTeX(ref))
	require.Len(t, entries, 1)
	assert.Equal(t, "ตำรา AI", entries[0].Fields["title"])
	assert.Equal(t, "สมชาย ใจดี", entries[0].Fields["author"])
}

func TestParseBibTeX_EscapedDelimiters(t *testing.T) {
	input := `@book{k,
  title = {Set \{x\} theory},
  note = "He said \"hi\"",
  publisher = {A \& B},
  year = {1990}
}`

	entries := ParseBibTeX(input)
	require.Len(t, entries, 1)
	f := entries[0].Fields
	assert.Equal(t, `Set \{x\} theory`, f["title"])
	assert.Equal(t, `He said \"hi\"`, f["note"])
	assert.Equal(t, `A \& B`, f["publisher"])
	assert.Equal(t, "1990", f["year"])
}

func TestBibTeXIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")

	idx, err := ParseBibTeXFile(path)
	require.NoError(t, err, "missing file")
	assert.Empty(t, idx.Keys)

	require.NoError(t, AppendToBibFile(path, ToBibTeX(deepLearning())))

	idx, err = ParseBibTeXFile(path)
	require.NoError(t, err)
	assert.True(t, idx.HasEntry("lecun2015deep", ""), "match by key")
	assert.True(t, idx.HasEntry("other-key", "https://doi.org/10.1038/NATURE14539"), "match by normalized DOI")
	assert.False(t, idx.HasEntry("other-key", "10.1/none"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\n@article{"), "append starts on a new line: %q", data)
}
