package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehub/scribe/internal/reference"
)

const crossrefNature = `{
  "status": "ok",
  "message-type": "work",
  "message": {
    "DOI": "10.1038/nature14539",
    "URL": "http://dx.doi.org/10.1038/nature14539",
    "type": "journal-article",
    "title": ["Deep learning"],
    "container-title": ["Nature"],
    "publisher": "Springer Science and Business Media LLC",
    "volume": "521",
    "issue": "7553",
    "page": "436-444",
    "abstract": "<jats:p>Deep learning allows\n computational models</jats:p>",
    "subject": ["Multidisciplinary"],
    "author": [
      {"given": "Yann", "family": "LeCun", "sequence": "first"},
      {"given": "Yoshua", "family": "Bengio", "sequence": "additional"},
      {"given": "Geoffrey", "family": "Hinton", "sequence": "additional"}
    ],
    "issued": {"date-parts": [[2015, 5, 27]]},
    "published-print": {"date-parts": [[2015, 5, 28]]}
  }
}`

func TestFromCrossref_JournalArticle(t *testing.T) {
	ref, err := FromCrossref([]byte(crossrefNature))
	require.NoError(t, err)

	assert.Equal(t, "Deep learning", ref.Title)
	assert.Equal(t, []string{"Yann LeCun", "Yoshua Bengio", "Geoffrey Hinton"}, ref.Authors)
	assert.Equal(t, reference.TypeJournal, ref.Type)
	assert.Equal(t, "2015", ref.Year)
	assert.Equal(t, "Nature", ref.JournalName)
	assert.Equal(t, "521", ref.Volume)
	assert.Equal(t, "7553", ref.Issue)
	assert.Equal(t, "436-444", ref.Pages)
	assert.Equal(t, "10.1038/nature14539", ref.DOI)
	assert.Equal(t, "Deep learning allows computational models", ref.Abstract)
	assert.Equal(t, reference.ImportSource{Type: "crossref", ID: "10.1038/nature14539"}, ref.Source)
}

func TestFromCrossref_BareWork(t *testing.T) {
	data := `{
		"DOI": "10.5555/book",
		"type": "monograph",
		"title": ["A Book"],
		"publisher": "Press",
		"ISBN": ["9780000000001", "9780000000002"],
		"edition-number": 2,
		"editor": [{"given": "Ed", "family": "Itor"}],
		"author": [],
		"issued": {"date-parts": [[null]]}
	}`

	ref, err := FromCrossref([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, reference.TypeBook, ref.Type)
	assert.Equal(t, []string{"Ed Itor"}, ref.Authors, "editors stand in when there are no authors")
	assert.Equal(t, "9780000000001", ref.ISBN)
	assert.Equal(t, "2", ref.Edition)
	assert.Empty(t, ref.Year)
}

func TestFromCrossref_OrganizationAuthor(t *testing.T) {
	data := `{"message": {"DOI": "10.1/x", "type": "report", "title": ["T"],
		"author": [{"name": "World Health Organization"}]}}`

	ref, err := FromCrossref([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"World Health Organization"}, ref.Authors)
	assert.Equal(t, reference.TypeReport, ref.Type)
}

func TestFromCrossref_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{not json`},
		{"empty record", `{"message": {}}`},
		{"wrong shape", `{"message": {"title": "not a list"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromCrossref([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
