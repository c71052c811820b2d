package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehub/scribe/internal/export"
	"github.com/scribehub/scribe/internal/reference"
)

func TestFromRIS_JournalArticle(t *testing.T) {
	text := "TY  - JOUR\r\n" +
		"ID  - lecun2015\r\n" +
		"TI  - Deep Learning\r\n" +
		"AU  - Yann LeCun\r\n" +
		"AU  - Yoshua Bengio\r\n" +
		"PY  - 2015/05/28\r\n" +
		"JO  - Nature\r\n" +
		"VL  - 521\r\n" +
		"IS  - 7553\r\n" +
		"SP  - 436\r\n" +
		"EP  - 444\r\n" +
		"DO  - 10.1038/nature14539\r\n" +
		"KW  - review\r\n" +
		"KW  - ai\r\n" +
		"ER  - \r\n"

	refs := FromRIS(text)
	require.Len(t, refs, 1)

	ref := refs[0]
	assert.Equal(t, "lecun2015", ref.ID)
	assert.Equal(t, reference.TypeJournal, ref.Type)
	assert.Equal(t, "Deep Learning", ref.Title)
	assert.Equal(t, []string{"Yann LeCun", "Yoshua Bengio"}, ref.Authors)
	assert.Equal(t, "2015", ref.Year)
	assert.Equal(t, "Nature", ref.JournalName)
	assert.Equal(t, "436-444", ref.Pages)
	assert.Equal(t, "10.1038/nature14539", ref.DOI)
	assert.Equal(t, []string{"ai", "review"}, ref.Tags)
	assert.Equal(t, "ris", ref.Source.Type)
}

func TestFromRIS_TypeMapping(t *testing.T) {
	tests := []struct {
		ty   string
		want reference.Type
	}{
		{"BOOK", reference.TypeBook},
		{"CHAP", reference.TypeBook},
		{"JOUR", reference.TypeJournal},
		{"CONF", reference.TypeConference},
		{"CPAPER", reference.TypeConference},
		{"THES", reference.TypeThesis},
		{"RPRT", reference.TypeReport},
		{"ELEC", reference.TypeWebsite},
		{"GEN", reference.TypeOther},
		{"PAT", reference.TypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.ty, func(t *testing.T) {
			refs := FromRIS("TY  - " + tt.ty + "\nTI  - T\nER  - \n")
			require.Len(t, refs, 1)
			assert.Equal(t, tt.want, refs[0].Type)
		})
	}
}

func TestFromRIS_AlternateTags(t *testing.T) {
	text := "TY  - JOUR\n" +
		"T1  - Alternate Title\n" +
		"A1  - Ada Lovelace\n" +
		"Y1  - 1843///\n" +
		"JF  - Scientific Memoirs\n" +
		"N2  - Notes on the engine\n" +
		"ER  - \n"

	refs := FromRIS(text)
	require.Len(t, refs, 1)
	assert.Equal(t, "Alternate Title", refs[0].Title)
	assert.Equal(t, []string{"Ada Lovelace"}, refs[0].Authors)
	assert.Equal(t, "1843", refs[0].Year)
	assert.Equal(t, "Scientific Memoirs", refs[0].JournalName)
	assert.Equal(t, "Notes on the engine", refs[0].Abstract)
}

func TestFromRIS_MissingTitle(t *testing.T) {
	refs := FromRIS("TY  - GEN\nAU  - Someone\nER  - \n")
	require.Len(t, refs, 1)
	assert.Equal(t, reference.UntitledTitle, refs[0].Title)
}

func TestFromRIS_RoundTrip(t *testing.T) {
	original := reference.Reference{
		Title:       "Salt & Pepper: การทดลอง",
		Authors:     []string{"สมชาย ใจดี", "Jane Doe"},
		Type:        reference.TypeConference,
		Year:        "2021",
		JournalName: "Proceedings of NLP",
		Publisher:   "ACL",
		Pages:       "12-19",
		URL:         "https://example.org/paper",
		Notes:       "Best paper",
	}

	refs := FromRIS(export.ToRIS(original))
	require.Len(t, refs, 1)

	got := refs[0]
	// RIS has no escaping, so the round trip is exact.
	assert.Equal(t, original.Title, got.Title)
	assert.Equal(t, original.Authors, got.Authors)
	assert.Equal(t, original.Type, got.Type)
	assert.Equal(t, original.Year, got.Year)
	assert.Equal(t, original.JournalName, got.JournalName)
	assert.Equal(t, original.Publisher, got.Publisher)
	assert.Equal(t, original.Pages, got.Pages)
	assert.Equal(t, original.URL, got.URL)
	assert.Equal(t, original.Notes, got.Notes)
}
