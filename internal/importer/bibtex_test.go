package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehub/scribe/internal/export"
	"github.com/scribehub/scribe/internal/reference"
)

func TestFromBibTeX_Article(t *testing.T) {
	text := `@article{lecun2015deep,
  title = {Deep Learning},
  author = {Yann LeCun and Yoshua Bengio AND Geoffrey Hinton},
  year = 2015,
  journal = "Nature",
  volume = {521},
  number = {7553},
  pages = {436--444},
  doi = {10.1038/nature14539},
  keywords = {neural networks, review},
  note = {Landmark review}
}`

	refs := FromBibTeX(text)
	require.Len(t, refs, 1)

	ref := refs[0]
	assert.Equal(t, "lecun2015deep", ref.ID)
	assert.Equal(t, "Deep Learning", ref.Title)
	assert.Equal(t, []string{"Yann LeCun", "Yoshua Bengio", "Geoffrey Hinton"}, ref.Authors)
	assert.Equal(t, reference.TypeJournal, ref.Type)
	assert.Equal(t, "2015", ref.Year)
	assert.Equal(t, "Nature", ref.JournalName)
	assert.Equal(t, "521", ref.Volume)
	assert.Equal(t, "7553", ref.Issue)
	assert.Equal(t, "436-444", ref.Pages)
	assert.Equal(t, "10.1038/nature14539", ref.DOI)
	assert.Equal(t, []string{"neural networks", "review"}, ref.Tags)
	assert.Equal(t, "Landmark review", ref.Notes)
	assert.Equal(t, reference.ImportSource{Type: "bibtex", ID: "lecun2015deep"}, ref.Source)
}

func TestFromBibTeX_TypeMapping(t *testing.T) {
	tests := []struct {
		entryType string
		want      reference.Type
	}{
		{"article", reference.TypeJournal},
		{"book", reference.TypeBook},
		{"inbook", reference.TypeBook},
		{"incollection", reference.TypeBook},
		{"conference", reference.TypeConference},
		{"inproceedings", reference.TypeConference},
		{"proceedings", reference.TypeConference},
		{"mastersthesis", reference.TypeThesis},
		{"phdthesis", reference.TypeThesis},
		{"techreport", reference.TypeReport},
		{"online", reference.TypeWebsite},
		{"misc", reference.TypeOther},
		{"unpublished", reference.TypeOther},
		{"patent", reference.TypeOther},
		{"ARTICLE", reference.TypeJournal},
	}

	for _, tt := range tests {
		t.Run(tt.entryType, func(t *testing.T) {
			refs := FromBibTeX("@" + tt.entryType + "{k,\n  title = {T}\n}")
			require.Len(t, refs, 1)
			assert.Equal(t, tt.want, refs[0].Type)
		})
	}
}

func TestFromBibTeX_Defaults(t *testing.T) {
	refs := FromBibTeX("@misc{empty,\n  howpublished = {somewhere}\n}")
	require.Len(t, refs, 1)

	ref := refs[0]
	assert.Equal(t, reference.UntitledTitle, ref.Title)
	assert.NotNil(t, ref.Authors)
	assert.Empty(t, ref.Authors)
	assert.Empty(t, ref.Year)
	assert.Empty(t, ref.DOI)
	assert.Nil(t, ref.Tags)
}

func TestFromBibTeX_ContainerFallbacks(t *testing.T) {
	text := `@inproceedings{a,
  title = {Attention Is All You Need},
  booktitle = {Advances in Neural Information Processing Systems}
}
@phdthesis{b,
  title = {On Things},
  school = {Chulalongkorn University}
}
@techreport{c,
  title = {Report},
  institution = {NECTEC}
}`

	refs := FromBibTeX(text)
	require.Len(t, refs, 3)
	assert.Equal(t, "Advances in Neural Information Processing Systems", refs[0].JournalName)
	assert.Equal(t, "Chulalongkorn University", refs[1].Publisher)
	assert.Equal(t, "NECTEC", refs[2].Publisher)
}

func TestFromBibTeX_AuthorSplitting(t *testing.T) {
	tests := []struct {
		name   string
		author string
		want   []string
	}{
		{"single", "Ada Lovelace", []string{"Ada Lovelace"}},
		{"mixed case and", "A. Turing aNd C. Shannon", []string{"A. Turing", "C. Shannon"}},
		{"inverted names", "Knuth, Donald E. and Lamport, Leslie", []string{"Knuth, Donald E.", "Lamport, Leslie"}},
		{"and inside a name", "Alexander Andrews and Sandra Anderson", []string{"Alexander Andrews", "Sandra Anderson"}},
		{"thai", "สมชาย ใจดี and สมหญิง รักเรียน", []string{"สมชาย ใจดี", "สมหญิง รักเรียน"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := FromBibTeX("@book{k,\n  author = {" + tt.author + "},\n  title = {T}\n}")
			require.Len(t, refs, 1)
			assert.Equal(t, tt.want, refs[0].Authors)
		})
	}
}

func TestFromBibTeX_SkipsMalformed(t *testing.T) {
	text := `garbage before
@article{good, title = {Kept}}
@comment{ignored, this is a comment}
@article{broken, title = {Never closed`

	refs := FromBibTeX(text)
	require.Len(t, refs, 1)
	assert.Equal(t, "Kept", refs[0].Title)
}

func TestFromBibTeX_RoundTripThaiBook(t *testing.T) {
	original := reference.Reference{
		Title:   "ตำรา AI",
		Authors: []string{"สมชาย ใจดี"},
		Type:    reference.TypeBook,
		Year:    "2020",
	}

	refs := FromBibTeX(export.ToBibTeX(original))
	require.Len(t, refs, 1)
	assert.Equal(t, "ตำรา AI", refs[0].Title)
	assert.Equal(t, []string{"สมชาย ใจดี"}, refs[0].Authors)
	assert.Equal(t, reference.TypeBook, refs[0].Type)
	assert.Equal(t, "2020", refs[0].Year)
}

func TestFromBibTeX_RoundTripPreservesContent(t *testing.T) {
	original := reference.Reference{
		Title:       "Deep Learning",
		Authors:     []string{"Yann LeCun", "Yoshua Bengio", "Geoffrey Hinton"},
		Type:        reference.TypeJournal,
		Year:        "2015",
		JournalName: "Nature",
		Volume:      "521",
		Issue:       "7553",
		Pages:       "436-444",
		DOI:         "10.1038/nature14539",
		Tags:        []string{"deep learning", "review"},
	}

	refs := FromBibTeX(export.ToBibTeX(original))
	require.Len(t, refs, 1)

	got := refs[0]
	assert.Equal(t, original.Title, got.Title)
	assert.Equal(t, original.Authors, got.Authors)
	assert.Equal(t, original.Type, got.Type)
	assert.Equal(t, original.JournalName, got.JournalName)
	assert.Equal(t, original.Volume, got.Volume)
	assert.Equal(t, original.Issue, got.Issue)
	assert.Equal(t, original.Pages, got.Pages)
	assert.Equal(t, original.DOI, got.DOI)
	assert.Equal(t, original.Tags, got.Tags)
	assert.Equal(t, export.CiteKey(original), got.ID)
}

func TestFromBibTeX_RoundTripDoesNotUnescape(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Salt & Pepper", `Salt \& Pepper`},
		{"50% of A & B", `50\% of A \& B`},
		{"Set {x} theory", `Set \{x\} theory`},
		{"Braces {only}", `Braces \{only\}`},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			original := reference.Reference{
				Title:     tt.title,
				Authors:   []string{"Jane Doe"},
				Type:      reference.TypeBook,
				Year:      "2001",
				Publisher: "Set {Theory} Press",
			}

			refs := FromBibTeX(export.ToBibTeX(original))
			require.Len(t, refs, 1)

			// Escapes written on export are kept verbatim on import.
			assert.Equal(t, tt.want, refs[0].Title)
			assert.NotEqual(t, "Untitled", refs[0].Title)
			assert.Equal(t, `Set \{Theory\} Press`, refs[0].Publisher)
			assert.Equal(t, original.Authors, refs[0].Authors)
			assert.Equal(t, "2001", refs[0].Year)
		})
	}
}
