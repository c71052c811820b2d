package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehub/scribe/internal/reference"
)

func TestToRIS_JournalArticle(t *testing.T) {
	want := strings.Join([]string{
		"TY  - JOUR",
		"TI  - Deep Learning",
		"AU  - Yann LeCun",
		"AU  - Yoshua Bengio",
		"AU  - Geoffrey Hinton",
		"PY  - 2015",
		"JO  - Nature",
		"VL  - 521",
		"IS  - 7553",
		"SP  - 436",
		"EP  - 444",
		"DO  - 10.1038/nature14539",
		"ER  - ",
	}, "\n") + "\n"

	assert.Equal(t, want, ToRIS(deepLearning()))
}

func TestToRIS_TagOrder(t *testing.T) {
	ref := reference.Reference{
		Title:       "Proceedings Paper",
		Authors:     []string{"Ann Lee"},
		Type:        reference.TypeConference,
		Year:        "2022",
		JournalName: "Proc. GopherCon",
		Publisher:   "ACM",
		Volume:      "3",
		Issue:       "1",
		Pages:       "10",
		DOI:         "10.1/x",
		ISBN:        "978-1",
		URL:         "https://example.com",
		Abstract:    "Abstract text",
		Notes:       "A note",
		Tags:        []string{"go"},
	}

	var tags []string
	for _, line := range strings.Split(strings.TrimSuffix(ToRIS(ref), "\n"), "\n") {
		tags = append(tags, line[:2])
	}
	assert.Equal(t, []string{"TY", "TI", "AU", "PY", "T2", "PB", "VL", "IS", "SP", "DO", "SN", "UR", "AB", "N1", "KW", "ER"}, tags)
}

func TestToRIS_PageSplitting(t *testing.T) {
	tests := []struct {
		pages string
		want  []string
		not   []string
	}{
		{"436-444", []string{"SP  - 436", "EP  - 444"}, nil},
		{"436--444", []string{"SP  - 436", "EP  - 444"}, nil},
		{"12–19", []string{"SP  - 12", "EP  - 19"}, nil},
		{"10", []string{"SP  - 10"}, []string{"EP  - "}},
	}

	for _, tt := range tests {
		t.Run(tt.pages, func(t *testing.T) {
			got := ToRIS(reference.Reference{Title: "T", Pages: tt.pages})
			for _, w := range tt.want {
				assert.Contains(t, got, w+"\n")
			}
			for _, n := range tt.not {
				assert.NotContains(t, got, n)
			}
		})
	}
}

func TestRISType(t *testing.T) {
	tests := map[reference.Type]string{
		reference.TypeBook:       "BOOK",
		reference.TypeJournal:    "JOUR",
		reference.TypeConference: "CONF",
		reference.TypeThesis:     "THES",
		reference.TypeReport:     "RPRT",
		reference.TypeWebsite:    "ELEC",
		reference.TypeOther:      "GEN",
	}
	for refType, want := range tests {
		assert.Equal(t, want, risType(refType), "type %s", refType)
	}
}

func TestToRIS_MinimalRecord(t *testing.T) {
	assert.Equal(t, "TY  - GEN\nTI  - Untitled\nER  - \n", ToRIS(reference.Reference{}))
}

func TestToRISList(t *testing.T) {
	assert.Equal(t, "", ToRISList(nil))

	got := ToRISList([]reference.Reference{{Title: "A"}, {Title: "B"}})
	assert.Equal(t, "TY  - GEN\nTI  - A\nER  - \n\nTY  - GEN\nTI  - B\nER  - \n", got)
}

func TestParseRIS(t *testing.T) {
	input := "TY  - JOUR\r\n" +
		"TI  - Deep Learning\r\n" +
		"AU  - Yann LeCun\r\n" +
		"AU  - Yoshua Bengio\r\n" +
		"AB  - First line\r\n" +
		"continued here\r\n" +
		"ER  - \r\n" +
		"stray line\n" +
		"PY  - 1999\n" +
		"TY  - BOOK\n" +
		"TI  - Unterminated\n"

	records := ParseRIS(input)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "JOUR", r.Get("TY"))
	assert.Equal(t, "Deep Learning", r.Get("TI"))
	assert.Equal(t, []string{"Yann LeCun", "Yoshua Bengio"}, r["AU"])
	assert.Equal(t, "First line continued here", r.Get("AB"))
	assert.Equal(t, "", r.Get("PY"))
	assert.Equal(t, "Deep Learning", r.First("T1", "TI"))
}

func TestParseRIS_RoundTripsExport(t *testing.T) {
	records := ParseRIS(ToRISList([]reference.Reference{deepLearning(), {Title: "Second"}}))
	require.Len(t, records, 2)
	assert.Equal(t, "436", records[0].Get("SP"))
	assert.Equal(t, "444", records[0].Get("EP"))
	assert.Equal(t, "Second", records[1].Get("TI"))
}
