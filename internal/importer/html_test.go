package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehub/scribe/internal/reference"
)

var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestFromHTML_HighwireTags(t *testing.T) {
	page := `<!DOCTYPE html>
<html><head>
  <title>Ignored page title</title>
  <meta name="citation_title" content="Dropout: A Simple Way to Prevent Neural Networks from Overfitting">
  <meta name="citation_author" content="Nitish Srivastava">
  <meta name="citation_author" content="Geoffrey Hinton">
  <meta name="citation_journal_title" content="Journal of Machine Learning Research">
  <meta name="citation_publication_date" content="2014/06/01">
  <meta name="citation_volume" content="15">
  <meta name="citation_issue" content="56">
  <meta name="citation_firstpage" content="1929">
  <meta name="citation_lastpage" content="1958">
  <meta name="citation_doi" content="doi:10.5555/2627435.2670313">
  <meta name="citation_keywords" content="neural networks; regularization">
</head><body></body></html>`

	ref, err := FromHTML(strings.NewReader(page), "https://jmlr.org/papers/v15/srivastava14a.html", fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Dropout: A Simple Way to Prevent Neural Networks from Overfitting", ref.Title)
	assert.Equal(t, []string{"Nitish Srivastava", "Geoffrey Hinton"}, ref.Authors)
	assert.Equal(t, reference.TypeJournal, ref.Type)
	assert.Equal(t, "2014", ref.Year)
	assert.Equal(t, "Journal of Machine Learning Research", ref.JournalName)
	assert.Equal(t, "15", ref.Volume)
	assert.Equal(t, "56", ref.Issue)
	assert.Equal(t, "1929-1958", ref.Pages)
	assert.Equal(t, "10.5555/2627435.2670313", ref.DOI)
	assert.Equal(t, []string{"neural networks", "regularization"}, ref.Tags)
	assert.Equal(t, reference.ImportSource{Type: "html", ID: "https://jmlr.org/papers/v15/srivastava14a.html"}, ref.Source)
}

func TestFromHTML_OpenGraphWebsite(t *testing.T) {
	page := `<html><head>
  <meta property="og:title" content="Go 1.22 is released!">
  <meta property="og:site_name" content="The Go Programming Language">
  <meta property="og:url" content="https://go.dev/blog/go1.22">
  <meta property="article:published_time" content="2024-02-06T00:00:00Z">
  <meta name="author" content="Eli Bendersky">
  <meta name="description" content="Go 1.22 enhances for loops.">
</head></html>`

	ref, err := FromHTML(strings.NewReader(page), "", fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Go 1.22 is released!", ref.Title)
	assert.Equal(t, reference.TypeWebsite, ref.Type)
	assert.Equal(t, "The Go Programming Language", ref.Publisher)
	assert.Equal(t, "https://go.dev/blog/go1.22", ref.URL)
	assert.Equal(t, "2024", ref.Year)
	assert.Equal(t, []string{"Eli Bendersky"}, ref.Authors)
	assert.Equal(t, "Go 1.22 enhances for loops.", ref.Abstract)
}

func TestFromHTML_TitleElementAndCurrentYear(t *testing.T) {
	page := `<html><head><title>
    บทความ   ภาษาไทย
  </title></head><body><p>no metadata</p></body></html>`

	ref, err := FromHTML(strings.NewReader(page), "https://example.co.th/a", fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "บทความ ภาษาไทย", ref.Title)
	assert.Equal(t, "2024", ref.Year, "undated pages take the current year")
	assert.Empty(t, ref.Authors)
	assert.Equal(t, reference.TypeWebsite, ref.Type)
}

func TestFromHTML_EmptyDocument(t *testing.T) {
	ref, err := FromHTML(strings.NewReader(""), "https://example.org", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, reference.UntitledTitle, ref.Title)
}
