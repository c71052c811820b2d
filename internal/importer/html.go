package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/scribehub/scribe/internal/reference"
)

// pageMeta collects <meta> values by lowercased name or property, plus the
// document <title>.
type pageMeta struct {
	values map[string][]string
	title  string
}

func (m pageMeta) first(names ...string) string {
	for _, name := range names {
		for _, v := range m.values[name] {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func (m pageMeta) all(name string) []string {
	return m.values[name]
}

// FromHTML extracts a reference from a web page using Highwire Press
// citation_* tags, Open Graph and Dublin Core metadata, and the <title>
// element. Pages without a date are dated to now's year.
func FromHTML(r io.Reader, pageURL string, now time.Time) (reference.Reference, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return reference.Reference{}, fmt.Errorf("parsing HTML: %w", err)
	}

	meta := pageMeta{values: make(map[string][]string)}
	collectMeta(doc, &meta)

	url := strings.TrimSpace(pageURL)
	if url == "" {
		url = meta.first("citation_public_url", "citation_abstract_html_url", "og:url")
	}

	authors := meta.all("citation_author")
	if len(authors) == 0 {
		authors = meta.all("dc.creator")
	}
	if len(authors) == 0 {
		if a := meta.first("author"); a != "" {
			authors = []string{a}
		}
	}

	year := yearPattern.FindString(meta.first(
		"citation_publication_date", "citation_date", "citation_online_date",
		"article:published_time", "dc.date", "dcterms.issued",
	))
	if year == "" {
		year = strconv.Itoa(now.Year())
	}

	pages := meta.first("citation_firstpage")
	if last := meta.first("citation_lastpage"); last != "" && pages != "" {
		pages += "-" + last
	}

	ref := reference.Reference{
		Title:       firstNonEmpty(meta.first("citation_title", "og:title", "dc.title"), meta.title),
		Authors:     authors,
		Type:        htmlType(meta),
		Year:        year,
		DOI:         strings.TrimPrefix(meta.first("citation_doi", "dc.identifier.doi"), "doi:"),
		ISBN:        meta.first("citation_isbn"),
		URL:         url,
		Publisher:   meta.first("citation_publisher", "dc.publisher", "citation_dissertation_institution", "citation_technical_report_institution", "og:site_name"),
		JournalName: meta.first("citation_journal_title", "citation_conference_title", "citation_inbook_title"),
		Volume:      meta.first("citation_volume"),
		Issue:       meta.first("citation_issue"),
		Pages:       pages,
		Abstract:    meta.first("citation_abstract", "description", "og:description"),
		Tags:        splitKeywords(meta.first("citation_keywords", "keywords")),
		Source: reference.ImportSource{
			Type: "html",
			ID:   url,
		},
	}
	return reference.Normalize(ref), nil
}

func htmlType(meta pageMeta) reference.Type {
	switch {
	case meta.first("citation_journal_title") != "":
		return reference.TypeJournal
	case meta.first("citation_conference_title") != "":
		return reference.TypeConference
	case meta.first("citation_dissertation_institution") != "":
		return reference.TypeThesis
	case meta.first("citation_technical_report_institution") != "":
		return reference.TypeReport
	case meta.first("citation_inbook_title", "citation_isbn") != "":
		return reference.TypeBook
	default:
		return reference.TypeWebsite
	}
}

// collectMeta walks the document recording <meta> tags and the first <title>.
func collectMeta(n *html.Node, meta *pageMeta) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "meta":
			var name, content string
			for _, attr := range n.Attr {
				switch strings.ToLower(attr.Key) {
				case "name", "property":
					name = strings.ToLower(strings.TrimSpace(attr.Val))
				case "content":
					content = attr.Val
				}
			}
			if name != "" {
				meta.values[name] = append(meta.values[name], content)
			}
		case "title":
			if meta.title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				meta.title = strings.Join(strings.Fields(n.FirstChild.Data), " ")
			}
		case "svg":
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectMeta(c, meta)
	}
}
