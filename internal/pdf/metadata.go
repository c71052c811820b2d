// Package pdf extracts citation metadata from PDF documents.
package pdf

import (
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// scanPages is how many leading pages are searched for metadata.
const scanPages = 3

// minTitleRunes is the shortest line accepted as a title.
const minTitleRunes = 12

// Metadata is what can be recovered from the first pages of a PDF.
type Metadata struct {
	DOI   string
	Title string
	Year  string
}

// Extract reads metadata from the PDF at filePath.
func Extract(filePath string) (Metadata, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Metadata{}, err
	}
	return ExtractReader(f, info.Size())
}

// ExtractReader reads metadata from a PDF reader.
func ExtractReader(r io.ReaderAt, size int64) (Metadata, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return Metadata{}, err
	}

	maxPages := min(scanPages, pdfReader.NumPage())

	var pages []string
	for i := 1; i <= maxPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, text)
	}

	return FromText(pages), nil
}

// FromText derives metadata from the plain text of leading pages, first
// page first.
func FromText(pages []string) Metadata {
	var md Metadata
	for _, text := range pages {
		if md.DOI == "" {
			md.DOI = findDOI(text)
		}
		if md.Year == "" {
			md.Year = yearPattern.FindString(text)
		}
	}
	if len(pages) > 0 {
		md.Title = findTitle(pages[0])
	}
	return md
}

// findDOI finds a DOI in text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		// Remove trailing punctuation
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	// Must have something after the /
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}

// findTitle returns the first substantial line that is not a running header.
func findTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if utf8.RuneCountInString(line) >= minTitleRunes && !isHeaderLine(line) {
			return line
		}
	}
	return ""
}

// headerWords mark journal banners and footers, in English and Thai.
var headerWords = []string{"journal", "copyright", "doi:", "doi.org", "http", "วารสาร", "ปีที่", "ฉบับที่"}

// isHeaderLine checks if a line is likely a header/footer.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range headerWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	if strings.Contains(lower, "volume") && strings.Contains(lower, "issue") {
		return true
	}
	return strings.Contains(lower, "article") && strings.Contains(lower, "published")
}
