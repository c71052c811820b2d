package export

import (
	"os"
	"regexp"
	"strings"
)

// Entry is one raw BibTeX entry. Field names are lowercased; values are kept
// exactly as written between the delimiters, so LaTeX escapes such as \& are
// not reversed.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string
}

var (
	// Match entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`@(\w+)\s*\{\s*([^,\s{}]*)\s*,`)
	// Match a field: name = {value}, name = "value" or name = 123.
	// Backslash escapes such as \{ or \" may appear inside a value and are
	// kept as written. Values with nested braces are not supported.
	fieldRegex = regexp.MustCompile(`([A-Za-z][\w-]*)\s*=\s*(?:\{((?:[^{}\\]|\\.)*)\}|"((?:[^"\\]|\\.)*)"|(\d+))`)
)

// ParseBibTeX extracts entries from BibTeX text. Each entry runs from its
// @type{key, header to the last closing brace before the next header.
// Text that does not form an entry is ignored.
func ParseBibTeX(text string) []Entry {
	locs := entryStartRegex.FindAllStringSubmatchIndex(text, -1)

	var entries []Entry
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		body := text[loc[1]:end]
		closing := strings.LastIndex(body, "}")
		if closing < 0 {
			continue // Unterminated entry
		}
		body = body[:closing]

		entryType := strings.ToLower(text[loc[2]:loc[3]])
		switch entryType {
		case "comment", "string", "preamble":
			continue
		}

		fields := make(map[string]string)
		for _, m := range fieldRegex.FindAllStringSubmatch(body, -1) {
			value := m[2]
			if value == "" {
				value = m[3]
			}
			if value == "" {
				value = m[4]
			}
			fields[strings.ToLower(m[1])] = strings.TrimSpace(value)
		}

		entries = append(entries, Entry{
			Type:   entryType,
			Key:    text[loc[4]:loc[5]],
			Fields: fields,
		})
	}

	return entries
}

// BibTeXIndex indexes existing BibTeX entries for deduplication.
type BibTeXIndex struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps DOI values to citation keys
	DOIs map[string]string
}

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
}

// Add records an entry in the index.
func (idx *BibTeXIndex) Add(key, doi string) {
	idx.Keys[key] = true
	if d := normalizeDOI(doi); d != "" {
		idx.DOIs[d] = key
	}
}

// HasEntry returns true if the entry already exists (by DOI or key).
// DOI is the primary match; citation key is the fallback if no DOI.
func (idx *BibTeXIndex) HasEntry(key, doi string) bool {
	if doi != "" {
		if _, exists := idx.DOIs[normalizeDOI(doi)]; exists {
			return true
		}
	}
	return idx.Keys[key]
}

// ParseBibTeXFile builds an index from an existing .bib file.
// Returns an empty index if the file doesn't exist.
func ParseBibTeXFile(path string) (*BibTeXIndex, error) {
	idx := NewBibTeXIndex()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}

	for _, e := range ParseBibTeX(string(data)) {
		idx.Add(e.Key, e.Fields["doi"])
	}
	return idx, nil
}

// normalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}

// AppendToBibFile appends BibTeX content to a file.
func AppendToBibFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	// Ensure we start on a new line
	_, err = file.WriteString("\n" + content)
	return err
}
