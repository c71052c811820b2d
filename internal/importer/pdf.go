package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/scribehub/scribe/internal/pdf"
	"github.com/scribehub/scribe/internal/reference"
)

// FromPDF builds a reference from the DOI, title and year found on the first
// pages of a PDF. The file name stands in for a title that cannot be found.
func FromPDF(path string) (reference.Reference, error) {
	md, err := pdf.Extract(path)
	if err != nil {
		return reference.Reference{}, fmt.Errorf("reading PDF %s: %w", path, err)
	}
	return pdfMetadataToReference(md, path), nil
}

func pdfMetadataToReference(md pdf.Metadata, path string) reference.Reference {
	base := filepath.Base(path)
	title := md.Title
	if title == "" {
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	id := md.DOI
	if id == "" {
		id = base
	}

	typ := reference.TypeOther
	if md.DOI != "" {
		typ = reference.TypeJournal
	}

	ref := reference.Reference{
		Title:   title,
		Authors: []string{},
		Type:    typ,
		Year:    md.Year,
		DOI:     md.DOI,
		Source: reference.ImportSource{
			Type: "pdf",
			ID:   id,
		},
	}
	return reference.Normalize(ref)
}
