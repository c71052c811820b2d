package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/scribehub/scribe/internal/importer"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
	"github.com/spf13/cobra"
)

// Import formats accepted by --format.
const (
	FormatBibTeX      = "bibtex"
	FormatRIS         = "ris"
	FormatPaperpile   = "paperpile"
	FormatCrossref    = "crossref"
	FormatOpenLibrary = "openlibrary"
	FormatHTML        = "html"
	FormatPDF         = "pdf"
)

var importFormats = []string{FormatBibTeX, FormatRIS, FormatPaperpile, FormatCrossref, FormatOpenLibrary, FormatHTML, FormatPDF}

var (
	importFormat string
	importDryRun bool
	importISBN   string
	importURL    string
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Import format (bibtex, ris, paperpile, crossref, openlibrary, html, pdf)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	importCmd.Flags().StringVar(&importISBN, "isbn", "", "ISBN the Open Library payload was requested for")
	importCmd.Flags().StringVar(&importURL, "url", "", "Address the HTML page was fetched from")
	importCmd.MarkFlagRequired("format")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import references from an external format",
	Long: `Import references from a file ("-" reads stdin).

Usage:
  scribe import --format bibtex library.bib
  scribe import --format ris export.ris --dry-run
  scribe import --format paperpile paperpile.json
  curl -s https://api.crossref.org/works/10.1038/nature14539 | scribe import --format crossref -
  scribe import --format openlibrary --isbn 9780262035613 book.json
  scribe import --format html --url https://example.org/article page.html
  scribe import --format pdf paper.pdf

Supported formats:
  bibtex       BibTeX database (.bib)
  ris          RIS records (.ris)
  paperpile    Paperpile JSON export
  crossref     Crossref works API response (JSON)
  openlibrary  Open Library books API response (JSON)
  html         Web page with citation_*, Dublin Core or Open Graph metadata
  pdf          PDF document (DOI and title heuristics)

Existing references are updated when the DOI, import source or ID matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// DryRunResult represents the result of a dry-run import.
type DryRunResult struct {
	WouldImport int            `json:"would_import"`
	WouldUpdate int            `json:"would_update"`
	WouldSkip   int            `json:"would_skip"`
	Details     []ImportDetail `json:"details,omitempty"`
}

// ImportDetail describes a single import action.
type ImportDetail struct {
	ID     string `json:"id"`
	Action string `json:"action"` // new, update, skip
	Title  string `json:"title"`
	Reason string `json:"reason,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	if !slices.Contains(importFormats, importFormat) {
		exitWithError(ExitError, "unknown format: %s (valid: %s)", importFormat, strings.Join(importFormats, ", "))
	}
	repoRoot := mustFindRepository()

	newRefs, parseErrors := parseImport(importFormat, args[0])
	for _, e := range parseErrors {
		slog.Warn("skipping record", "format", importFormat, "error", e)
	}
	if len(newRefs) == 0 {
		if len(parseErrors) > 0 {
			exitWithError(ExitDataError, "failed to parse any references: %v", parseErrors[0])
		}
		exitWithError(ExitDataError, "no references found in %s", args[0])
	}

	existing := mustLoadRefs(repoRoot)
	plan := storage.PlanImport(existing, newRefs)
	slog.Debug("import planned", "new", plan.New, "updated", plan.Updated, "skipped", plan.Skipped)

	if importDryRun {
		result := DryRunResult{
			WouldImport: plan.New,
			WouldUpdate: plan.Updated,
			WouldSkip:   plan.Skipped,
		}
		for _, a := range plan.Actions {
			result.Details = append(result.Details, ImportDetail{
				ID:     a.Ref.ID,
				Action: a.Action,
				Title:  a.Ref.Title,
				Reason: a.Reason,
			})
		}
		if humanOutput {
			fmt.Printf("Would import %d, update %d, skip %d\n\n", plan.New, plan.Updated, plan.Skipped)
			for _, d := range result.Details {
				fmt.Printf("  %-6s %-24s %s\n", d.Action, d.ID, truncateString(d.Title, ImportTitleMaxLen))
			}
		} else {
			outputJSON(result)
		}
		return nil
	}

	if err := saveLibrary(repoRoot, plan.Apply(existing)); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := ImportResult{
		Imported: plan.New,
		Updated:  plan.Updated,
		Skipped:  plan.Skipped,
		Errors:   make([]string, len(parseErrors)),
	}
	for i, e := range parseErrors {
		result.Errors[i] = e.Error()
	}

	if humanOutput {
		fmt.Printf("Imported %d, updated %d, skipped %d\n", result.Imported, result.Updated, result.Skipped)
		for _, e := range result.Errors {
			fmt.Printf("  warning: %s\n", e)
		}
	} else {
		outputJSON(result)
	}
	return nil
}

// parseImport reads path and converts it with the importer for format.
func parseImport(format, path string) ([]reference.Reference, []error) {
	if format == FormatPDF {
		ref, err := importer.FromPDF(path)
		if err != nil {
			return nil, []error{err}
		}
		return []reference.Reference{ref}, nil
	}

	data, err := readInput(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}
	return parseImportData(format, data, importOptions{ISBN: importISBN, URL: importURL, Now: time.Now()})
}

// importOptions carries the request context some payloads lack.
type importOptions struct {
	ISBN string
	URL  string
	Now  time.Time
}

// parseImportData dispatches in-memory input to the importer for format.
func parseImportData(format string, data []byte, opts importOptions) ([]reference.Reference, []error) {
	single := func(ref reference.Reference, err error) ([]reference.Reference, []error) {
		if err != nil {
			return nil, []error{err}
		}
		return []reference.Reference{ref}, nil
	}

	switch format {
	case FormatBibTeX:
		return importer.FromBibTeX(string(data)), nil
	case FormatRIS:
		return importer.FromRIS(string(data)), nil
	case FormatPaperpile:
		return importer.ParsePaperpile(data)
	case FormatCrossref:
		return single(importer.FromCrossref(data))
	case FormatOpenLibrary:
		return single(importer.FromOpenLibrary(data, opts.ISBN))
	case FormatHTML:
		return single(importer.FromHTML(bytes.NewReader(data), opts.URL, opts.Now))
	default:
		return nil, []error{fmt.Errorf("unknown format: %s", format)}
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
