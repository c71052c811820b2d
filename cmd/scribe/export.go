package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/export"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportKeys   string
	exportOutput string
	exportAppend bool
	exportBib    string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Export format: bibtex or ris (default: from --output extension, else bibtex)")
	exportCmd.Flags().StringVar(&exportKeys, "keys", "", "Export only specified IDs (comma-separated)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportAppend, "append", false, "Append missing entries to a .bib file (BibTeX only)")
	exportCmd.Flags().StringVar(&exportBib, "bib", "", "Target .bib file for --append (default: bib_path from config)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export references to BibTeX or RIS",
	Long: `Export references to BibTeX or RIS.

Without --output, the export is written to stdout as plain text.
With --append, entries whose DOI or citation key is already in the target
.bib file are skipped.

Examples:
  scribe export > refs.bib
  scribe export --format ris --keys lecun2015deep,pike2012go
  scribe export -o thesis.ris
  scribe export --append --bib ~/thesis/refs.bib`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// ExportResult is the response when an export is written to a file.
type ExportResult struct {
	Path     string `json:"path"`
	Format   string `json:"format"`
	MIMEType string `json:"mime_type"`
	Exported int    `json:"exported"`
	Skipped  int    `json:"skipped,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := resolveExportFormat(exportFormat, exportOutput)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if exportAppend && format != FormatBibTeX {
		exitWithError(ExitError, "--append only supports bibtex")
	}

	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	var refs []reference.Reference
	if exportKeys != "" {
		refs = mustGetRefs(db, splitKeys(exportKeys))
	} else {
		refs, err = db.ListAll(0)
		if err != nil {
			exitWithError(ExitError, "listing references: %v", err)
		}
	}

	if exportAppend {
		target := exportBib
		if target == "" {
			target = mustLoadConfig(repoRoot).BibPath
		}
		if target == "" {
			exitWithError(ExitConfigError, "no target .bib file: pass --bib or run 'scribe config bib-path <file>'")
		}
		result, err := appendBibTeX(config.ExpandPath(target), refs)
		if err != nil {
			exitWithError(ExitError, "appending to %s: %v", target, err)
		}
		printExportResult(result)
		return nil
	}

	content := renderExport(format, refs)
	if exportOutput == "" {
		// Exports are always text output, never JSON
		fmt.Print(content)
		return nil
	}

	if err := os.WriteFile(exportOutput, []byte(content), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", exportOutput, err)
	}
	printExportResult(ExportResult{
		Path:     exportOutput,
		Format:   format,
		MIMEType: exportMIMEType(format),
		Exported: len(refs),
	})
	return nil
}

// resolveExportFormat picks the format from the flag, then the output
// file extension, defaulting to BibTeX.
func resolveExportFormat(flag, output string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case FormatBibTeX:
		return FormatBibTeX, nil
	case FormatRIS:
		return FormatRIS, nil
	case "":
	default:
		return "", fmt.Errorf("unknown export format: %s (valid: bibtex, ris)", flag)
	}

	if strings.EqualFold(filepath.Ext(output), export.RISExtension) {
		return FormatRIS, nil
	}
	return FormatBibTeX, nil
}

func renderExport(format string, refs []reference.Reference) string {
	if format == FormatRIS {
		return export.ToRISList(refs)
	}
	return export.ToBibTeXList(refs)
}

func exportMIMEType(format string) string {
	if format == FormatRIS {
		return export.RISMIMEType
	}
	return export.BibTeXMIMEType
}

// appendBibTeX adds the references not yet present in the .bib file at path.
func appendBibTeX(path string, refs []reference.Reference) (ExportResult, error) {
	result := ExportResult{Path: path, Format: FormatBibTeX, MIMEType: export.BibTeXMIMEType}

	idx, err := export.ParseBibTeXFile(path)
	if err != nil {
		return result, err
	}

	var missing []reference.Reference
	for _, ref := range refs {
		key := export.CiteKey(ref)
		if idx.HasEntry(key, ref.DOI) {
			result.Skipped++
			continue
		}
		idx.Add(key, ref.DOI)
		missing = append(missing, ref)
	}

	if len(missing) > 0 {
		if err := export.AppendToBibFile(path, export.ToBibTeXList(missing)); err != nil {
			return result, err
		}
	}
	result.Exported = len(missing)
	return result, nil
}

func printExportResult(r ExportResult) {
	if humanOutput {
		fmt.Printf("Wrote %d %s entries to %s", r.Exported, r.Format, r.Path)
		if r.Skipped > 0 {
			fmt.Printf(" (%d already present)", r.Skipped)
		}
		fmt.Println()
	} else {
		outputJSON(r)
	}
}
