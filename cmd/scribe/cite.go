package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scribehub/scribe/internal/citation"
	"github.com/scribehub/scribe/internal/clipboard"
	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
	"github.com/scribehub/scribe/internal/style"
	"github.com/spf13/cobra"
)

var (
	citeStyle  string
	citeInText bool
	citeMarkup bool
	citeCopy   bool
)

func init() {
	citeCmd.Flags().StringVarP(&citeStyle, "style", "s", "", "Citation style (see 'scribe styles'; default from config)")
	citeCmd.Flags().BoolVar(&citeInText, "in-text", false, "Render the short in-text citation")
	citeCmd.Flags().BoolVar(&citeMarkup, "markup", false, "Keep <em> emphasis tags in human output")
	citeCmd.Flags().BoolVar(&citeCopy, "copy", false, "Also copy the plain-text citations to the clipboard")
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite <id>...",
	Short: "Format citations for references",
	Long: `Format the bibliography entry (or in-text citation) of one or more references.

JSON output keeps the <em>...</em> emphasis markup; --human strips it unless
--markup is given.

The style comes from --style, then $SCRIBE_STYLE, then the library config,
then the global config. Unknown styles fall back to APA 7.

Examples:
  scribe cite lecun2015deep
  scribe cite lecun2015deep --style ieee --in-text
  scribe cite --style thai-cu สมชาย2020ตำรา --human
  scribe cite lecun2015deep --copy`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCite,
}

// CitationResult is one formatted citation.
type CitationResult struct {
	ID       string `json:"id"`
	Style    string `json:"style"`
	Citation string `json:"citation"`
}

func runCite(cmd *cobra.Command, args []string) error {
	if citeCopy {
		mustHaveClipboard()
	}
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	s := config.ResolveStyle(citeStyle, cfg)

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	refs := mustGetRefs(db, args)

	results := make([]CitationResult, len(refs))
	for i, ref := range refs {
		results[i] = CitationResult{ID: ref.ID, Style: s.String(), Citation: formatCitation(ref, s, citeInText)}
	}

	if citeCopy {
		lines := make([]string, len(results))
		for i, r := range results {
			lines[i] = humanText(r.Citation, citeMarkup)
		}
		copyToClipboard(cmd.Context(), strings.Join(lines, "\n"))
	}

	if humanOutput {
		for _, r := range results {
			fmt.Println(humanText(r.Citation, citeMarkup))
		}
	} else {
		outputJSON(results)
	}
	return nil
}

func formatCitation(ref reference.Reference, s style.Style, inText bool) string {
	if inText {
		return citation.FormatInText(ref, s)
	}
	return citation.Format(ref, s)
}

// humanText strips emphasis tags unless markup is requested.
func humanText(s string, markup bool) string {
	if markup {
		return s
	}
	return citation.StripMarkup(s)
}

// mustGetRefs loads references by ID in the given order, exits on a missing ID.
func mustGetRefs(db *storage.DB, ids []string) []reference.Reference {
	refs := make([]reference.Reference, 0, len(ids))
	for _, id := range ids {
		ref, err := db.GetByID(id)
		if err != nil {
			exitWithError(ExitError, "getting reference %s: %v", id, err)
		}
		if ref == nil {
			exitWithError(ExitError, "unknown key: %s", id)
		}
		refs = append(refs, *ref)
	}
	return refs
}

const clipboardHint = "clipboard unavailable (install pbcopy, wl-copy, xclip or xsel)"

// mustHaveClipboard exits before any work is done when --copy cannot succeed.
func mustHaveClipboard() {
	if !clipboard.IsAvailable() {
		exitWithError(ExitError, clipboardHint)
	}
}

// copyToClipboard copies text, exits when the clipboard cannot be used.
func copyToClipboard(ctx context.Context, text string) {
	if err := clipboard.Copy(ctx, text); err != nil {
		if errors.Is(err, clipboard.ErrClipboardUnavailable) {
			exitWithError(ExitError, clipboardHint)
		}
		exitWithError(ExitError, "copying to clipboard: %v", err)
	}
	slog.Debug("copied to clipboard", "bytes", len(text))
}
