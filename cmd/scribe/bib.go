package main

import (
	"fmt"
	"strings"

	"github.com/scribehub/scribe/internal/citation"
	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/spf13/cobra"
)

var (
	bibStyle  string
	bibKeys   string
	bibMarkup bool
	bibCopy   bool
)

func init() {
	bibCmd.Flags().StringVarP(&bibStyle, "style", "s", "", "Citation style (see 'scribe styles'; default from config)")
	bibCmd.Flags().StringVar(&bibKeys, "keys", "", "Include only specified IDs (comma-separated)")
	bibCmd.Flags().BoolVar(&bibMarkup, "markup", false, "Keep <em> emphasis tags in human output")
	bibCmd.Flags().BoolVar(&bibCopy, "copy", false, "Also copy the plain-text bibliography to the clipboard")
	rootCmd.AddCommand(bibCmd)
}

var bibCmd = &cobra.Command{
	Use:   "bib",
	Short: "Format a sorted bibliography",
	Long: `Format a bibliography of the whole library (or selected references),
sorted alphabetically with Unicode collation.

Examples:
  scribe bib --style apa7 --human
  scribe bib --style thai-tu --keys a2020,b2021`,
	Args: cobra.NoArgs,
	RunE: runBib,
}

// BibliographyResult is the response for the bib command.
type BibliographyResult struct {
	Style   string   `json:"style"`
	Name    string   `json:"name"`
	Entries []string `json:"entries"`
}

func runBib(cmd *cobra.Command, args []string) error {
	if bibCopy {
		mustHaveClipboard()
	}
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	s := config.ResolveStyle(bibStyle, cfg)

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	var refs []reference.Reference
	if bibKeys != "" {
		refs = mustGetRefs(db, splitKeys(bibKeys))
	} else {
		var err error
		refs, err = db.ListAll(0)
		if err != nil {
			exitWithError(ExitError, "listing references: %v", err)
		}
	}

	entries, err := citation.Bibliography(cmd.Context(), refs, s)
	if err != nil {
		exitWithError(ExitError, "formatting bibliography: %v", err)
	}

	if bibCopy {
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = humanText(e, bibMarkup)
		}
		copyToClipboard(cmd.Context(), strings.Join(lines, "\n\n"))
	}

	if humanOutput {
		fmt.Printf("%s\n\n", s.DisplayName())
		for _, e := range entries {
			fmt.Println(humanText(e, bibMarkup))
			fmt.Println()
		}
	} else {
		outputJSON(BibliographyResult{Style: s.String(), Name: s.DisplayName(), Entries: entries})
	}
	return nil
}
