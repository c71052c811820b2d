package main

import (
	"fmt"

	"github.com/scribehub/scribe/internal/citation"
	"github.com/spf13/cobra"
)

var disambiguateDryRun bool

func init() {
	disambiguateCmd.Flags().BoolVar(&disambiguateDryRun, "dry-run", false, "Show the suffixes without writing")
	rootCmd.AddCommand(disambiguateCmd)
}

var disambiguateCmd = &cobra.Command{
	Use:   "disambiguate",
	Short: "Assign year suffixes to same-author, same-year references",
	Long: `Assign year suffixes (2020a, 2020b; Thai works 2563ก, 2563ข) to references
that share authors and year, in title order. Suffixes of references that no
longer collide are cleared.`,
	Args: cobra.NoArgs,
	RunE: runDisambiguate,
}

// SuffixChange records a changed year suffix.
type SuffixChange struct {
	ID     string `json:"id"`
	Year   string `json:"year"`
	Before string `json:"before"`
	After  string `json:"after"`
}

func runDisambiguate(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	refs := mustLoadRefs(repoRoot)

	updated := citation.AssignYearSuffixes(refs)

	changes := []SuffixChange{}
	for i := range refs {
		if refs[i].YearSuffix != updated[i].YearSuffix {
			changes = append(changes, SuffixChange{
				ID:     refs[i].ID,
				Year:   refs[i].Year,
				Before: refs[i].YearSuffix,
				After:  updated[i].YearSuffix,
			})
		}
	}

	if !disambiguateDryRun && len(changes) > 0 {
		if err := saveLibrary(repoRoot, updated); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	if humanOutput {
		if len(changes) == 0 {
			fmt.Println("No year suffixes changed")
		}
		for _, c := range changes {
			fmt.Printf("  %-24s %s%s -> %s%s\n", c.ID, c.Year, c.Before, c.Year, c.After)
		}
	} else {
		outputJSON(changes)
	}
	return nil
}
