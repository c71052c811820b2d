package main

import (
	"fmt"

	"github.com/scribehub/scribe/internal/reference"
	"github.com/spf13/cobra"
)

var (
	listLimit  int
	listCounts bool
)

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	listCmd.Flags().BoolVar(&listCounts, "counts", false, "Show the number of references per type instead")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all references",
	Long: `List all references in the library.

Examples:
  scribe list
  scribe list --limit 100
  scribe list --counts`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	if listCounts {
		counts, err := db.CountByType()
		if err != nil {
			exitWithError(ExitError, "counting references: %v", err)
		}
		if humanOutput {
			for _, t := range reference.Types {
				if counts[t] > 0 {
					fmt.Printf("  %-12s %d\n", t, counts[t])
				}
			}
		} else {
			outputJSON(counts)
		}
		return nil
	}

	refs, err := db.ListAll(listLimit)
	if err != nil {
		exitWithError(ExitError, "listing references: %v", err)
	}

	// Get total count for human output
	total, _ := db.Count()

	if humanOutput {
		if len(refs) == 0 {
			fmt.Println("No references in library")
		} else {
			if listLimit > 0 && listLimit < total {
				fmt.Printf("%d references (showing first %d):\n\n", total, len(refs))
			} else {
				fmt.Printf("%d references in library:\n\n", len(refs))
			}
			for _, ref := range refs {
				fmt.Printf("  %-24s %s\n", ref.ID, truncateString(ref.Title, ListTitleMaxLen))
			}
		}
	} else {
		if refs == nil {
			refs = []reference.Reference{}
		}
		outputJSON(refs)
	}

	return nil
}
