package main

import (
	"fmt"

	"github.com/scribehub/scribe/internal/git"
	"github.com/spf13/cobra"
)

var diffSince string

func init() {
	diffCmd.Flags().StringVar(&diffSince, "since", "HEAD", "Commit to compare the working tree against")
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show references added, removed or changed since a commit",
	Long: `Show references added, removed or changed in the working tree compared
to a commit (the last commit by default).

Useful for reviewing imports before committing.

Examples:
  scribe diff
  scribe diff --since HEAD~3 --human`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

// DiffResult is the response for the diff command.
type DiffResult struct {
	Since    string       `json:"since"`
	Added    []HistoryRef `json:"added"`
	Removed  []HistoryRef `json:"removed"`
	Modified []HistoryRef `json:"modified"`
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repoRoot := mustFindRepository()
	mustCheckGit(ctx, repoRoot)
	mustValidateCommit(ctx, repoRoot, diffSince)

	diff, err := git.DiffSince(ctx, repoRoot, diffSince)
	if err != nil {
		exitWithError(ExitError, "getting diff: %v", err)
	}

	result := DiffResult{
		Since:    diffSince,
		Added:    toHistoryRefs(diff.Added),
		Removed:  toHistoryRefs(diff.Removed),
		Modified: toHistoryRefs(diff.Modified),
	}

	if humanOutput {
		printDiffHuman(result)
	} else {
		outputJSON(result)
	}
	return nil
}

func printDiffHuman(result DiffResult) {
	if len(result.Added)+len(result.Removed)+len(result.Modified) == 0 {
		fmt.Printf("No changes since %s.\n", result.Since)
		return
	}

	fmt.Printf("Changes since %s:\n\n", result.Since)
	sections := []struct {
		label  string
		prefix string
		refs   []HistoryRef
	}{
		{"Added", "+", result.Added},
		{"Removed", "-", result.Removed},
		{"Modified", "~", result.Modified},
	}
	for _, s := range sections {
		if len(s.refs) == 0 {
			continue
		}
		fmt.Printf("%s (%d):\n", s.label, len(s.refs))
		for _, r := range s.refs {
			printHistoryRef(s.prefix, r)
		}
		fmt.Println()
	}
}
