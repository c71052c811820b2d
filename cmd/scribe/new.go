package main

import (
	"fmt"
	"time"

	"github.com/scribehub/scribe/internal/git"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/spf13/cobra"
)

var (
	newLimit int
	newDays  int
)

func init() {
	newCmd.Flags().IntVarP(&newLimit, "limit", "n", 10, "Maximum references to list (0 for all)")
	newCmd.Flags().IntVar(&newDays, "days", 0, "Only references added within the last N days (UTC)")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "List the most recently added references",
	Long: `List references in the order they were committed to refs.jsonl, newest
first, with the commit that added each one.

Useful for tracking additions from collaborators after pulling updates.

Examples:
  scribe new
  scribe new -n 0 --days 7 --human`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	repoRoot := mustFindRepository()
	mustCheckGit(ctx, repoRoot)

	opts := git.RecentOptions{Limit: newLimit}
	if newDays > 0 {
		opts.Since = time.Now().UTC().AddDate(0, 0, -newDays)
	}

	recent, err := git.Recent(ctx, repoRoot, opts)
	if err != nil {
		exitWithError(ExitError, "reading history: %v", err)
	}

	refs := make([]HistoryRef, 0, len(recent))
	for _, r := range recent {
		h := toHistoryRefs([]reference.Reference{r.Reference})[0]
		h.Commit = r.Commit.SHA
		h.Message = r.Commit.Message
		refs = append(refs, h)
	}

	if !humanOutput {
		outputJSON(refs)
		return nil
	}
	if len(refs) == 0 {
		fmt.Println("No references added.")
		return nil
	}
	for _, r := range refs {
		printHistoryRef(r.Commit, r)
	}
	return nil
}
