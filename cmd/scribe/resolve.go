package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/conflict"
	"github.com/spf13/cobra"
)

var (
	resolveDryRun bool
	resolvePrefer string
)

func init() {
	resolveCmd.Flags().BoolVar(&resolveDryRun, "dry-run", false, "Show proposed resolution without modifying files")
	resolveCmd.Flags().StringVar(&resolvePrefer, "prefer", "", "Side that wins true field conflicts: ours or theirs")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve git merge conflicts in refs.jsonl",
	Long: `Resolve git merge conflicts in refs.jsonl using what scribe knows about references:
- DOI identifies a work, then the reference ID
- One version might have metadata the other lacks
- The version with more complete metadata is kept
- Longer author lists win over shorter ones

Fields set to different values on both sides are true conflicts. They are
reported and nothing is written unless --prefer picks a side.

Examples:
  scribe resolve --dry-run --human
  scribe resolve
  scribe resolve --prefer theirs`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	prefer, err := conflict.ParseSide(resolvePrefer)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	repoRoot := mustFindRepository()
	refsPath := config.RefsPath(repoRoot)

	f, err := os.Open(refsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading refs.jsonl: %v", err)
	}
	doc, err := conflict.Parse(f)
	f.Close()
	if err != nil {
		var perr conflict.ParseError
		if errors.As(err, &perr) {
			exitWithError(ExitDataError, "parsing refs.jsonl: %v", perr)
		}
		exitWithError(ExitError, "parsing refs.jsonl: %v", err)
	}

	if !doc.HasConflicts() {
		if humanOutput {
			fmt.Println("No conflicts detected in refs.jsonl.")
		} else {
			outputJSON(conflict.Report{Operations: []conflict.Operation{}, Total: doc.CleanCount()})
		}
		return nil
	}

	report := doc.Resolve(prefer)

	if resolveDryRun {
		printResolveReport(report, true)
		return nil
	}

	if len(report.Unresolved) > 0 {
		printResolveReport(report, false)
		if humanOutput {
			fmt.Fprintln(os.Stderr, "\nerror: true conflicts require --prefer ours|theirs")
		}
		os.Exit(ExitDataError)
	}

	if err := saveLibrary(repoRoot, report.Refs); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	printResolveReport(report, false)
	return nil
}

func printResolveReport(r conflict.Report, dryRun bool) {
	if !humanOutput {
		outputJSON(r)
		return
	}

	if dryRun {
		fmt.Println("Proposed resolution:")
	}
	for _, op := range r.Operations {
		fmt.Printf("  %-12s %-24s %s\n", op.Action, op.ID, op.Reason)
	}
	for _, u := range r.Unresolved {
		for _, c := range u.Conflicts {
			fmt.Printf("  conflict %s.%s: ours %q, theirs %q\n", u.ID, c.Field, truncateString(c.Ours, 40), truncateString(c.Theirs, 40))
		}
	}
	fmt.Printf("\n%d references (%d merged, %d only in ours, %d only in theirs)\n", r.Total, r.Merged, r.OursOnly, r.TheirsOnly)
}
