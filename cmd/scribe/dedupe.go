package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/scribehub/scribe/internal/conflict"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/spf13/cobra"
)

var (
	dedupeDryRun bool
	dedupeMerge  bool
)

func init() {
	dedupeCmd.Flags().BoolVar(&dedupeDryRun, "dry-run", false, "Show duplicates without making changes")
	dedupeCmd.Flags().BoolVar(&dedupeMerge, "merge", false, "Merge duplicates into the first occurrence")
	rootCmd.AddCommand(dedupeCmd)
}

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Find and merge duplicate references",
	Long: `Find references that share a DOI or an import source ID.

Merging keeps the first occurrence and fills its empty fields from the
others. Where both have a value the first occurrence wins.

Examples:
  scribe dedupe --dry-run    # Show duplicates without making changes
  scribe dedupe --merge      # Merge duplicates into the first occurrence`,
	Args: cobra.NoArgs,
	RunE: runDedupe,
}

// DuplicateGroup represents a set of duplicate references.
type DuplicateGroup struct {
	Key        string   `json:"key"`        // doi:<doi> or <source type>:<source id>
	Primary    string   `json:"primary"`    // ID of the entry to keep
	Duplicates []string `json:"duplicates"` // IDs of entries merged into it
	Conflicts  []string `json:"conflicts,omitempty"`
}

// DedupeResult represents the result of a dedupe operation.
type DedupeResult struct {
	DryRun     bool             `json:"dry_run"`
	Groups     []DuplicateGroup `json:"groups"`
	TotalDupes int              `json:"total_duplicates"`
}

func runDedupe(cmd *cobra.Command, args []string) error {
	if dedupeDryRun == dedupeMerge {
		exitWithError(ExitError, "must specify exactly one of --dry-run or --merge")
	}

	repoRoot := mustFindRepository()
	refs := mustLoadRefs(repoRoot)

	merged, groups := mergeDuplicates(refs)
	result := DedupeResult{DryRun: dedupeDryRun, Groups: groups}
	for _, g := range groups {
		result.TotalDupes += len(g.Duplicates)
	}
	if result.Groups == nil {
		result.Groups = []DuplicateGroup{}
	}

	if dedupeMerge && len(groups) > 0 {
		if err := saveLibrary(repoRoot, merged); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	if !humanOutput {
		outputJSON(result)
		return nil
	}
	if len(groups) == 0 {
		fmt.Println("No duplicates found.")
		return nil
	}
	verb := "Found"
	if dedupeMerge {
		verb = "Merged"
	}
	fmt.Printf("%s %d duplicate groups (%d total duplicates):\n\n", verb, len(groups), result.TotalDupes)
	for _, g := range groups {
		fmt.Printf("%s\n", g.Key)
		fmt.Printf("  Keep:   %s\n", g.Primary)
		fmt.Printf("  Merge:  %s\n", strings.Join(g.Duplicates, ", "))
		if len(g.Conflicts) > 0 {
			fmt.Printf("  Kept first value for: %s\n", strings.Join(g.Conflicts, ", "))
		}
		fmt.Println()
	}
	return nil
}

// duplicateKeys returns the identities a reference is deduplicated on.
func duplicateKeys(ref reference.Reference) []string {
	var keys []string
	if doi := strings.ToLower(strings.TrimSpace(ref.DOI)); doi != "" {
		keys = append(keys, "doi:"+doi)
	}
	if ref.Source.Type != "" && ref.Source.ID != "" {
		keys = append(keys, ref.Source.Type+":"+ref.Source.ID)
	}
	return keys
}

// mergeDuplicates folds references sharing a key into the first occurrence.
// Groups and the returned library keep file order.
func mergeDuplicates(refs []reference.Reference) ([]reference.Reference, []DuplicateGroup) {
	owner := make(map[string]int) // key -> index into out
	groupOf := make(map[int]int)  // index into out -> index into groups
	var out []reference.Reference
	var groups []DuplicateGroup

	for _, ref := range refs {
		keys := duplicateKeys(ref)

		primary, matchedKey := -1, ""
		for _, k := range keys {
			if i, ok := owner[k]; ok {
				primary, matchedKey = i, k
				break
			}
		}

		if primary < 0 {
			for _, k := range keys {
				owner[k] = len(out)
			}
			out = append(out, ref)
			continue
		}

		merged, conflicts := conflict.Merge(out[primary], ref)
		out[primary] = merged
		for _, k := range keys {
			if _, ok := owner[k]; !ok {
				owner[k] = primary
			}
		}

		gi, ok := groupOf[primary]
		if !ok {
			gi = len(groups)
			groupOf[primary] = gi
			groups = append(groups, DuplicateGroup{Key: matchedKey, Primary: out[primary].ID})
		}
		groups[gi].Duplicates = append(groups[gi].Duplicates, ref.ID)
		for _, c := range conflicts {
			if !slices.Contains(groups[gi].Conflicts, c.Field) {
				groups[gi].Conflicts = append(groups[gi].Conflicts, c.Field)
			}
		}
	}
	return out, groups
}
