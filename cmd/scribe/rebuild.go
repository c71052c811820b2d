package main

import (
	"fmt"

	"github.com/scribehub/scribe/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query cache from source data",
	Long: `Rebuild the SQLite query cache from refs.jsonl.

Use this after pulling changes from git or if the cache becomes corrupted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status     string `json:"status"`
	References int    `json:"references"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	count, err := db.RebuildFromJSONL(config.RefsPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding refs database: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt query cache with %d references\n", count)
	} else {
		outputJSON(RebuildResult{
			Status:     "rebuilt",
			References: count,
		})
	}

	return nil
}
