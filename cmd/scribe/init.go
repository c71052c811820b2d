package main

import (
	"fmt"
	"os"

	"github.com/scribehub/scribe/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new scribe library",
	Long: `Initialize a new scribe library in the current directory.

Creates:
  .scribehub/
  ├── refs.jsonl      # Empty file
  ├── config.json     # Default config (default_style: apa7)
  └── cache/          # Query cache (gitignore it)`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if err := config.Init(root); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized scribe library in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
