package main

import (
	"fmt"
	"strings"

	"github.com/scribehub/scribe/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set library configuration values.

Usage:
  scribe config                           # Show all config
  scribe config default-style             # Get specific value
  scribe config default-style thai-cu     # Set value
  scribe config bib-path ~/thesis/refs.bib

Keys:
  default-style  Style used when --style is not given (see 'scribe styles')
  bib-path       Default .bib file for 'scribe export --append'`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("default-style: %s\n", cfg.DefaultStyle)
			fmt.Printf("bib-path:      %s\n", cfg.BibPath)
		} else {
			outputJSON(cfg)
		}
		return nil
	}

	key := args[0]
	normalizedKey := normalizeKey(key)

	// One arg: get specific value
	if len(args) == 1 {
		var value string
		switch normalizedKey {
		case "default_style":
			value = cfg.DefaultStyle
		case "bib_path":
			value = cfg.BibPath
		default:
			exitWithError(ExitError, "unknown configuration key: %s", key)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{normalizedKey: value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if normalizedKey == "bib_path" {
		value = config.ExpandPath(value)
	}
	if err := cfg.Set(normalizedKey, value); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    normalizedKey,
			Value:  value,
		})
	}

	return nil
}

// normalizeKey converts key formats (default-style, Default_Style) to the stored form
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "-", "_")
	return key
}
