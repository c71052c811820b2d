package main

import (
	"fmt"

	"github.com/scribehub/scribe/internal/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stylesCmd)
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List supported citation styles",
	Args:  cobra.NoArgs,
	RunE:  runStyles,
}

// StyleInfo describes one supported style.
type StyleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Institution string `json:"institution,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

func runStyles(cmd *cobra.Command, args []string) error {
	var infos []StyleInfo
	for _, s := range style.All() {
		infos = append(infos, StyleInfo{
			ID:          s.String(),
			Name:        s.DisplayName(),
			Institution: s.Institution(),
			Default:     s == style.Default,
		})
	}

	if humanOutput {
		for _, info := range infos {
			marker := " "
			if info.Default {
				marker = "*"
			}
			fmt.Printf("%s %-10s %s\n", marker, info.ID, info.Name)
		}
	} else {
		outputJSON(infos)
	}
	return nil
}
