package main

import (
	"fmt"
	"strings"

	"github.com/scribehub/scribe/internal/citation"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/spf13/cobra"
)

var getDOI string

func init() {
	getCmd.Flags().StringVar(&getDOI, "doi", "", "Look up by DOI instead of ID")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single reference by ID or DOI",
	Long: `Get a single reference by its ID, or by DOI with --doi.

Examples:
  scribe get lecun2015deep
  scribe get --doi 10.1038/nature14539`,
	Args: func(cmd *cobra.Command, args []string) error {
		if getDOI != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	var (
		ref *reference.Reference
		err error
		key string
	)
	if getDOI != "" {
		key = getDOI
		ref, err = db.GetByDOI(getDOI)
	} else {
		key = args[0]
		ref, err = db.GetByID(key)
	}
	if err != nil {
		exitWithError(ExitError, "getting reference: %v", err)
	}

	if ref == nil {
		exitWithError(ExitError, "reference not found: %s", key)
	}

	if humanOutput {
		printRefDetail(*ref)
	} else {
		outputJSON(ref)
	}

	return nil
}

func printRefDetail(ref reference.Reference) {
	fmt.Println(ref.ID)
	fmt.Println(strings.Repeat("═", DetailTitleMaxLen))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(ref.Title, TextWrapWidth, "          "))
	fmt.Println()

	if len(ref.Authors) > 0 {
		fmt.Printf("Authors:  %s\n", wrapText(strings.Join(ref.Authors, ", "), TextWrapWidth, "          "))
		fmt.Println()
	}

	fmt.Printf("Type:     %s\n", ref.Type)
	if ref.JournalName != "" {
		fmt.Printf("Journal:  %s\n", ref.JournalName)
	}
	if ref.Publisher != "" {
		fmt.Printf("Publisher: %s\n", ref.Publisher)
	}
	if label := ref.YearLabel(); label != "" {
		fmt.Printf("Year:     %s\n", label)
	}
	if ref.DOI != "" {
		fmt.Printf("DOI:      %s\n", citation.DOIURL(ref.DOI))
	}
	if ref.ISBN != "" {
		fmt.Printf("ISBN:     %s\n", ref.ISBN)
	}
	if ref.URL != "" {
		fmt.Printf("URL:      %s\n", ref.URL)
	}
	if len(ref.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(ref.Tags, ", "))
	}

	if ref.Abstract != "" {
		fmt.Println()
		fmt.Println("Abstract:")
		fmt.Printf("  %s\n", wrapText(ref.Abstract, DetailTextWrapWidth, "  "))
	}

	if ref.Notes != "" {
		fmt.Println()
		fmt.Println("Notes:")
		fmt.Printf("  %s\n", wrapText(ref.Notes, DetailTextWrapWidth, "  "))
	}
}
