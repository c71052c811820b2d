package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scribehub/scribe/internal/author"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchLimit   int
	searchAuthors []string
	searchYear    string
	searchTitle   string
	searchJournal string
	searchDOI     string
	searchType    string
	searchTag     string
	searchExact   bool
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringArrayVarP(&searchAuthors, "author", "a", nil, "Search by author name (can be repeated, uses AND logic)")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "Filter by year: exact (2024), range (2020:2024), or open (2020: or :2024)")
	searchCmd.Flags().StringVarP(&searchTitle, "title", "t", "", "Search in title only")
	searchCmd.Flags().StringVar(&searchJournal, "journal", "", "Filter by journal or proceedings (partial match)")
	searchCmd.Flags().StringVar(&searchDOI, "doi", "", "Lookup by exact DOI")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Filter by reference type")
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "Filter by tag")
	searchCmd.Flags().BoolVar(&searchExact, "exact-author", false, "Require --author to match a surname exactly (given names by prefix)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search references by keyword, author, or year",
	Long: `Search references with flexible filtering options.

The positional query searches titles, abstracts, authors, journals and tags.
Thai text is matched as a substring.

--author matches name prefixes anywhere in the author list, so "Yu" also
finds "Yujia". With --exact-author the surname must match exactly and given
names by prefix: "Tim Yu" finds "Timothy C Yu" but "Yu" skips "Yujia Zhou".

Year syntax:
  --year 2024         - Exact year
  --year 2020:2024    - Range (inclusive)
  --year 2020:        - 2020 and later
  --year :2020        - 2020 and earlier

Examples:
  scribe search "deep learning"
  scribe search -a LeCun --year 2015:
  scribe search -a "Yu, Tim" --exact-author
  scribe search "ปัญญาประดิษฐ์" --type book
  scribe search --journal Nature --tag ml
  scribe search --doi 10.1038/nature14539`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	filters := storage.SearchFilters{
		Authors: searchAuthors,
		Title:   searchTitle,
		Journal: searchJournal,
		DOI:     searchDOI,
		Tag:     searchTag,
	}
	if len(args) > 0 {
		filters.Keyword = args[0]
	}
	if searchType != "" {
		filters.Type = reference.ParseType(searchType)
	}
	if searchYear != "" {
		from, to, err := parseYearRange(searchYear)
		if err != nil {
			exitWithError(ExitError, "invalid year format: %v", err)
		}
		filters.YearFrom = from
		filters.YearTo = to
	}

	if isEmptyFilter(filters) {
		exitWithError(ExitError, "must specify a query or at least one filter (--author, --year, --title, --journal, --doi, --type, --tag)")
	}

	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	// The exact filter runs after the query, so the limit is applied here
	limit := searchLimit
	if searchExact {
		limit = 0
	}
	refs, err := db.SearchWithFilters(filters, limit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}
	if searchExact {
		refs = author.Filter(refs, author.ParseQueries(searchAuthors))
		if searchLimit > 0 && len(refs) > searchLimit {
			refs = refs[:searchLimit]
		}
	}

	// Empty result is not an error
	if refs == nil {
		refs = []reference.Reference{}
	}

	if humanOutput {
		if len(refs) == 0 {
			fmt.Println("No references found")
		} else {
			fmt.Printf("Found %d references:\n\n", len(refs))
			for i, ref := range refs {
				printRefSummary(i+1, ref)
			}
		}
	} else {
		outputJSON(refs)
	}

	return nil
}

func isEmptyFilter(f storage.SearchFilters) bool {
	return strings.TrimSpace(f.Keyword) == "" && len(f.Authors) == 0 &&
		f.YearFrom == 0 && f.YearTo == 0 && f.Title == "" && f.Journal == "" &&
		f.DOI == "" && f.Type == "" && f.Tag == ""
}

// parseYearRange parses a year specification into from/to values.
// Supported formats: "2024", "2020:2024", "2020:", ":2024"
func parseYearRange(spec string) (from, to int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, nil
	}

	if before, after, found := strings.Cut(spec, ":"); found {
		if before != "" {
			from, err = strconv.Atoi(before)
			if err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", before)
			}
		}

		if after != "" {
			to, err = strconv.Atoi(after)
			if err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", after)
			}
		}

		return from, to, nil
	}

	// Single year - exact match
	year, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", spec)
	}

	return year, year, nil
}

func printRefSummary(num int, ref reference.Reference) {
	fmt.Printf("[%d] %s\n", num, ref.ID)
	fmt.Printf("    %s\n", truncateString(ref.Title, SearchTitleMaxLen))

	if len(ref.Authors) > 0 {
		fmt.Printf("    %s\n", formatAuthorsShort(ref.Authors, 3))
	}

	year := ref.YearLabel()
	if year == "" {
		year = "n.d."
	}
	if ref.JournalName != "" {
		fmt.Printf("    %s (%s)\n", ref.JournalName, year)
	} else {
		fmt.Printf("    (%s)\n", year)
	}
	fmt.Println()
}
