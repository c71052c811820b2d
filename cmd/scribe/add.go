package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/export"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
	"github.com/spf13/cobra"
)

var addRef struct {
	id      string
	authors []string
	typ     string
	tags    []string
	ref     reference.Reference
}

func init() {
	f := addCmd.Flags()
	f.StringVar(&addRef.id, "id", "", "Reference ID (default: generated citation key)")
	f.StringVarP(&addRef.ref.Title, "title", "t", "", "Title (required)")
	f.StringArrayVarP(&addRef.authors, "author", "a", nil, "Author name, repeat in contribution order")
	f.StringVar(&addRef.typ, "type", string(reference.TypeOther), "Type: book, journal, website, conference, thesis, report, other")
	f.StringVar(&addRef.ref.Year, "year", "", "Publication year")
	f.StringVar(&addRef.ref.DOI, "doi", "", "DOI")
	f.StringVar(&addRef.ref.ISBN, "isbn", "", "ISBN")
	f.StringVar(&addRef.ref.URL, "url", "", "URL")
	f.StringVar(&addRef.ref.Publisher, "publisher", "", "Publisher or institution")
	f.StringVar(&addRef.ref.JournalName, "journal", "", "Journal or proceedings name")
	f.StringVar(&addRef.ref.Volume, "volume", "", "Volume")
	f.StringVar(&addRef.ref.Issue, "issue", "", "Issue")
	f.StringVar(&addRef.ref.Pages, "pages", "", "Page range, e.g. 10-20")
	f.StringVar(&addRef.ref.Edition, "edition", "", "Edition")
	f.StringVar(&addRef.ref.Abstract, "abstract", "", "Abstract")
	f.StringVar(&addRef.ref.Notes, "notes", "", "Free-form notes")
	f.StringArrayVar(&addRef.tags, "tag", nil, "Tag (repeatable)")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a reference manually",
	Long: `Add a reference to the library from command-line fields.

The ID defaults to the BibTeX citation key (surname, year, first title word).
A numeric suffix is added when that key is taken.

Examples:
  scribe add -t "Deep Learning" -a "Yann LeCun" -a "Yoshua Bengio" --type journal \
      --journal Nature --year 2015 --volume 521 --pages 436-444 --doi 10.1038/nature14539
  scribe add -t "ตำราปัญญาประดิษฐ์" -a "สมชาย ใจดี" --type book --year 2020`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	ref := addRef.ref
	ref.Authors = addRef.authors
	ref.Type = reference.Type(strings.ToLower(strings.TrimSpace(addRef.typ)))
	ref.Tags = addRef.tags
	ref.Source = reference.ImportSource{Type: "manual"}

	if err := reference.Validate(ref); err != nil {
		var verr *reference.ValidationError
		if errors.As(err, &verr) {
			exitWithError(ExitDataError, "%v", verr)
		}
		exitWithError(ExitDataError, "validating reference: %v", err)
	}
	ref = reference.Normalize(ref)

	repoRoot := mustFindRepository()
	refs := mustLoadRefs(repoRoot)

	if idx, found := storage.FindByDOI(refs, ref.DOI); found {
		exitWithError(ExitDataError, "DOI %s already in library as %s", ref.DOI, refs[idx].ID)
	}

	if addRef.id != "" {
		if _, found := storage.FindByID(refs, addRef.id); found {
			exitWithError(ExitDataError, "ID already exists: %s", addRef.id)
		}
		ref.ID = addRef.id
	} else {
		base := export.CiteKey(ref)
		if base == "" {
			base = reference.NewID()
		}
		ref.ID = storage.GenerateUniqueID(refs, base)
	}

	if err := storage.Append(config.RefsPath(repoRoot), ref); err != nil {
		exitWithError(ExitError, "writing refs: %v", err)
	}
	if err := refreshCache(repoRoot, append(refs, ref)); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Added %s: %s\n", ref.ID, truncateString(ref.Title, ImportTitleMaxLen))
	} else {
		outputJSON(ref)
	}
	return nil
}
