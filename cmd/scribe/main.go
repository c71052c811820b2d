// Package main provides the scribe CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scribehub/scribe/internal/config"
	"github.com/scribehub/scribe/internal/reference"
	"github.com/scribehub/scribe/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
)

func main() {
	// SCRIBE_STYLE and XDG_CONFIG_HOME may come from a local .env
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Citation formatting and reference library CLI",
	Long: `scribe formats citations and bibliographies and manages a local reference library.

Core features:
  - APA 7, MLA 9, Chicago, IEEE, Harvard and Thai university styles
  - BibTeX and RIS export, BibTeX/RIS/Paperpile import
  - Metadata normalization from Crossref, Open Library, HTML pages and PDFs

References are stored in git-versionable JSONL with an ephemeral SQLite cache
for search. All commands output JSON by default; use --human for text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.Version = Version
}

// setupLogging installs the default slog logger on stderr.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// findRepositoryFrom locates the library starting at dir, falling back to
// the library_path from the global config.
func findRepositoryFrom(dir string) (string, error) {
	root, err := config.FindRepository(dir)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, config.ErrNotRepository) {
		return "", err
	}

	libPath, libErr := config.ValidateLibraryPath()
	if libErr != nil {
		slog.Debug("no global library", "error", libErr)
		return "", err
	}
	return config.FindRepository(libPath)
}

// mustFindRepository finds and validates the repository, exits on error.
// Returns the repository root path.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	repoRoot, err := findRepositoryFrom(cwd)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	slog.Debug("using library", "root", repoRoot)
	return repoRoot
}

// mustOpenDatabase opens the SQLite cache, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(repoRoot string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadRefs reads the JSONL source of truth, exits on error.
func mustLoadRefs(repoRoot string) []reference.Reference {
	refs, err := storage.ReadAll(config.RefsPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "reading refs: %v", err)
	}
	return refs
}

// saveLibrary rewrites refs.jsonl and refreshes the query cache.
func saveLibrary(repoRoot string, refs []reference.Reference) error {
	if err := storage.WriteAll(config.RefsPath(repoRoot), refs); err != nil {
		return fmt.Errorf("writing refs: %w", err)
	}
	return refreshCache(repoRoot, refs)
}

// refreshCache replaces the query cache contents with refs.
func refreshCache(repoRoot string, refs []reference.Reference) error {
	db := mustOpenDatabase(repoRoot)
	defer db.Close()
	if err := db.Replace(refs); err != nil {
		return fmt.Errorf("updating cache: %w", err)
	}
	slog.Debug("cache refreshed", "refs", len(refs))
	return nil
}
