// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scribehub/scribe/internal/style"
)

// Config represents repository configuration stored in .scribehub/config.json.
type Config struct {
	DefaultStyle string `json:"default_style,omitempty"` // Style used when --style is absent
	BibPath      string `json:"bib_path,omitempty"`      // Default .bib target for export --append
}

const (
	ScribeDir  = ".scribehub"
	ConfigFile = "config.json"
	RefsFile   = "refs.jsonl"
	CacheDir   = "cache"
	DBFile     = "refs.db"
)

// ErrNotRepository is returned when no .scribehub directory is found.
var ErrNotRepository = errors.New("not in a scribe library (no .scribehub directory found)")

// ScribePath returns the path to the .scribehub directory from a root path.
func ScribePath(root string) string {
	return filepath.Join(root, ScribeDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ScribeDir, ConfigFile)
}

// RefsPath returns the path to refs.jsonl from a root path.
func RefsPath(root string) string {
	return filepath.Join(root, ScribeDir, RefsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, ScribeDir, CacheDir)
}

// DBPath returns the path to refs.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, ScribeDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a scribe library.
func IsRepository(root string) bool {
	info, err := os.Stat(ScribePath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a scribe library.
// Returns the library root path or ErrNotRepository.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotRepository
		}
		abs = parent
	}
}

// Init creates the .scribehub layout under root with a default config.
// It fails if a library already exists there.
func Init(root string) error {
	if IsRepository(root) {
		return fmt.Errorf("library already exists at %s", ScribePath(root))
	}
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", ScribeDir, err)
	}
	if err := os.WriteFile(RefsPath(root), nil, 0644); err != nil {
		return fmt.Errorf("creating refs file: %w", err)
	}

	cfg := &Config{DefaultStyle: string(style.Default)}
	return cfg.Save(root)
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Set updates one configuration key after validating its value.
func (c *Config) Set(key, value string) error {
	switch key {
	case "default_style":
		if err := ValidateStyle(value); err != nil {
			return err
		}
		c.DefaultStyle = value
	case "bib_path":
		c.BibPath = value
	default:
		return fmt.Errorf("unknown config key: %s (valid: default_style, bib_path)", key)
	}
	return nil
}

// ValidateStyle checks that the style identifier is registered.
func ValidateStyle(id string) error {
	if id == "" {
		return nil // Empty falls back to the default style
	}
	if _, ok := style.Lookup(id); !ok {
		return fmt.Errorf("unknown style: %s (valid: %v)", id, style.All())
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
