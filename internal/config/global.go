package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scribehub/scribe/internal/style"
)

// GlobalConfig represents configuration stored in ~/.config/scribe/config.yml.
type GlobalConfig struct {
	LibraryPath  string `yaml:"library_path,omitempty"`
	DefaultStyle string `yaml:"default_style,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "scribe"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// StyleEnvVar overrides the configured default style.
	StyleEnvVar = "SCRIBE_STYLE"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/scribe/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.LibraryPath != "" {
		cfg.LibraryPath = ExpandPath(cfg.LibraryPath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetLibraryPath returns the configured library path from global config.
func GetLibraryPath() string {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.LibraryPath
}

// ErrLibraryPathNotConfigured is returned when library_path is not set in config.
var ErrLibraryPathNotConfigured = errors.New("library_path not configured")

// ErrLibraryPathNotExist is returned when the configured library_path doesn't exist.
var ErrLibraryPathNotExist = errors.New("library_path does not exist")

// ValidateLibraryPath returns the library path from global config after validation.
func ValidateLibraryPath() (string, error) {
	path := GetLibraryPath()
	if path == "" {
		return "", ErrLibraryPathNotConfigured
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrLibraryPathNotExist, path)
	}
	return path, nil
}

// ResolveStyle picks the style for a command. The first non-empty value
// wins: the explicit flag, $SCRIBE_STYLE, the library config, then the
// global config. Unknown identifiers resolve to the default style.
func ResolveStyle(flag string, repo *Config) style.Style {
	candidates := []string{flag, os.Getenv(StyleEnvVar)}
	if repo != nil {
		candidates = append(candidates, repo.DefaultStyle)
	}
	if global, err := LoadGlobalConfig(); err == nil {
		candidates = append(candidates, global.DefaultStyle)
	}

	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return style.Parse(c)
		}
	}
	return style.Default
}

// HelpfulConfigMessage returns a helpful message when no library is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No scribe library found.

Run 'scribe init' to create one here, or create %s to set a default library:
  mkdir -p %s
  echo 'library_path: /path/to/your/library' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
