package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sha1n/wikitree/internal/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by LoadSettings.
const EnvPrefix = "WIKITREE"

// Defaults for a scan run.
var (
	DefaultFileTypes      = []string{"md", "txt", "rst", "adoc", "java", "cs", "js", "ts", "html", "vue"}
	DefaultExcludeFolders = []string{"node_modules", ".git", "dist", "build", "target"}
)

const (
	DefaultMaxDepth      = 10
	DefaultMaxFileSizeKB = 1024
	DefaultOutputDir     = ".wiki-tree"
)

// ScanSettings configuration for directory scanning
type ScanSettings struct {
	FileTypes           []string `mapstructure:"file_types"`
	ExcludeFolders      []string `mapstructure:"exclude_folders"`
	IncludeCodeComments bool     `mapstructure:"include_code_comments"`
	MaxDepth            int      `mapstructure:"max_depth"`
	MaxFileSizeKB       int      `mapstructure:"max_file_size_kb"`
	OutputDir           string   `mapstructure:"output_dir"`
}

// SearchSettings configuration for index queries
type SearchSettings struct {
	MaxResults int `mapstructure:"max_results"`
}

// Settings application settings
type Settings struct {
	Root        string         `mapstructure:"root"`
	Scan        ScanSettings   `mapstructure:"scan"`
	Workers     int            `mapstructure:"workers"`
	LockTimeout time.Duration  `mapstructure:"lock_timeout"`
	LogLevel    string         `mapstructure:"log_level"`
	Search      SearchSettings `mapstructure:"search"`
}

// flagBindings maps setting keys to CLI flag names.
var flagBindings = map[string]string{
	"root":                       "root",
	"scan.file_types":            "file-types",
	"scan.exclude_folders":       "exclude-folders",
	"scan.include_code_comments": "include-code-comments",
	"scan.max_depth":             "max-depth",
	"scan.max_file_size_kb":      "max-file-size-kb",
	"scan.output_dir":            "output-dir",
	"workers":                    "workers",
	"lock_timeout":               "lock-timeout",
	"log_level":                  "log-level",
	"search.max_results":         "max-results",
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("root", ".")
	v.SetDefault("scan.file_types", DefaultFileTypes)
	v.SetDefault("scan.exclude_folders", DefaultExcludeFolders)
	v.SetDefault("scan.include_code_comments", false)
	v.SetDefault("scan.max_depth", DefaultMaxDepth)
	v.SetDefault("scan.max_file_size_kb", DefaultMaxFileSizeKB)
	v.SetDefault("scan.output_dir", DefaultOutputDir)
	v.SetDefault("workers", 1)
	v.SetDefault("lock_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("search.max_results", 50)

	// Environment variables, e.g. WIKITREE_SCAN_MAX_DEPTH
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key := range flagBindings {
		_ = v.BindEnv(key, envName(key))
	}

	if flags != nil {
		for key, flag := range flagBindings {
			if f := flags.Lookup(flag); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Comma-separated lists from env vars arrive as a single element
	settings.Scan.FileTypes = splitList(settings.Scan.FileTypes, os.Getenv(envName("scan.file_types")))
	settings.Scan.ExcludeFolders = splitList(settings.Scan.ExcludeFolders, os.Getenv(envName("scan.exclude_folders")))

	settings.Root = expandHomeDir(settings.Root)
	return &settings, nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// splitList re-splits a list that came in as one comma-separated value,
// then trims and drops empty entries.
func splitList(values []string, env string) []string {
	if env != "" && (len(values) == 0 || (len(values) == 1 && strings.Contains(values[0], ","))) {
		values = strings.Split(env, ",")
	}

	result := []string{}
	for _, s := range values {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// ScanConfig returns the scan configuration handed to the indexing engine.
// Scan fields are validated by the engine itself.
func (s *Settings) ScanConfig() domain.ScanConfig {
	return domain.ScanConfig{
		FileTypes:           append([]string(nil), s.Scan.FileTypes...),
		ExcludeFolders:      append([]string(nil), s.Scan.ExcludeFolders...),
		IncludeCodeComments: s.Scan.IncludeCodeComments,
		MaxDepth:            s.Scan.MaxDepth,
		MaxFileSizeKB:       s.Scan.MaxFileSizeKB,
		OutputDir:           s.Scan.OutputDir,
	}
}

// ParseLogLevel parses debug, info, warn or error (case-insensitive).
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log-level must be one of debug, info, warn, error, got: %s", s)
	}
	return level, nil
}

// ValidateSettings checks the application level settings.
func ValidateSettings(s *Settings) error {
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}
	if s.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if s.LockTimeout <= 0 {
		return errors.New("lock-timeout must be positive")
	}
	if s.Search.MaxResults <= 0 {
		return errors.New("max-results must be positive")
	}
	return nil
}
