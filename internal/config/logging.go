package config

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates a text logger at the configured level.
// An unparsable level falls back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Log logs the resolved settings in a granular way
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: root", "value", s.Root)
	logger.InfoContext(ctx, "Config: scan.file_types", "value", strings.Join(s.Scan.FileTypes, ","))
	logger.InfoContext(ctx, "Config: scan.exclude_folders", "value", strings.Join(s.Scan.ExcludeFolders, ","))
	logger.InfoContext(ctx, "Config: scan.max_depth", "value", s.Scan.MaxDepth)
	logger.InfoContext(ctx, "Config: scan.max_file_size_kb", "value", s.Scan.MaxFileSizeKB)
	logger.InfoContext(ctx, "Config: scan.output_dir", "value", s.Scan.OutputDir)
	if s.Scan.IncludeCodeComments {
		logger.InfoContext(ctx, "Config: scan.include_code_comments", "value", true)
	}
	logger.InfoContext(ctx, "Config: workers", "value", s.Workers)
	logger.DebugContext(ctx, "Config: lock_timeout", "value", s.LockTimeout)
	logger.DebugContext(ctx, "Config: search.max_results", "value", s.Search.MaxResults)
}

// SettingsLogValue returns a slog.Value grouping the scan settings
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("root", s.Root),
		slog.Any("file_types", s.Scan.FileTypes),
		slog.Any("exclude_folders", s.Scan.ExcludeFolders),
		slog.Int("max_depth", s.Scan.MaxDepth),
		slog.Int("max_file_size_kb", s.Scan.MaxFileSizeKB),
		slog.String("output_dir", s.Scan.OutputDir),
		slog.Int("workers", s.Workers),
	)
}
