package app

import "github.com/spf13/pflag"

// RegisterFlags registers the settings flags on the given FlagSet.
// Defaults live in config so that unset flags never shadow env vars.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("root", "r", "", "Directory to index (default: current directory)")
	flags.StringSlice("file-types", nil, "File extensions to index (comma-separated)")
	flags.StringSlice("exclude-folders", nil, "Folder names to skip (comma-separated)")
	flags.Bool("include-code-comments", false, "Collect source comments in code structure")
	flags.IntP("max-depth", "d", 0, "Maximum directory depth")
	flags.Int("max-file-size-kb", 0, "Maximum file size in KB")
	flags.StringP("output-dir", "o", "", "Output directory relative to root")
	flags.IntP("workers", "w", 0, "Number of files processed concurrently per directory")
	flags.Duration("lock-timeout", 0, "How long to wait for another run on the same output directory")
	flags.StringP("log-level", "l", "", "Log level: debug, info, warn or error")
	flags.IntP("max-results", "n", 0, "Maximum number of search results")
}
