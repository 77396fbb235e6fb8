package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sha1n/wikitree/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is injected at build time
	Version = "dev"
	// Build is injected at build time
	Build = "unknown"
	// ProgramName is injected at build time
	ProgramName = "wikitree"
)

func main() {
	runMain(os.Args, os.Exit)
}

func runMain(args []string, exit func(int)) {
	if err := Execute(Version, Build, ProgramName, args[1:]); err != nil {
		exit(1)
	}
}

// Execute is the entry point for the CLI, extracted for testing
func Execute(version, build, programName string, args []string) error {
	rootCmd := &cobra.Command{
		Use:          programName,
		Short:        "Directory wiki indexer",
		Long:         "Scans a directory tree of documentation and TypeScript/JavaScript sources into a searchable index.json and index.md digest.",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate(`{{.Version}}
`)
	app.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "generate",
			Short: "Scan the root directory and write the index",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithFlags(cmd.Flags(), version, app.Command{Name: app.CommandGenerate})
			},
		},
		newSearchCommand(version),
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print one index node as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithFlags(cmd.Flags(), version, app.Command{Name: app.CommandShow, Args: args})
			},
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the index tools over MCP stdio",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWithFlags(cmd.Flags(), version, app.Command{Name: app.CommandServe})
			},
		},
	)

	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

func newSearchCommand(version string) *cobra.Command {
	var glob string
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search the generated index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithFlags(cmd.Flags(), version, app.Command{Name: app.CommandSearch, Args: args, Glob: glob})
		},
	}
	cmd.Flags().StringVarP(&glob, "glob", "g", "", "Only return nodes whose id matches this glob (e.g. docs/**/*.md)")
	return cmd
}

func runWithFlags(flags *pflag.FlagSet, version string, command app.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.RunWithDeps(ctx, app.DefaultRunParams(), flags, version, command)
}
