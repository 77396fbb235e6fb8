package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/wikitree/internal/config"
	"github.com/sha1n/wikitree/internal/indexgen"
	mcputil "github.com/sha1n/wikitree/internal/mcp"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

// Command names accepted by RunWithDeps.
const (
	CommandGenerate = "generate"
	CommandSearch   = "search"
	CommandShow     = "show"
	CommandServe    = "serve"
)

// Command describes the subcommand being run.
type Command struct {
	Name string
	Args []string
	Glob string
}

var _ mcputil.Workspace = (*Workspace)(nil)

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	CreateServer      func(*config.Settings, *Workspace, *slog.Logger) (*mcp.Server, func(), error)
	Fs                afero.Fs
	Stdout            io.Writer
	Stderr            io.Writer
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:  config.LoadSettingsWithFlags,
		ValidSettings: config.ValidateSettings,
		CreateServer:  CreateMCPServer,
		Fs:            afero.NewOsFs(),
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
	}
}

// RunWithDeps executes one command with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string, cmd Command) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	stdout, stderr := params.Stdout, params.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	// Logs always go to stderr; stdout carries command output or the stdio transport.
	logger := config.NewLogger(stderr, settings.LogLevel)
	slog.SetDefault(logger)

	logger.Debug("Starting wikitree", "version", version, "command", cmd.Name, "scan", config.SettingsLogValue(*settings))
	config.Log(settings)

	fs := params.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	workspace, err := NewWorkspace(fs, settings, logger)
	if err != nil {
		return err
	}

	switch cmd.Name {
	case CommandGenerate:
		return runGenerate(ctx, workspace, stdout)
	case CommandSearch:
		return runSearch(ctx, workspace, stdout, cmd)
	case CommandShow:
		return runShow(workspace, stdout, cmd)
	case CommandServe:
		return runServe(ctx, params, settings, workspace, logger)
	default:
		return fmt.Errorf("unknown command: %q", cmd.Name)
	}
}

func runGenerate(ctx context.Context, workspace *Workspace, out io.Writer) error {
	result, err := workspace.GenerateIndex(ctx)
	if err != nil {
		return err
	}

	index, err := workspace.LoadIndex()
	if err != nil {
		return err
	}
	metrics := indexgen.CalculateMetrics(index.Nodes)

	_, err = fmt.Fprintf(out, "%s\n- Folders: %d\n- Files: %d\n",
		mcputil.FormatScanResult(result), metrics.FolderCount, metrics.FileCount)
	return err
}

func runSearch(ctx context.Context, workspace *Workspace, out io.Writer, cmd Command) error {
	queryStr := strings.Join(cmd.Args, " ")
	hits, err := workspace.Search(ctx, queryStr, cmd.Glob)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, mcputil.FormatHits(hits, queryStr))
	return err
}

func runShow(workspace *Workspace, out io.Writer, cmd Command) error {
	if len(cmd.Args) != 1 {
		return fmt.Errorf("show expects exactly one node id, got %d", len(cmd.Args))
	}
	node, err := workspace.Node(strings.Trim(cmd.Args[0], "/"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(node)
}

func runServe(ctx context.Context, params RunParams, settings *config.Settings, workspace *Workspace, logger *slog.Logger) error {
	createServer := params.CreateServer
	if createServer == nil {
		createServer = CreateMCPServer
	}
	mcpServer, cleanup, err := createServer(settings, workspace, logger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Use custom transport if provided (for testing), otherwise use stdio
	transport := params.CustomIOTransport
	if transport == nil {
		transport = &mcp.StdioTransport{}
	}
	logger.Info("Serving wiki index over stdio", "root", workspace.Root())
	return mcpServer.Run(ctx, transport)
}

// CreateMCPServer creates the MCP server with registered tools
func CreateMCPServer(_ *config.Settings, workspace *Workspace, logger *slog.Logger) (*mcp.Server, func(), error) {
	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:      "wikitree",
		Version:   "0.1.0",
		Workspace: workspace,
		Logger:    logger,
	})
	return server, nil, nil
}
