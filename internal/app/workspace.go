package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/sha1n/wikitree/internal/config"
	"github.com/sha1n/wikitree/internal/domain"
	"github.com/sha1n/wikitree/internal/filelock"
	"github.com/sha1n/wikitree/internal/indexgen"
	"github.com/sha1n/wikitree/internal/search"
	"github.com/spf13/afero"
)

// Workspace binds the resolved settings to the indexing engine for one root.
// It is the only place that knows where the index lives.
type Workspace struct {
	fs        afero.Fs
	root      string
	settings  *config.Settings
	generator *indexgen.Generator
	logger    *slog.Logger
}

// NewWorkspace resolves the configured root to an absolute path.
func NewWorkspace(fs afero.Fs, settings *config.Settings, logger *slog.Logger) (*Workspace, error) {
	root := settings.Root
	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
		}
		root = abs
	}

	generator := indexgen.NewGenerator(fs)
	generator.Logger = logger
	generator.Workers = settings.Workers

	return &Workspace{
		fs:        fs,
		root:      root,
		settings:  settings,
		generator: generator,
		logger:    logger,
	}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string {
	return w.root
}

// GenerateIndex validates the configuration, takes the output directory lock
// and runs one indexing pass. Concurrent runs on the same output directory wait
// for each other up to the configured lock timeout.
func (w *Workspace) GenerateIndex(ctx context.Context) (*domain.ScanResult, error) {
	cfg := w.settings.ScanConfig()
	if err := indexgen.CheckPreconditions(w.fs, w.root, cfg); err != nil {
		return nil, err
	}

	lock := filelock.ForOutputDir(w.root, cfg.OutputDir)
	if err := lock.Acquire(ctx, w.settings.LockTimeout); err != nil {
		if errors.Is(err, filelock.ErrLockTimeout) {
			return nil, fmt.Errorf("another run holds %s (pid %d): %w", lock.Path(), filelock.HolderPID(lock.Path()), err)
		}
		return nil, fmt.Errorf("failed to lock output directory: %w", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			w.logger.Error("Failed to release run lock", "path", lock.Path(), "error", err)
		}
	}()

	return w.generator.GenerateIndex(ctx, w.root, cfg)
}

// IndexPath returns the location of the persisted index.
func (w *Workspace) IndexPath() string {
	return indexgen.IndexPath(w.root, w.settings.Scan.OutputDir)
}

// LoadIndex reads the persisted index.
func (w *Workspace) LoadIndex() (*domain.Index, error) {
	return indexgen.LoadIndex(w.fs, w.IndexPath())
}

// MaxResults returns the configured search result cap.
func (w *Workspace) MaxResults() int {
	return w.settings.Search.MaxResults
}

// Search queries the persisted index.
func (w *Workspace) Search(ctx context.Context, queryStr, glob string) ([]search.Hit, error) {
	index, err := w.LoadIndex()
	if err != nil {
		return nil, err
	}

	searcher, err := search.NewNodeSearcher(index)
	if err != nil {
		return nil, err
	}
	defer func() { _ = searcher.Close() }()

	return searcher.Search(ctx, queryStr, search.Options{Glob: glob, MaxResults: w.MaxResults()})
}

// Node looks one node up by id in the persisted index.
func (w *Workspace) Node(id string) (domain.IndexNode, error) {
	index, err := w.LoadIndex()
	if err != nil {
		return domain.IndexNode{}, err
	}
	node, ok := search.FindNode(index, id)
	if !ok {
		return domain.IndexNode{}, fmt.Errorf("node not found: %s", id)
	}
	return node, nil
}
