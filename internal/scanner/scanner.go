// Package scanner walks a directory tree and turns eligible files into index nodes.
package scanner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sha1n/wikitree/internal/analyzer"
	"github.com/sha1n/wikitree/internal/domain"
	"github.com/sha1n/wikitree/internal/markdown"
	"github.com/sha1n/wikitree/internal/pathpolicy"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Options carries the optional collaborators of a Scanner.
type Options struct {
	// Registry selects code analyzers. Nil means no file is code-analyzed.
	Registry *analyzer.Registry

	// Summarizer derives summaries for files no analyzer claims. Defaults to a new Summarizer.
	Summarizer *markdown.Summarizer

	// Workers bounds how many sibling files are processed at once. Values below 1 mean 1.
	Workers int

	Logger *slog.Logger
}

// Scanner performs one depth-limited traversal.
type Scanner struct {
	fs         afero.Fs
	outputDir  string
	policy     *pathpolicy.Policy
	registry   *analyzer.Registry
	summarizer *markdown.Summarizer
	workers    int
	logger     *slog.Logger
}

// Result is the node tree and totals of a traversal.
type Result struct {
	Nodes []domain.IndexNode
	Stats Stats
}

// New creates a scanner over fs for the given configuration.
func New(fs afero.Fs, cfg domain.ScanConfig, opts Options) *Scanner {
	s := &Scanner{
		fs:         fs,
		outputDir:  cfg.OutputDir,
		policy:     pathpolicy.New(cfg),
		registry:   opts.Registry,
		summarizer: opts.Summarizer,
		workers:    max(opts.Workers, 1),
		logger:     opts.Logger,
	}
	if s.summarizer == nil {
		s.summarizer = markdown.NewSummarizer()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Scan walks root (depth 0). Per-file problems are absorbed into the stats;
// only a directory that cannot be listed or a canceled context fails the scan.
// The output directory under root is never traversed.
func (s *Scanner) Scan(ctx context.Context, root string) (Result, error) {
	w := walk{Scanner: s, root: root}
	if s.outputDir != "" {
		w.skipDir = filepath.Join(root, s.outputDir)
	}
	nodes, stats, err := w.scanDir(ctx, root, 0)
	if err != nil {
		return Result{}, err
	}
	return Result{Nodes: nodes, Stats: stats}, nil
}

// walk is the per-call state of Scan.
type walk struct {
	*Scanner
	root    string
	skipDir string
}

func (w walk) scanDir(ctx context.Context, dir string, depth int) ([]domain.IndexNode, Stats, error) {
	s, root := w.Scanner, w.root
	var stats Stats
	if !s.policy.AllowsDepth(depth) {
		return nil, stats, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	// one slot per entry keeps listing order regardless of completion order
	slots := make([]*domain.IndexNode, len(entries))
	outcomes := make([]*Outcome, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !s.policy.AllowsFile(entry.Name()) {
			o := skipOutcome(SkipUnsupported)
			outcomes[i] = &o
			continue
		}
		g.Go(func() error {
			o := s.processFile(gctx, root, path, entry)
			outcomes[i] = &o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	// files and subdirectories are folded in one pass so errors keep listing order
	for i, entry := range entries {
		if !entry.IsDir() {
			o := outcomes[i]
			stats.record(*o)
			if o.Node != nil {
				slots[i] = o.Node
			}
			if o.Failure != nil {
				s.logger.Debug("File processing failed", "path", o.Failure.FilePath, "code", o.Failure.Code, "error", o.Failure.Message)
			}
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if s.policy.ExcludesDir(entry.Name()) || path == w.skipDir {
			s.logger.Debug("Skipping excluded directory", "path", path)
			continue
		}

		children, childStats, err := w.scanDir(ctx, path, depth+1)
		if err != nil {
			return nil, stats, err
		}
		stats.add(childStats)
		if len(children) > 0 {
			slots[i] = &domain.IndexNode{
				ID:       validText(relativeID(root, path)),
				Title:    validText(entry.Name()),
				Path:     validText(path),
				Type:     domain.NodeFolder,
				Children: children,
			}
		}
	}

	var nodes []domain.IndexNode
	for _, n := range slots {
		if n != nil {
			nodes = append(nodes, *n)
		}
	}
	return nodes, stats, nil
}

// processFile stats, size-checks, reads and analyzes a single file.
func (s *Scanner) processFile(ctx context.Context, root, path string, entry os.FileInfo) Outcome {
	info, err := s.fs.Stat(path)
	if err != nil {
		return failureOutcome(domain.ErrCodeStatFailed, path, err)
	}
	if !s.policy.AllowsSize(info.Size()) {
		s.logger.Debug("Skipping oversized file", "path", path, "size", info.Size())
		return skipOutcome(SkipTooLarge)
	}

	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return failureOutcome(domain.ErrCodeReadFailed, path, err)
	}
	if pathpolicy.IsBinary(content) {
		s.logger.Debug("Skipping binary file", "path", path)
		return skipOutcome(SkipBinary)
	}
	// index.json is UTF-8; invalid sequences are replaced up front so the
	// persisted index reads back equal to the scanned one
	if !utf8.Valid(content) {
		content = bytes.ToValidUTF8(content, []byte(string(utf8.RuneError)))
	}

	node := domain.IndexNode{
		ID:       validText(relativeID(root, path)),
		Title:    validText(entry.Name()),
		Path:     validText(path),
		Type:     domain.NodeFile,
		Language: analyzer.LanguageOf(path),
	}

	if a := s.registry.Select(path); a != nil {
		node.Language = a.Language()
		if structure, ok := a.Analyze(ctx, path, content); ok {
			node.CodeStructure = structure
		}
		if deps := a.ExtractDependencies(ctx, path, content); len(deps) > 0 {
			node.Dependencies = deps
		}
		return nodeOutcome(node)
	}

	summary, err := s.summarizer.Summary(content)
	if err != nil {
		return failureOutcome(domain.ErrCodeFrontMatterInvalid, path, err)
	}
	node.Summary = summary
	return nodeOutcome(node)
}

func validText(s string) string {
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}

func relativeID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
