// Package indexgen assembles, validates and persists the directory index.
package indexgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sha1n/wikitree/internal/analyzer"
	"github.com/sha1n/wikitree/internal/domain"
	"github.com/sha1n/wikitree/internal/markdown"
	"github.com/sha1n/wikitree/internal/scanner"
	"github.com/spf13/afero"
)

// Generator runs indexing passes. It holds collaborators only and keeps no
// state between runs, so one value may serve concurrent calls on different roots.
type Generator struct {
	Fs     afero.Fs
	Clock  func() time.Time
	Logger *slog.Logger

	// Workers bounds sibling file processing. Values below 1 mean sequential.
	Workers int

	// Registry overrides the default TypeScript/JavaScript analyzers.
	Registry   *analyzer.Registry
	Summarizer *markdown.Summarizer
}

// NewGenerator returns a generator over fs using the wall clock and the default logger.
func NewGenerator(fs afero.Fs) *Generator {
	return &Generator{
		Fs:         fs,
		Clock:      time.Now,
		Logger:     slog.Default(),
		Workers:    1,
		Summarizer: markdown.NewSummarizer(),
	}
}

// GenerateIndex scans root and writes <root>/<outputDir>/index.json and index.md.
//
// Precondition failures are returned as *ConfigValidationError or *FileAccessError.
// Every other failure, including a postcondition violation, is an *IndexGenerationError.
func (g *Generator) GenerateIndex(ctx context.Context, root string, cfg domain.ScanConfig) (*domain.ScanResult, error) {
	fs := g.fs()
	if err := CheckPreconditions(fs, root, cfg); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, &FileAccessError{Message: "cannot resolve root directory", Path: root, Err: err}
		}
		root = abs
	}
	root = filepath.Clean(root)

	logger := g.logger().With("run_id", uuid.NewString(), "root", root)
	logger.Info("Generating index", "output_dir", cfg.OutputDir, "max_depth", cfg.MaxDepth)

	result, err := g.generate(ctx, fs, logger, root, cfg)
	if err != nil {
		err = classify(err)
		logger.Error("Index generation failed", "error", err)
		return nil, err
	}

	logger.Info("Index generated",
		"scanned", result.ScannedFiles,
		"skipped", result.SkippedFiles,
		"generated", result.GeneratedNodes,
		"errors", len(result.Errors),
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (g *Generator) generate(ctx context.Context, fs afero.Fs, logger *slog.Logger, root string, cfg domain.ScanConfig) (*domain.ScanResult, error) {
	start := g.now()

	registry := g.Registry
	if registry == nil {
		registry = analyzer.NewDefaultRegistry(analyzer.Options{IncludeComments: cfg.IncludeCodeComments})
	}
	summarizer := g.summarizer()

	scan, err := scanner.New(fs, cfg, scanner.Options{
		Registry:   registry,
		Summarizer: summarizer,
		Workers:    g.Workers,
		Logger:     logger,
	}).Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	index := &domain.Index{
		Version:     domain.IndexVersion,
		GeneratedAt: start.UTC(),
		Root:        strings.ToValidUTF8(root, string(utf8.RuneError)),
		Nodes:       scan.Nodes,
	}
	if index.Nodes == nil {
		index.Nodes = []domain.IndexNode{}
	}

	result := &domain.ScanResult{
		ScannedFiles:   scan.Stats.Scanned,
		SkippedFiles:   scan.Stats.Skipped,
		GeneratedNodes: scan.Stats.Generated,
		Errors:         append([]domain.GenerationError{}, scan.Stats.Errors...),
		CodeAnalysis:   scan.Stats.Code,
	}

	indexPath := IndexPath(root, cfg.OutputDir)
	if err := WriteIndexAtomic(fs, indexPath, index); err != nil {
		return nil, err
	}
	result.IndexPath = indexPath

	digestPath := DigestPath(root, cfg.OutputDir)
	digest := RenderDigest(index, summarizer.ReadmeIntroduction(fs, root))
	if err := afero.WriteFile(fs, digestPath, []byte(digest), 0644); err != nil {
		return nil, fmt.Errorf("failed to write digest: %w", err)
	}
	result.DigestPath = digestPath
	result.DurationMs = g.now().Sub(start).Milliseconds()

	if err := checkPostconditions(fs, result, cfg); err != nil {
		return nil, err
	}
	return result, nil
}

// classify passes precondition errors through and wraps everything else.
func classify(err error) error {
	var cfgErr *ConfigValidationError
	var accessErr *FileAccessError
	var genErr *IndexGenerationError
	switch {
	case errors.As(err, &cfgErr), errors.As(err, &accessErr), errors.As(err, &genErr):
		return err
	default:
		return &IndexGenerationError{Message: "failed to generate index", Err: err}
	}
}

func (g *Generator) fs() afero.Fs {
	if g.Fs == nil {
		return afero.NewOsFs()
	}
	return g.Fs
}

func (g *Generator) now() time.Time {
	if g.Clock == nil {
		return time.Now()
	}
	return g.Clock()
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func (g *Generator) summarizer() *markdown.Summarizer {
	if g.Summarizer == nil {
		return markdown.NewSummarizer()
	}
	return g.Summarizer
}
