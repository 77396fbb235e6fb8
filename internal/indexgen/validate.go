package indexgen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sha1n/wikitree/internal/domain"
	"github.com/spf13/afero"
)

// CheckPreconditions validates the root and configuration before any work starts.
// Rules are checked in a fixed order and the first violation is returned.
func CheckPreconditions(fs afero.Fs, root string, cfg domain.ScanConfig) error {
	if strings.TrimSpace(root) == "" {
		return &ConfigValidationError{Rule: "root path must not be empty"}
	}

	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &FileAccessError{Message: "root directory not found", Path: root}
		}
		return &FileAccessError{Message: "cannot access root directory", Path: root, Err: err}
	}
	if !info.IsDir() {
		return &FileAccessError{Message: "root is not a directory", Path: root}
	}

	if len(cfg.FileTypes) == 0 {
		return &ConfigValidationError{Rule: "fileTypes must be a non-empty list"}
	}
	if cfg.MaxDepth <= 0 {
		return &ConfigValidationError{Rule: "maxDepth must be greater than 0"}
	}
	if cfg.MaxFileSizeKB <= 0 {
		return &ConfigValidationError{Rule: "maxFileSizeKB must be greater than 0"}
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return &ConfigValidationError{Rule: "outputDir must be a valid path"}
	}
	return nil
}

func checkPostconditions(fs afero.Fs, result *domain.ScanResult, cfg domain.ScanConfig) error {
	if ok, _ := afero.Exists(fs, result.IndexPath); !ok {
		return &IndexGenerationError{Message: "index file was not written: " + result.IndexPath}
	}
	if result.GeneratedNodes == 0 {
		return &IndexGenerationError{Message: "index contains no nodes, check the scan configuration"}
	}
	if !hasPathSuffix(result.IndexPath, filepath.Join(cfg.OutputDir, IndexFileName)) {
		return &IndexGenerationError{Message: "index path does not match the configured output directory: " + result.IndexPath}
	}

	if ok, _ := afero.Exists(fs, result.DigestPath); !ok {
		return &IndexGenerationError{Message: "digest file was not written: " + result.DigestPath}
	}
	if !hasPathSuffix(result.DigestPath, filepath.Join(cfg.OutputDir, DigestFileName)) {
		return &IndexGenerationError{Message: "digest path does not match the configured output directory: " + result.DigestPath}
	}
	return nil
}

func hasPathSuffix(path, suffix string) bool {
	return strings.HasSuffix(filepath.ToSlash(path), filepath.ToSlash(suffix))
}
