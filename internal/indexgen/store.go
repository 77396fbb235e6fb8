package indexgen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sha1n/wikitree/internal/domain"
	"github.com/spf13/afero"
)

const (
	// IndexFileName is the name of the persisted index inside the output directory.
	IndexFileName = "index.json"

	// DigestFileName is the name of the markdown digest inside the output directory.
	DigestFileName = "index.md"

	tempSuffix = ".tmp"
)

// IndexPath returns <root>/<outputDir>/index.json.
func IndexPath(root, outputDir string) string {
	return filepath.Join(root, outputDir, IndexFileName)
}

// DigestPath returns <root>/<outputDir>/index.md.
func DigestPath(root, outputDir string) string {
	return filepath.Join(root, outputDir, DigestFileName)
}

// MarshalIndex renders the index as 2-space indented JSON.
func MarshalIndex(index *domain.Index) ([]byte, error) {
	return json.MarshalIndent(index, "", "  ")
}

// WriteIndexAtomic writes the index to a sibling temp file and renames it into place,
// so readers never observe a partial index.
func WriteIndexAtomic(fs afero.Fs, path string, index *domain.Index) error {
	data, err := MarshalIndex(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	tempPath := path + tempSuffix
	if err := afero.WriteFile(fs, tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write index temp file: %w", err)
	}

	if err := fs.Rename(tempPath, path); err != nil {
		_ = fs.Remove(tempPath)
		return fmt.Errorf("failed to rename index file: %w", err)
	}

	return nil
}

// LoadIndex reads a persisted index. Any failure is reported as *IndexLoadError.
func LoadIndex(fs afero.Fs, path string) (*domain.Index, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &IndexLoadError{Path: path, Err: fmt.Errorf("index not found, generate it first: %w", err)}
		}
		return nil, &IndexLoadError{Path: path, Err: err}
	}

	var index domain.Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, &IndexLoadError{Path: path, Err: fmt.Errorf("failed to parse index: %w", err)}
	}
	if index.Version == "" {
		return nil, &IndexLoadError{Path: path, Err: fmt.Errorf("index has no version")}
	}

	return &index, nil
}
