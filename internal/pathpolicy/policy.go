// Package pathpolicy decides which directory entries take part in an indexing run.
// Every function here is pure.
package pathpolicy

import (
	"path/filepath"
	"strings"

	"github.com/sha1n/wikitree/internal/domain"
)

// binarySniffLen is how many leading bytes IsBinary inspects.
const binarySniffLen = 512

// Extension returns the lowercased text after the final '.' of the base name.
// Returns empty string if there is no dot.
func Extension(name string) string {
	base := filepath.Base(name)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// IsExtensionSupported reports whether the file's extension is one of fileTypes.
// Entries in fileTypes may be given with or without a leading dot, in any case.
func IsExtensionSupported(name string, fileTypes []string) bool {
	ext := Extension(name)
	if ext == "" {
		return false
	}
	for _, ft := range fileTypes {
		if normalizeFileType(ft) == ext {
			return true
		}
	}
	return false
}

// IsExcludedDirectory reports whether a directory base name is in the exclusion set.
// Matching is exact and case-sensitive; it does not depend on where the directory sits.
func IsExcludedDirectory(name string, excludeFolders []string) bool {
	for _, ex := range excludeFolders {
		if ex == name {
			return true
		}
	}
	return false
}

// IsWithinDepth reports whether a directory at depth (root = 0) may be traversed.
func IsWithinDepth(depth, maxDepth int) bool {
	return depth <= maxDepth
}

// IsWithinSize reports whether a file of sizeBytes fits within maxFileSizeKB.
// A file exactly at the limit is accepted.
func IsWithinSize(sizeBytes int64, maxFileSizeKB int) bool {
	return sizeBytes <= int64(maxFileSizeKB)*1024
}

// IsBinary checks if the content appears to be binary by looking for null bytes
// in the first 512 bytes.
func IsBinary(content []byte) bool {
	checkLen := min(len(content), binarySniffLen)
	for i := range checkLen {
		if content[i] == 0 {
			return true
		}
	}
	return false
}

func normalizeFileType(ft string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ft), "."))
}

// Policy binds the predicates above to one ScanConfig with precomputed lookup sets.
type Policy struct {
	fileTypes     map[string]struct{}
	excluded      map[string]struct{}
	maxDepth      int
	maxFileSizeKB int
}

// New creates a Policy for the given configuration.
func New(cfg domain.ScanConfig) *Policy {
	p := &Policy{
		fileTypes:     make(map[string]struct{}, len(cfg.FileTypes)),
		excluded:      make(map[string]struct{}, len(cfg.ExcludeFolders)),
		maxDepth:      cfg.MaxDepth,
		maxFileSizeKB: cfg.MaxFileSizeKB,
	}
	for _, ft := range cfg.FileTypes {
		if n := normalizeFileType(ft); n != "" {
			p.fileTypes[n] = struct{}{}
		}
	}
	for _, ex := range cfg.ExcludeFolders {
		p.excluded[ex] = struct{}{}
	}
	return p
}

// AllowsFile reports whether a file name has a configured extension.
func (p *Policy) AllowsFile(name string) bool {
	_, ok := p.fileTypes[Extension(name)]
	return ok
}

// ExcludesDir reports whether a directory base name is excluded.
func (p *Policy) ExcludesDir(name string) bool {
	_, ok := p.excluded[name]
	return ok
}

// AllowsDepth reports whether a directory at depth may be traversed.
func (p *Policy) AllowsDepth(depth int) bool {
	return IsWithinDepth(depth, p.maxDepth)
}

// AllowsSize reports whether a file of sizeBytes is within the size limit.
func (p *Policy) AllowsSize(sizeBytes int64) bool {
	return IsWithinSize(sizeBytes, p.maxFileSizeKB)
}
