package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/sha1n/wikitree/internal/domain"
)

// classifyDependency turns an import specifier into a DependencyInfo.
// Specifiers starting with "." are resolved against the importing file's directory,
// specifiers starting with "/" pass through, anything else is a package name.
func classifyDependency(filePath, specifier string) domain.DependencyInfo {
	switch {
	case strings.HasPrefix(specifier, "/"):
		return domain.DependencyInfo{
			Kind:         domain.DependencyInternal,
			Name:         specifier,
			ResolvedPath: specifier,
		}
	case strings.HasPrefix(specifier, "."):
		return domain.DependencyInfo{
			Kind:         domain.DependencyInternal,
			Name:         specifier,
			ResolvedPath: resolveRelative(filePath, specifier),
		}
	default:
		return domain.DependencyInfo{
			Kind: domain.DependencyExternalPackage,
			Name: specifier,
		}
	}
}

func resolveRelative(filePath, specifier string) string {
	dir := filepath.Dir(filePath)
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	return filepath.Join(dir, filepath.FromSlash(specifier))
}
