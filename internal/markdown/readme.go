package markdown

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// NoReadmePlaceholder is the introduction used when the root has no readable README.
const NoReadmePlaceholder = "No README found at the repository root."

// ReadmeCandidates lists README names in preference order, compared case-insensitively.
var ReadmeCandidates = []string{"readme.md", "readme.markdown", "readme.txt", "readme"}

// FindReadme returns the path of the preferred README directly under root, or "".
func FindReadme(fsys afero.Fs, root string) string {
	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		return ""
	}

	byName := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		if _, seen := byName[lower]; !seen {
			byName[lower] = e.Name()
		}
	}

	for _, candidate := range ReadmeCandidates {
		if name, ok := byName[candidate]; ok {
			return filepath.Join(root, name)
		}
	}
	return ""
}

// ReadmeIntroduction returns the introduction drawn from the root README,
// or NoReadmePlaceholder if there is no README or it cannot be read.
func (s *Summarizer) ReadmeIntroduction(fsys afero.Fs, root string) string {
	path := FindReadme(fsys, root)
	if path == "" {
		return NoReadmePlaceholder
	}

	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return NoReadmePlaceholder
	}

	intro, err := s.Introduction(content)
	if err != nil || intro == "" {
		return NoReadmePlaceholder
	}
	return intro
}
