package analyzer

import "strings"

// sourceLines splits content into lines for doc-comment lookup.
func sourceLines(content []byte) []string {
	return strings.Split(string(content), "\n")
}

// docComment returns the comment block directly above the 1-based line, or "".
//
// Lines are scanned upward starting at line-1. A trimmed line starting with "//"
// or "*" is collected and the scan continues; a line starting with "/**" is
// collected and ends the scan. Any other line, blank lines included, ends the scan.
// Collected lines are joined top to bottom with "\n".
func docComment(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}

	var collected []string
	for i := line - 2; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if strings.HasPrefix(l, "//") || strings.HasPrefix(l, "*") {
			collected = append(collected, l)
			continue
		}
		if strings.HasPrefix(l, "/**") {
			collected = append(collected, l)
		}
		break
	}

	if len(collected) == 0 {
		return ""
	}
	// collected is bottom-up
	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}
	return strings.Join(collected, "\n")
}
