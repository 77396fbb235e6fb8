// Package markdown derives short prose summaries from markdown-family documents.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const (
	// SummaryMaxChars caps a file summary. The cut is exact, with no word-boundary adjustment.
	SummaryMaxChars = 160

	// IntroMaxChars caps the repository introduction.
	IntroMaxChars = 400
)

// Summarizer extracts summaries from markdown content. It is safe for concurrent use.
type Summarizer struct {
	md goldmark.Markdown
}

// NewSummarizer creates a Summarizer that understands GitHub-flavored markdown.
func NewSummarizer() *Summarizer {
	return &Summarizer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// StripFrontMatter removes a leading YAML, TOML or JSON front-matter block.
// Content without front matter is returned unchanged.
func StripFrontMatter(content []byte) ([]byte, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return content, nil
	}
	var matter map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(content), &matter)
	if err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}
	return body, nil
}

// Summary returns the first non-empty inline text of content, truncated to
// SummaryMaxChars. It returns "" when the document has no inline text, and an
// error only when the front matter cannot be parsed.
func (s *Summarizer) Summary(content []byte) (string, error) {
	body, err := StripFrontMatter(content)
	if err != nil {
		return "", err
	}

	var summary string
	s.eachInlineText(body, func(t string) bool {
		summary = truncate(t, SummaryMaxChars)
		return false
	})
	return summary, nil
}

// Introduction accumulates inline texts, starting at the first non-empty one,
// until IntroMaxChars is reached, and truncates the result to that cap.
func (s *Summarizer) Introduction(content []byte) (string, error) {
	body, err := StripFrontMatter(content)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	count := 0
	s.eachInlineText(body, func(t string) bool {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
			count += 2
		}
		sb.WriteString(t)
		count += len([]rune(t))
		return count < IntroMaxChars
	})
	return truncate(sb.String(), IntroMaxChars), nil
}

// eachInlineText calls yield with the trimmed text of every block that carries
// inline content, in document order, skipping empty ones. Returning false stops the walk.
func (s *Summarizer) eachInlineText(body []byte, yield func(string) bool) {
	doc := s.md.Parser().Parse(text.NewReader(body))

	stopped := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || stopped {
			return ast.WalkContinue, nil
		}

		switch n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock, *extast.TableCell:
			if t := blockText(n, body); t != "" && !yield(t) {
				stopped = true
				return ast.WalkStop, nil
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// blockText returns the raw source lines of a block, or its inline text when
// the block keeps no line segments.
func blockText(n ast.Node, src []byte) string {
	lines := n.Lines()
	if lines.Len() == 0 {
		return strings.TrimSpace(inlineText(n, src))
	}

	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(src))))
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

func truncate(s string, maxChars int) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars])
}
