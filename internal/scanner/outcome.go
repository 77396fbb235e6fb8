package scanner

import "github.com/sha1n/wikitree/internal/domain"

// SkipReason explains why a file produced no node without failing.
type SkipReason string

const (
	// SkipUnsupported marks a file whose extension is not configured. It is not scanned.
	SkipUnsupported SkipReason = "unsupported_extension"
	SkipTooLarge    SkipReason = "too_large"
	SkipBinary      SkipReason = "binary_content"
)

// Outcome is the result of handling one file entry.
// Exactly one of Node, Skip or Failure is set.
type Outcome struct {
	Node    *domain.IndexNode
	Skip    SkipReason
	Failure *domain.GenerationError
}

func nodeOutcome(n domain.IndexNode) Outcome {
	return Outcome{Node: &n}
}

func skipOutcome(reason SkipReason) Outcome {
	return Outcome{Skip: reason}
}

func failureOutcome(code, path string, err error) Outcome {
	return Outcome{Failure: &domain.GenerationError{
		Code:        code,
		Message:     err.Error(),
		FilePath:    path,
		Recoverable: true,
	}}
}

// Scanned reports whether the outcome counts toward the scanned total.
// Every file that reaches per-file processing is scanned exactly once.
func (o Outcome) Scanned() bool {
	return o.Skip != SkipUnsupported
}

// Stats are the running totals of a traversal.
type Stats struct {
	Scanned   int
	Skipped   int
	Generated int
	Errors    []domain.GenerationError
	Code      domain.CodeAnalysisStats
}

func (s *Stats) record(o Outcome) {
	if o.Scanned() {
		s.Scanned++
	}

	switch {
	case o.Node != nil:
		s.Generated++
		s.recordCode(o.Node)
	case o.Failure != nil:
		s.Skipped++
		s.Errors = append(s.Errors, *o.Failure)
	default:
		s.Skipped++
	}
}

func (s *Stats) recordCode(n *domain.IndexNode) {
	if n.CodeStructure == nil {
		return
	}
	s.Code.FilesAnalyzed++
	s.Code.ClassesFound += len(n.CodeStructure.Classes)
	s.Code.FunctionsFound += len(n.CodeStructure.Functions)
	s.Code.DependenciesFound += len(n.Dependencies)
}

// add folds child totals into s.
func (s *Stats) add(child Stats) {
	s.Scanned += child.Scanned
	s.Skipped += child.Skipped
	s.Generated += child.Generated
	s.Errors = append(s.Errors, child.Errors...)
	s.Code.FilesAnalyzed += child.Code.FilesAnalyzed
	s.Code.ClassesFound += child.Code.ClassesFound
	s.Code.FunctionsFound += child.Code.FunctionsFound
	s.Code.DependenciesFound += child.Code.DependenciesFound
}
