package indexgen

import "fmt"

// ConfigValidationError reports a scan configuration that breaks a precondition.
type ConfigValidationError struct {
	Rule string
}

func (e *ConfigValidationError) Error() string {
	return "invalid scan configuration: " + e.Rule
}

// FileAccessError reports a path the generator needs but cannot reach.
type FileAccessError struct {
	Message string
	Path    string
	Err     error
}

func (e *FileAccessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Message, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Path)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// IndexGenerationError wraps any failure after preconditions passed,
// including postcondition violations.
type IndexGenerationError struct {
	Message string
	Err     error
}

func (e *IndexGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("index generation failed: %s: %v", e.Message, e.Err)
	}
	return "index generation failed: " + e.Message
}

func (e *IndexGenerationError) Unwrap() error {
	return e.Err
}

// IndexLoadError reports a persisted index that is missing or unreadable.
type IndexLoadError struct {
	Path string
	Err  error
}

func (e *IndexLoadError) Error() string {
	return fmt.Sprintf("failed to load index %s: %v", e.Path, e.Err)
}

func (e *IndexLoadError) Unwrap() error {
	return e.Err
}
