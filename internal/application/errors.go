package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for run-terminating conditions
var (
	ErrInvalidDirectory = errors.New("invalid directory")
	ErrEmptyCatalog     = errors.New("no model files found")
	ErrCatalogNotFound  = errors.New("catalog not found")
	ErrMalformedCatalog = errors.New("malformed catalog")
	ErrPromptCancelled  = errors.New("prompt cancelled")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PathError reports a resolved path that failed its existence requirement
type PathError struct {
	Path string
	Err  error // ErrInvalidDirectory or ErrCatalogNotFound
}

func (e *PathError) Error() string {
	if errors.Is(e.Err, ErrCatalogNotFound) {
		return fmt.Sprintf("provided path '%s' is not an existing file", e.Path)
	}
	return fmt.Sprintf("provided path '%s' is not a valid directory", e.Path)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// CatalogError represents a catalog file that could not be read
type CatalogError struct {
	Path   string
	Line   int // 0 when not tied to a row
	Reason string
	Err    error
}

func (e *CatalogError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("catalog %s line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("catalog %s: %s", e.Path, e.Reason)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// EmptyCatalogError reports a scan that matched no model files
type EmptyCatalogError struct {
	Root string
}

func (e *EmptyCatalogError) Error() string {
	return fmt.Sprintf("no .gguf files found in %s", e.Root)
}

func (e *EmptyCatalogError) Is(target error) bool {
	return target == ErrEmptyCatalog
}
