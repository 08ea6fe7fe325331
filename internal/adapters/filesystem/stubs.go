package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

// StubWriter implements ports.StubWriter by writing plain files
type StubWriter struct{}

// Ensure StubWriter implements ports.StubWriter
var _ ports.StubWriter = (*StubWriter)(nil)

// NewStubWriter creates a new stub writer
func NewStubWriter() *StubWriter {
	return &StubWriter{}
}

// EnsureDir creates dir with any missing parents
func (w *StubWriter) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create stub directory: %w", err)
	}
	return nil
}

// Write overwrites the stub for identifier inside dir. Identifiers that would
// leave dir are rejected.
func (w *StubWriter) Write(dir, identifier, content string) (string, error) {
	if err := domain.CheckIdentifier(identifier); err != nil {
		return "", fmt.Errorf("failed to write stub: %w", err)
	}
	path := filepath.Join(dir, domain.StubFileName(identifier))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write stub %s: %w", path, err)
	}
	return path, nil
}
