package ports

import (
	"context"

	"ggufcat/internal/domain"
)

// PathRequirement describes what must exist at a resolved path
type PathRequirement int

const (
	RequireNothing PathRequirement = iota
	RequireDir
	RequireFile
)

// PathResolver turns user input into an absolute, symlink-resolved path
type PathResolver interface {
	// Resolve falls back to defaultPath when input is blank, expands ~ and
	// checks the requirement against the result
	Resolve(input, defaultPath string, req PathRequirement) (string, error)
}

// ModelScanner finds model files under a root directory
type ModelScanner interface {
	Scan(ctx context.Context, root string) ([]domain.Entry, error)
}

// CatalogStore persists catalogs as tabular files
type CatalogStore interface {
	// Save writes entries to the catalog file inside outputDir and returns its path
	Save(entries []domain.Entry, outputDir string) (string, error)

	// Load reads a catalog file into an identifier -> path index
	Load(path string) (*domain.ModelIndex, error)
}

// StubWriter emits stub files
type StubWriter interface {
	// EnsureDir creates dir and any missing parents
	EnsureDir(dir string) error

	// Write writes content to the stub for identifier in dir and returns its path
	Write(dir, identifier, content string) (string, error)
}
