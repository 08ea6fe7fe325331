package commands

import (
	"context"
	"fmt"

	"ggufcat/internal/application"
	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

// CollectResult contains the result of a collection run
type CollectResult struct {
	Catalog *domain.Catalog
	Message string
}

// CollectCommand finds model files under a root directory
type CollectCommand struct {
	scanner ports.ModelScanner
	Root    string
}

// NewCollectCommand creates a new CollectCommand
func NewCollectCommand(scanner ports.ModelScanner, root string) *CollectCommand {
	return &CollectCommand{
		scanner: scanner,
		Root:    root,
	}
}

// Validate checks if the collect operation is valid
func (c *CollectCommand) Validate() error {
	return application.ValidateRequired("root", c.Root)
}

// Execute scans the root. An empty result is an error.
func (c *CollectCommand) Execute(ctx context.Context) (*CollectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	entries, err := c.scanner.Scan(ctx, c.Root)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, &application.EmptyCatalogError{Root: c.Root}
	}

	return &CollectResult{
		Catalog: &domain.Catalog{Root: c.Root, Entries: entries},
		Message: fmt.Sprintf("Found %d .gguf files in %s", len(entries), c.Root),
	}, nil
}
