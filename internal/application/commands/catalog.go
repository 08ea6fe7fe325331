package commands

import (
	"context"
	"fmt"

	"ggufcat/internal/application"
	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

// SaveCatalogResult contains the result of saving a catalog
type SaveCatalogResult struct {
	Path    string
	Message string
}

// SaveCatalogCommand writes a catalog file into an output directory
type SaveCatalogCommand struct {
	store     ports.CatalogStore
	Catalog   *domain.Catalog
	OutputDir string
}

// NewSaveCatalogCommand creates a new SaveCatalogCommand
func NewSaveCatalogCommand(store ports.CatalogStore, catalog *domain.Catalog, outputDir string) *SaveCatalogCommand {
	return &SaveCatalogCommand{
		store:     store,
		Catalog:   catalog,
		OutputDir: outputDir,
	}
}

// Validate checks if the save operation is valid
func (c *SaveCatalogCommand) Validate() error {
	if err := application.ValidateRequired("outputDir", c.OutputDir); err != nil {
		return err
	}
	if c.Catalog.Len() == 0 {
		return application.ErrEmptyCatalog
	}
	return nil
}

// Execute runs the save catalog command
func (c *SaveCatalogCommand) Execute(ctx context.Context) (*SaveCatalogResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	path, err := c.store.Save(c.Catalog.Entries, c.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}

	return &SaveCatalogResult{
		Path:    path,
		Message: fmt.Sprintf("Catalog saved: %s", path),
	}, nil
}

// LoadCatalogResult contains the result of loading a catalog
type LoadCatalogResult struct {
	Index     *domain.ModelIndex
	Conflicts []domain.Conflict
	Message   string
}

// LoadCatalogCommand reads a catalog file into an index
type LoadCatalogCommand struct {
	store ports.CatalogStore
	Path  string
}

// NewLoadCatalogCommand creates a new LoadCatalogCommand
func NewLoadCatalogCommand(store ports.CatalogStore, path string) *LoadCatalogCommand {
	return &LoadCatalogCommand{
		store: store,
		Path:  path,
	}
}

// Validate checks if the load operation is valid
func (c *LoadCatalogCommand) Validate() error {
	return application.ValidateRequired("catalogPath", c.Path)
}

// Execute runs the load catalog command
func (c *LoadCatalogCommand) Execute(ctx context.Context) (*LoadCatalogResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	index, err := c.store.Load(c.Path)
	if err != nil {
		return nil, err
	}

	return &LoadCatalogResult{
		Index:     index,
		Conflicts: index.Conflicts(),
		Message:   fmt.Sprintf("Loaded %d GGUF paths from CSV.", index.Len()),
	}, nil
}
