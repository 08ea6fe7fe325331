package commands

import (
	"context"
	"fmt"

	"ggufcat/internal/application"
	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

// GenerateStubsResult contains the result of stub generation
type GenerateStubsResult struct {
	Written []string
	Message string
}

// GenerateStubsCommand writes one Modelfile per indexed model
type GenerateStubsCommand struct {
	writer    ports.StubWriter
	Index     *domain.ModelIndex
	OutputDir string
	Defaults  string
	Policy    domain.DuplicatePolicy

	// OnWrite is called with the path of every stub written
	OnWrite func(path string)
}

// NewGenerateStubsCommand creates a new GenerateStubsCommand
func NewGenerateStubsCommand(writer ports.StubWriter, index *domain.ModelIndex, outputDir, defaults string) *GenerateStubsCommand {
	return &GenerateStubsCommand{
		writer:    writer,
		Index:     index,
		OutputDir: outputDir,
		Defaults:  defaults,
		Policy:    domain.DuplicateLastWins,
	}
}

// Validate checks if the generate operation is valid
func (c *GenerateStubsCommand) Validate() error {
	if err := application.ValidateRequired("outputDir", c.OutputDir); err != nil {
		return err
	}
	if c.Index == nil {
		return &application.ValidationError{Field: "index", Message: "catalog index is required"}
	}
	return application.ValidateDuplicatePolicy("policy", string(c.Policy))
}

// entries returns what to write under the configured duplicate policy
func (c *GenerateStubsCommand) entries() []domain.Entry {
	if c.Policy == domain.DuplicateSuffix {
		return c.Index.Disambiguated()
	}
	return c.Index.Entries()
}

// Execute runs the generate stubs command
func (c *GenerateStubsCommand) Execute(ctx context.Context) (*GenerateStubsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.writer.EnsureDir(c.OutputDir); err != nil {
		return nil, err
	}

	result := &GenerateStubsResult{}
	for _, e := range c.entries() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		path, err := c.writer.Write(c.OutputDir, e.Identifier, domain.RenderStub(e.Path, c.Defaults))
		if err != nil {
			return result, err
		}
		result.Written = append(result.Written, path)
		if c.OnWrite != nil {
			c.OnWrite(path)
		}
	}

	result.Message = fmt.Sprintf("Generated %d Modelfiles in %s", len(result.Written), c.OutputDir)
	return result, nil
}
