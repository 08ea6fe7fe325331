package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

// Pipeline bundles the adapters a full run needs. History is optional.
type Pipeline struct {
	Resolver ports.PathResolver
	Scanner  ports.ModelScanner
	Store    ports.CatalogStore
	Writer   ports.StubWriter
	Prompter ports.Prompter
	History  ports.RunHistory
	Log      zerolog.Logger
}

// PipelineOptions holds the defaults offered at each prompt
type PipelineOptions struct {
	ScanDir   string
	OutputDir string
	Defaults  string
	Policy    domain.DuplicatePolicy
}

// PipelineResult summarizes a completed run
type PipelineResult struct {
	ScanDir     string
	OutputDir   string
	CatalogPath string // the catalog that was saved
	LoadedFrom  string // the catalog stubs were generated from
	Catalog     *domain.Catalog
	Conflicts   []domain.Conflict
	Stubs       []string
	Message     string
}

// RunPipelineCommand drives collect -> save -> load -> generate, asking the
// prompter for each path along the way
type RunPipelineCommand struct {
	p    Pipeline
	opts PipelineOptions
	out  io.Writer
}

// NewRunPipelineCommand creates a new RunPipelineCommand. Progress lines go to out.
func NewRunPipelineCommand(p Pipeline, opts PipelineOptions, out io.Writer) *RunPipelineCommand {
	if out == nil {
		out = io.Discard
	}
	return &RunPipelineCommand{p: p, opts: opts, out: out}
}

// Execute runs the pipeline. Any error ends the run; work already written stays.
func (c *RunPipelineCommand) Execute(ctx context.Context) (*PipelineResult, error) {
	scanInput, err := c.p.Prompter.Ask(fmt.Sprintf(
		"Enter desired folder path here or leave blank to use default value [%s]: ", c.opts.ScanDir))
	if err != nil {
		return nil, err
	}
	outInput, err := c.p.Prompter.Ask(fmt.Sprintf(
		"Enter folder to save .Modelfile stubs or leave blank to use default [%s]: ", c.opts.OutputDir))
	if err != nil {
		return nil, err
	}

	scanDir, err := c.p.Resolver.Resolve(scanInput, c.opts.ScanDir, ports.RequireDir)
	if err != nil {
		return nil, err
	}
	outputDir, err := c.p.Resolver.Resolve(outInput, c.opts.OutputDir, ports.RequireNothing)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{ScanDir: scanDir, OutputDir: outputDir}

	collected, err := NewCollectCommand(c.p.Scanner, scanDir).Execute(ctx)
	if err != nil {
		return nil, err
	}
	result.Catalog = collected.Catalog
	c.p.Log.Debug().Int("count", collected.Catalog.Len()).Str("root", scanDir).Msg("Collected model files")

	saved, err := NewSaveCatalogCommand(c.p.Store, collected.Catalog, outputDir).Execute(ctx)
	if err != nil {
		return nil, err
	}
	result.CatalogPath = saved.Path
	fmt.Fprintln(c.out, saved.Message)
	c.record(collected.Catalog, saved.Path)

	catalogPath, err := c.chooseCatalog(saved.Path)
	if err != nil {
		return result, err
	}
	result.LoadedFrom = catalogPath

	loaded, err := NewLoadCatalogCommand(c.p.Store, catalogPath).Execute(ctx)
	if err != nil {
		return result, err
	}
	fmt.Fprintln(c.out, loaded.Message)
	result.Conflicts = loaded.Conflicts
	for _, conflict := range loaded.Conflicts {
		c.p.Log.Warn().
			Str("identifier", conflict.Identifier).
			Str("kept", conflict.Kept).
			Strs("discarded", conflict.Discarded).
			Str("policy", string(c.policy())).
			Msg("Duplicate identifier in catalog")
	}

	gen := NewGenerateStubsCommand(c.p.Writer, loaded.Index, outputDir, c.opts.Defaults)
	gen.Policy = c.policy()
	gen.OnWrite = func(path string) {
		fmt.Fprintf(c.out, "Wrote: %s\n", path)
	}
	generated, err := gen.Execute(ctx)
	if generated != nil {
		result.Stubs = generated.Written
	}
	if err != nil {
		return result, err
	}

	result.Message = "All Modelfiles generated."
	fmt.Fprintln(c.out, result.Message)
	return result, nil
}

// chooseCatalog asks whether to reuse the saved catalog or load another one
func (c *RunPipelineCommand) chooseCatalog(savedPath string) (string, error) {
	answer, err := c.p.Prompter.Ask(fmt.Sprintf("Use generated CSV (%s)? [Y/n]: ", savedPath))
	if err != nil {
		return "", err
	}
	if AcceptsDefault(answer) {
		return savedPath, nil
	}

	alt, err := c.p.Prompter.Ask(fmt.Sprintf(
		"Enter desired GGUF catalog CSV path or leave blank to use default [%s]: ", savedPath))
	if err != nil {
		return "", err
	}
	return c.p.Resolver.Resolve(alt, savedPath, ports.RequireFile)
}

// record stores the run in history when enabled. Failures only warn.
func (c *RunPipelineCommand) record(catalog *domain.Catalog, catalogPath string) {
	if c.p.History == nil {
		return
	}
	run, err := c.p.History.Record(catalog, catalogPath)
	if err != nil {
		c.p.Log.Warn().Err(err).Msg("Failed to record run history")
		return
	}
	c.p.Log.Debug().Int64("run", run.ID).Msg("Recorded run history")
}

func (c *RunPipelineCommand) policy() domain.DuplicatePolicy {
	if c.opts.Policy == "" {
		return domain.DuplicateLastWins
	}
	return c.opts.Policy
}

// AcceptsDefault reports whether a yes/no answer keeps the offered default
func AcceptsDefault(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}
