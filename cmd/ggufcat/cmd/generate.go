package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ggufcat/internal/application/commands"
	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write Modelfiles from an existing catalog",
	Long: `Load a catalog CSV and write one <identifier>.Modelfile per model,
skipping the scan.

Without --catalog the latest_GGUF_catalog.csv in the output folder is used.

Examples:
  ggufcat generate
  ggufcat generate --catalog models.csv --out-dir ./modelfiles --on-duplicate suffix`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := duplicatePolicy(cmd)
		if err != nil {
			return err
		}

		p := newPipeline()
		outputDir, err := p.Resolver.Resolve(stringFlagOr(cmd, "out-dir", ""), cfg.OutputDir, ports.RequireNothing)
		if err != nil {
			return err
		}
		catalogPath, err := p.Resolver.Resolve(stringFlagOr(cmd, "catalog", ""),
			filepath.Join(outputDir, domain.CatalogFileName), ports.RequireFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		loaded, err := commands.NewLoadCatalogCommand(p.Store, catalogPath).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, loaded.Message)
		for _, c := range loaded.Conflicts {
			log.Warn().
				Str("identifier", c.Identifier).
				Str("kept", c.Kept).
				Strs("discarded", c.Discarded).
				Msg("Duplicate identifier in catalog")
		}

		gen := commands.NewGenerateStubsCommand(p.Writer, loaded.Index, outputDir, cfg.ModelfileDefaults)
		gen.Policy = policy
		gen.OnWrite = func(path string) {
			fmt.Fprintf(out, "Wrote: %s\n", path)
		}
		if _, err := gen.Execute(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(out, "All Modelfiles generated.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("catalog", "", "catalog CSV to generate from (default <out-dir>/latest_GGUF_catalog.csv)")
	generateCmd.Flags().String("out-dir", "", "folder for Modelfile stubs (default from config)")
	generateCmd.Flags().String("on-duplicate", "", "duplicate identifier policy: last or suffix (default from config)")
}
