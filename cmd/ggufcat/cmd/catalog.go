package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ggufcat/internal/adapters/editor"
	"ggufcat/internal/application/commands"
	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect catalog files",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <csv>",
	Short: "Show the identifier to path mapping of a catalog",
	Long: `Load a catalog CSV the same way a run does and print the resulting
mapping. Identifiers that appear on more than one row are reported with the
number of earlier paths they replaced.

Examples:
  ggufcat catalog show ~/.ollama/modelfiles/latest_GGUF_catalog.csv
  ggufcat catalog show catalog.csv -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPipeline()
		path, err := p.Resolver.Resolve(args[0], "", ports.RequireFile)
		if err != nil {
			return err
		}

		result, err := commands.NewLoadCatalogCommand(p.Store, path).Execute(cmd.Context())
		if err != nil {
			return err
		}

		return printResult(cmd, newCatalogView(result.Index))
	},
}

var catalogEditCmd = &cobra.Command{
	Use:   "edit [csv]",
	Short: "Open a catalog in your editor, then check it",
	Long: `Open a catalog CSV in $EDITOR (or editor in the config file) so rows can
be fixed by hand, for example to rename a duplicate identifier. Once the
editor exits the catalog is loaded again and any problem is reported.

Without an argument the latest_GGUF_catalog.csv in the output folder is used.

Examples:
  ggufcat catalog edit
  GGUFCAT_EDITOR="code --wait" ggufcat catalog edit models.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input string
		if len(args) == 1 {
			input = args[0]
		}

		p := newPipeline()
		outputDir, err := p.Resolver.Resolve("", cfg.OutputDir, ports.RequireNothing)
		if err != nil {
			return err
		}
		path, err := p.Resolver.Resolve(input, filepath.Join(outputDir, domain.CatalogFileName), ports.RequireFile)
		if err != nil {
			return err
		}

		var ed ports.Editor = editor.NewOpener(cfg.Editor, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		if err := ed.Open(cmd.Context(), path); err != nil {
			return err
		}

		result, err := commands.NewLoadCatalogCommand(p.Store, path).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		for _, c := range result.Conflicts {
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicate %s\n", c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogEditCmd)
}
