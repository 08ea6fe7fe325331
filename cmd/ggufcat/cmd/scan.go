package cmd

import (
	"github.com/spf13/cobra"

	"ggufcat/internal/application/commands"
	"ggufcat/internal/ports"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "List the .gguf files a run would catalog",
	Long: `Scan a folder for .gguf files and print their identifiers and paths
without writing anything.

Examples:
  ggufcat scan
  ggufcat scan ~/.lmstudio/models -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input string
		if len(args) == 1 {
			input = args[0]
		}

		p := newPipeline()
		root, err := p.Resolver.Resolve(input, cfg.ScanDir, ports.RequireDir)
		if err != nil {
			return err
		}

		result, err := commands.NewCollectCommand(p.Scanner, root).Execute(cmd.Context())
		if err != nil {
			return graceful(cmd, err)
		}
		log.Debug().Int("count", result.Catalog.Len()).Str("root", root).Msg("Scan complete")

		return printResult(cmd, entryList(result.Catalog.Entries))
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
