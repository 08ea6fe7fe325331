package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ggufcat/internal/adapters/prompt"
	"ggufcat/internal/adapters/sqlite"
	"ggufcat/internal/adapters/tui"
	"ggufcat/internal/adapters/tui/styles"
	"ggufcat/internal/application/commands"
	"ggufcat/internal/domain"
	"ggufcat/internal/ports"
)

var (
	runAssumeYes bool
	runHistory   bool
	runCopy      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan, save the catalog and generate Modelfiles",
	Long: `Run the whole pipeline interactively:

  1. ask for the folder to scan and the folder for Modelfile stubs
  2. catalog every .gguf file into latest_GGUF_catalog.csv
  3. offer to use that catalog or another CSV
  4. write one <identifier>.Modelfile per model

Leave any prompt blank to accept the default shown in brackets. With --yes
(or --catalog) no questions are asked and flags or defaults are used.

Examples:
  ggufcat run
  ggufcat run --yes --scan-dir ~/models --out-dir ~/modelfiles
  ggufcat run --catalog old_catalog.csv --on-duplicate suffix`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, styles.Title.Render("--- GGUF Catalog and Modelfile Generator ---"))

		policy, err := duplicatePolicy(cmd)
		if err != nil {
			return err
		}
		opts := commands.PipelineOptions{
			ScanDir:   stringFlagOr(cmd, "scan-dir", cfg.ScanDir),
			OutputDir: stringFlagOr(cmd, "out-dir", cfg.OutputDir),
			Defaults:  cfg.ModelfileDefaults,
			Policy:    policy,
		}

		p := newPipeline()
		p.Prompter = newPrompter(cmd)

		if runHistory || cfg.HistoryEnabled {
			history := sqlite.NewHistory()
			if err := history.Open(cfg.HistoryPath); err != nil {
				log.Warn().Err(err).Str("path", cfg.HistoryPath).Msg("Run history disabled")
			} else {
				defer history.Close()
				p.History = history
			}
		}

		result, err := commands.NewRunPipelineCommand(p, opts, out).Execute(cmd.Context())
		if result != nil && len(result.Conflicts) > 0 {
			fmt.Fprintln(out, styles.WarningText.Render(conflictNotice(len(result.Conflicts), opts.Policy)))
		}
		if result != nil && result.CatalogPath != "" && runCopy {
			copyToClipboard(cmd, result.CatalogPath)
		}
		return graceful(cmd, err)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("scan-dir", "", "folder to scan for .gguf files (default from config)")
	runCmd.Flags().String("out-dir", "", "folder for the catalog and Modelfile stubs (default from config)")
	runCmd.Flags().String("catalog", "", "generate from this catalog CSV instead of the fresh one (implies --yes)")
	runCmd.Flags().String("on-duplicate", "", "duplicate identifier policy: last or suffix (default from config)")
	runCmd.Flags().BoolVarP(&runAssumeYes, "yes", "y", false, "accept defaults without prompting")
	runCmd.Flags().BoolVar(&runHistory, "history", false, "record this run in the history database")
	runCmd.Flags().BoolVar(&runCopy, "copy", false, "copy the saved catalog path to the clipboard")
}

// newPrompter picks canned answers for headless runs, the TUI on a terminal
// and a line reader for piped input
func newPrompter(cmd *cobra.Command) ports.Prompter {
	catalog := stringFlagOr(cmd, "catalog", "")
	if runAssumeYes || catalog != "" {
		// Blank answers accept the defaults already taken from the flags
		answers := []string{"", ""}
		if catalog != "" {
			answers = append(answers, "n", catalog)
		}
		return prompt.NewStaticPrompter(answers...)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		return tui.NewPrompter(os.Stdin, cmd.OutOrStdout())
	}
	return prompt.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}

// conflictNotice summarizes duplicate identifiers for the end of a run
func conflictNotice(n int, policy domain.DuplicatePolicy) string {
	if policy == domain.DuplicateSuffix {
		return fmt.Sprintf("%d duplicate identifier(s): later copies were written with -2, -3, ... suffixes", n)
	}
	return fmt.Sprintf("%d duplicate identifier(s): only the last path was kept; use --on-duplicate=suffix to keep every model", n)
}

func copyToClipboard(cmd *cobra.Command, path string) {
	if err := clipboard.WriteAll(path); err != nil {
		log.Warn().Err(err).Msg("Failed to copy catalog path to clipboard")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessText.Render("Copied catalog path to clipboard"))
}
