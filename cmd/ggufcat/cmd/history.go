package cmd

import (
	"github.com/spf13/cobra"

	"ggufcat/internal/adapters/sqlite"
)

var (
	historyRunID int64
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `List the runs recorded with "ggufcat run --history" (or history: true in
the config file, or GGUFCAT_HISTORY=true), newest first. With --run, print the entries that run
cataloged.

Examples:
  ggufcat history
  ggufcat history --run 3 -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history := sqlite.NewHistory()
		if err := history.Open(cfg.HistoryPath); err != nil {
			return err
		}
		defer history.Close()

		if historyRunID > 0 {
			entries, err := history.RunEntries(historyRunID)
			if err != nil {
				return err
			}
			return printResult(cmd, entryList(entries))
		}

		runs, err := history.ListRuns(historyLimit)
		if err != nil {
			return err
		}
		return printResult(cmd, runList(runs))
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int64Var(&historyRunID, "run", 0, "show the entries of this run")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")
}
