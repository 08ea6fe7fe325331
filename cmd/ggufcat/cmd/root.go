package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ggufcat/internal/adapters/csvstore"
	"ggufcat/internal/adapters/filesystem"
	"ggufcat/internal/adapters/tui/styles"
	"ggufcat/internal/application"
	"ggufcat/internal/application/commands"
	"ggufcat/internal/config"
	"ggufcat/internal/logging"
	"ggufcat/internal/output"
)

var (
	cfgFile      string
	outputFormat string

	v   = config.New()
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ggufcat",
	Short: "Catalog GGUF model files and generate Modelfile stubs",
	Long: `ggufcat finds .gguf model weights under a directory, records them in
latest_GGUF_catalog.csv and writes one <identifier>.Modelfile per model,
ready for "ollama create".

Identifiers come from the folder holding each file: "Foo-GGUF/foo.gguf"
becomes lmstudio-foo.

Set MODELFILE_DEFAULTS (in the environment or a .env file) to append
directives such as PARAMETER lines to every Modelfile.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initConfig()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorText.Render("Error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .ggufcat.yaml in the working or home directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml (default table on a terminal, json otherwise)")

	_ = v.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() error {
	if _, err := config.LoadEnvFiles(config.EnvFiles...); err != nil {
		return err
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	if _, err := output.ParseFormat(outputFormat); err != nil {
		return err
	}

	logging.Configure(&logging.Config{
		Level:   cfg.EffectiveLogLevel(),
		Format:  cfg.LogFormat,
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	})
	log = *logging.Default()

	if cfg.ConfigFile != "" {
		log.Debug().Str("file", cfg.ConfigFile).Msg("Using config file")
	}
	return nil
}

// newPipeline wires the filesystem adapters. Prompter and History are set by the caller.
func newPipeline() commands.Pipeline {
	return commands.Pipeline{
		Resolver: filesystem.NewResolver(),
		Scanner:  filesystem.NewScanner(log),
		Store:    csvstore.NewStore(),
		Writer:   filesystem.NewStubWriter(),
		Log:      log,
	}
}

// printResult writes data in the selected output format
func printResult(cmd *cobra.Command, data any) error {
	return output.NewFormatter(output.DetectFormat(outputFormat)).Format(cmd.OutOrStdout(), data)
}

// graceful turns conditions that end a run early without failing it into a message
func graceful(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, application.ErrEmptyCatalog):
		fmt.Fprintln(cmd.OutOrStdout(), "No .gguf files found in the specified folder.")
		return nil
	case errors.Is(err, application.ErrPromptCancelled):
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	return err
}

// duplicatePolicy returns the --on-duplicate flag value, falling back to config
func duplicatePolicy(cmd *cobra.Command) (application.DuplicatePolicy, error) {
	flag := cmd.Flags().Lookup("on-duplicate")
	if flag == nil || !flag.Changed {
		return cfg.DuplicatePolicy, nil
	}
	policy, ok := application.ParseDuplicatePolicy(flag.Value.String())
	if !ok {
		return "", application.ValidateDuplicatePolicy("on-duplicate", flag.Value.String())
	}
	return policy, nil
}

// stringFlagOr returns the flag value when set, otherwise fallback
func stringFlagOr(cmd *cobra.Command, name, fallback string) string {
	if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
		return flag.Value.String()
	}
	return fallback
}
