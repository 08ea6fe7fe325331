// Package config builds the run configuration from flags, environment,
// .env files and an optional YAML file. It is the only place that reads
// the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ggufcat/internal/application"
	"ggufcat/internal/homedir"
)

const (
	DefaultScanDir   = "~/.lmstudio/models"
	DefaultOutputDir = "~/.ollama/modelfiles"

	// EnvModelfileDefaults names the variable holding stub boilerplate
	EnvModelfileDefaults = "MODELFILE_DEFAULTS"

	envPrefix      = "GGUFCAT"
	configFileName = ".ggufcat"
)

// Keys used with viper; flags bind to the same names
const (
	KeyScanDir        = "scan_dir"
	KeyOutputDir      = "output_dir"
	KeyDefaults       = "modelfile_defaults"
	KeyOnDuplicate    = "on_duplicate"
	KeyHistoryEnabled = "history"
	KeyHistoryPath    = "history_path"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyVerbose        = "verbose"
	KeyEditor         = "editor"
	keyDataHome       = "data_home"
)

// EnvFiles are loaded in order; later files override earlier values
var EnvFiles = []string{".env", ".env.local"}

// Config holds everything a run needs
type Config struct {
	ScanDir           string
	OutputDir         string
	ModelfileDefaults string
	DuplicatePolicy   application.DuplicatePolicy

	HistoryEnabled bool
	HistoryPath    string

	LogLevel  string
	LogFormat string
	Verbose   bool

	Editor string // command line used by "catalog edit"; empty picks a fallback

	ConfigFile string // empty when no config file was read
}

// New returns a viper instance with defaults and environment bindings
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyScanDir, DefaultScanDir)
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyOnDuplicate, string(application.DuplicateLastWins))
	v.SetDefault(KeyHistoryEnabled, false)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "auto")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Unprefixed variables shared with other tools
	_ = v.BindEnv(KeyDefaults, EnvModelfileDefaults)
	_ = v.BindEnv(KeyLogLevel, "GGUFCAT_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv(KeyLogFormat, "GGUFCAT_LOG_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv(keyDataHome, "XDG_DATA_HOME")
	_ = v.BindEnv(KeyEditor, "GGUFCAT_EDITOR", "EDITOR", "VISUAL")

	return v
}

// LoadEnvFiles loads .env style files into the process environment.
// Values override the existing environment, so later files win.
// Missing files are skipped; the names of loaded files are returned.
func LoadEnvFiles(files ...string) ([]string, error) {
	var loaded []string
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Overload(f); err != nil {
			return loaded, fmt.Errorf("failed to load %s: %w", f, err)
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}

// Load reads the optional config file and builds a Config from v.
// configFile overrides the search for .ggufcat.yaml in the working and home directories.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	policy, ok := application.ParseDuplicatePolicy(v.GetString(KeyOnDuplicate))
	if !ok {
		return nil, application.ValidateDuplicatePolicy(KeyOnDuplicate, v.GetString(KeyOnDuplicate))
	}

	historyPath, err := homedir.Expand(v.GetString(KeyHistoryPath))
	if err != nil {
		return nil, err
	}
	if historyPath == "" {
		historyPath = DefaultHistoryPath(v.GetString(keyDataHome))
	}

	return &Config{
		ScanDir:           v.GetString(KeyScanDir),
		OutputDir:         v.GetString(KeyOutputDir),
		ModelfileDefaults: v.GetString(KeyDefaults),
		DuplicatePolicy:   policy,
		HistoryEnabled:    v.GetBool(KeyHistoryEnabled),
		HistoryPath:       filepath.Clean(historyPath),
		LogLevel:          v.GetString(KeyLogLevel),
		LogFormat:         v.GetString(KeyLogFormat),
		Verbose:           v.GetBool(KeyVerbose),
		Editor:            v.GetString(KeyEditor),
		ConfigFile:        v.ConfigFileUsed(),
	}, nil
}

// DefaultHistoryPath returns the history database location under dataHome
// (normally $XDG_DATA_HOME), falling back to ~/.local/share
func DefaultHistoryPath(dataHome string) string {
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ggufcat", "history.db")
}

// EffectiveLogLevel applies --verbose on top of the configured level
func (c *Config) EffectiveLogLevel() string {
	if c.Verbose {
		return "debug"
	}
	return c.LogLevel
}
