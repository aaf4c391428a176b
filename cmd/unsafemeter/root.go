package main

import (
	"github.com/spf13/cobra"

	"unsafemeter/internal/config"
	"unsafemeter/internal/logging"
	"unsafemeter/internal/version"
)

var (
	crateRootFlag string
	excludeFlag   []string
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "unsafemeter",
	Short: "unsafemeter - unsafe code metrics for Rust crates",
	Long: `unsafemeter walks a Rust crate, measures its use of unsafe constructs
(unsafe functions, unsafe block statements, static mut items, unwrap calls)
and reports per file and in total. Reports can be diffed against a saved
baseline to track how the numbers move over time.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("unsafemeter version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&crateRootFlag, "crate-root", ".",
		"Root directory of the crate to analyze")
	rootCmd.PersistentFlags().StringSliceVar(&excludeFlag, "exclude", nil,
		"Directory names to skip (overrides config excludes)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: human or json (default from config)")
}

// loadSetup resolves config and logger for the crate root flag.
// Precedence for logging: CLI flag > config file > defaults.
func loadSetup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.LoadConfig(crateRootFlag)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.ParseLevel(level),
	})
	return cfg, logger, nil
}

// effectiveExcludes prefers the CLI flag over the config file.
func effectiveExcludes(cfg *config.Config) []string {
	if len(excludeFlag) > 0 {
		return excludeFlag
	}
	return cfg.Excludes
}
