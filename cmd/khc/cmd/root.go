package cmd

import (
	"fmt"
	"os"

	mdwlog "github.com/msto63/khamseena/foundation/core/log"
	"github.com/msto63/khamseena/pkg/core/config"
	"github.com/msto63/khamseena/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	cfg    *config.Config
	logger *mdwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "khc",
	Short: "Khamseena - front end toolchain",
	Long: `khc runs the Khamseena front end on a source file: the lexer, the
parser and the semantic analyzer.

Commands:
  tokenize  - Print the token stream
  parse     - Print the syntax tree
  fmt       - Print the source in canonical form
  analyze   - Run all stages and report diagnostics
  inspect   - Browse the stages in a terminal UI
  history   - List and prune recorded runs`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $KHAMSEENA_CONFIG or ./configs/khamseena.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (overrides config)")
}

// setup loads the configuration and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = loaded

	logCfg := logging.DefaultLoggerConfig(cfg.General.Name)
	logCfg.Level = cfg.General.LogLevel
	logCfg.Format = cfg.General.LogFormat
	logCfg.Output = cmd.ErrOrStderr()
	if verbose {
		logCfg.Level = "debug"
	}
	if logFormat != "" {
		logCfg.Format = logFormat
	}
	logger = logging.Setup(logCfg)

	logger.Debug("Configuration loaded", mdwlog.Fields{
		"config":  cfgFile,
		"history": cfg.History.Enabled,
	})
	return nil
}

// loadConfig reads --config, then $KHAMSEENA_CONFIG, then the default
// locations. Without any config file the defaults are used.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	if os.Getenv(config.EnvVar) != "" {
		return config.LoadFromEnv()
	}
	for _, p := range config.DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			cfgFile = p
			return config.Load(p)
		}
	}
	return config.Default(), nil
}

func printError(cmd *cobra.Command, msg string, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", msg, err)
}
