package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/joshuapare/appxkit/internal/logger"
	"github.com/joshuapare/appxkit/pkg/types"
)

var (
	// cfgFile is the --config flag.
	cfgFile string

	// cfg is loaded before any subcommand runs.
	cfg Config
)

var rootCmd = &cobra.Command{
	Use:   "appxctl",
	Short: "Pack, unpack and inspect APPX application packages",
	Long: `appxctl works with APPX application packages: ZIP archives carrying
a signature block and a digest manifest. It can extract a package to a
directory, build a package from a directory, and check the structure of
the package signature block.

Exit status is the stable result code of the failed operation
(0 success, 2 invalid argument, 3 invalid format, 4 unsupported version,
5 validation failed, 6 i/o failure, 7 not found, 1 anything else).`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		return setupLogging(cfg)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (TOML, YAML or JSON)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolP("quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// setupLogging routes the library logger through a charmbracelet/log handler
// on stderr.
func setupLogging(c Config) error {
	opts := log.Options{Prefix: "appxctl"}
	if c.NoColor {
		opts.Formatter = log.LogfmtFormatter
	}
	l := log.NewWithOptions(os.Stderr, opts)
	switch {
	case c.Quiet:
		l.SetLevel(log.ErrorLevel)
	case c.Verbose:
		l.SetLevel(log.DebugLevel)
	default:
		l.SetLevel(log.WarnLevel)
	}
	return logger.Init(logger.Options{Enabled: true, Handler: l})
}

func execute() {
	err := rootCmd.Execute()
	_ = logger.Shutdown()
	if err != nil {
		printError("%v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps err to the process exit status. Errors without a kind (bad
// flags, unknown commands) exit with CodeUnknown.
func exitCode(err error) int {
	var te *types.Error
	if errors.As(err, &te) {
		return int(types.CodeOf(err))
	}
	return int(types.CodeUnknown)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !cfg.Quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
