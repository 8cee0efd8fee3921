// Package cmd provides the s2l command-line interface.
//
// Configuration System:
//
//	Settings come from several sources with clear precedence:
//	1. Command-line flags (--workers, --output, --log-level, ...) - highest priority
//	2. Individual environment variables (S2L_CONVERSION_WORKERS, ...)
//	3. Configuration file: --config, else S2L_CONFIG_FILE, else .s2l.yml
//	4. Built-in defaults - lowest priority
//
// Environment Variables:
//
//	S2L_CONFIG_FILE: Path to a custom configuration file
//	S2L_CONVERSION_WORKERS: Conversion pool size
//	S2L_DEFAULTS_VIEWBOX: viewBox applied to every scanned file
//	And the rest following the S2L_<SECTION>_<OPTION> pattern
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/s2l/internal/config"
	"github.com/conneroisu/s2l/internal/logging"
	"github.com/conneroisu/s2l/internal/opener"
	"github.com/conneroisu/s2l/internal/ui"
)

// app carries what every command needs. A fresh app is built per root
// command so tests never share flag or viper state.
type app struct {
	v       *viper.Viper
	fs      afero.Fs
	opener  opener.Opener
	cfgFile string
	noColor bool
	logJSON bool

	cfg    *config.Config
	logger logging.Logger
}

func newApp() *app {
	return &app{
		v:      viper.New(),
		fs:     afero.NewOsFs(),
		opener: opener.Default(),
		logger: logging.NewNopLogger(),
	}
}

// Execute runs the root command with os.Args.
func Execute(ctx context.Context) error {
	return newRootCmd(newApp()).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "s2l",
		Short: "Convert SVG icons into .liquid snippets",
		Long: `s2l converts a directory of SVG files into Liquid snippets.

Each file has its XML declaration removed, its width and height dropped, a
viewBox and optional class set on the root <svg>, and a fill added to every
<path> that has none. Output names never overwrite: icon.liquid becomes
icon(1).liquid when taken.

Quick Start:
  s2l scan ./icons                       List the SVG files that would be converted
  s2l convert ./icons -O ./snippets      Convert every file
  s2l convert ./icons --fill currentColor --select 'arrow-*'

Documentation: https://github.com/conneroisu/s2l`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .s2l.yml, can also use S2L_CONFIG_FILE env var)")
	root.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "write logs as JSON")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	_ = a.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newScanCmd(a), newConvertCmd(a), newVersionCmd())
	return root
}

// initConfig loads the configuration and sets up logging.
//
// Configuration file lookup (highest to lowest):
//  1. --config flag
//  2. S2L_CONFIG_FILE environment variable
//  3. .s2l.yml in the current directory
//
// A missing default file is not an error; a file named explicitly must exist.
func (a *app) initConfig(stderr io.Writer) error {
	explicit := true
	switch {
	case a.cfgFile != "":
		a.v.SetConfigFile(a.cfgFile)
	case os.Getenv("S2L_CONFIG_FILE") != "":
		a.v.SetConfigFile(os.Getenv("S2L_CONFIG_FILE"))
	default:
		explicit = false
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".s2l")
	}

	a.v.SetEnvPrefix("S2L")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColor()
	}

	logCfg := cfg.LoggerConfig()
	logCfg.Output = stderr
	if a.logJSON {
		logCfg.Format = "json"
	}
	a.logger = logging.NewLogger(logCfg)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug(context.Background(), "Using config file", "path", used)
	}
	return nil
}
