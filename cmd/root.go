package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-assetprobe/internal/config"
	"github.com/deploymenttheory/go-assetprobe/pkg/app"
)

var (
	// Global output flags
	verbose      bool
	quiet        bool
	outputFormat string
	configFile   string
)

var rootCmd = &cobra.Command{
	Use:   "assetprobe",
	Short: "Identify the container format of game asset files",
	Long: `assetprobe inspects game asset files and reports which container format
each one holds: asset bundles, serialized files, web data, compressed
envelopes, and the publisher-specific block and archive containers.

Obfuscated files are normalized for the selected publisher before they are
classified, so the reported format is the one the content really has.

Commands:
  classify    Classify files or directories
  publishers  List supported publishers
  resmap      Show or build resource maps
  config      Show the effective configuration`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: assetprobe-config.yaml in ., ./config, $HOME/.assetprobe, /etc/assetprobe)")
}

// newContext builds the application context from the global flags.
func newContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	if c := cmd.Context(); c != nil {
		ctx.Context = c
	}
	ctx.OutputFormat = outputFormat
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.Out = cmd.OutOrStdout()
	ctx.SetupLogger(cmd.ErrOrStderr())
	return ctx
}

// loadSettings reads configuration and lets the named command flags override it.
// bindings maps configuration keys to flag names.
func loadSettings(cmd *cobra.Command, bindings map[string]string) (*viper.Viper, error) {
	v, err := config.New(configFile)
	if err != nil {
		return nil, app.WrapError("failed to load configuration", err)
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return v, nil
}
