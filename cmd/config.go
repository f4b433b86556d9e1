package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-assetprobe/internal/config"
	"github.com/deploymenttheory/go-assetprobe/pkg/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(cmd)

		v, err := loadSettings(cmd, nil)
		if err != nil {
			return err
		}
		settings, err := config.Decode(v)
		if err != nil {
			return app.WrapError("invalid configuration", err)
		}
		if used := v.ConfigFileUsed(); used != "" {
			ctx.Log("using config file", "path", used)
		}

		switch ctx.OutputFormat {
		case "json":
			encoder := json.NewEncoder(ctx.Out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(settings)
		case "yaml":
			encoder := yaml.NewEncoder(ctx.Out)
			defer encoder.Close()
			encoder.SetIndent(2)
			return encoder.Encode(settings)
		case "table":
			tw := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "KEY\tVALUE\n")
			fmt.Fprintf(tw, "%s\t%s\n", config.KeyPublisher, settings.Publisher)
			fmt.Fprintf(tw, "%s\t%s\n", config.KeyKeyFile, settings.KeyFile)
			fmt.Fprintf(tw, "%s\t%s\n", config.KeyResourceMap, settings.ResourceMap)
			fmt.Fprintf(tw, "%s\t%d\n", config.KeyWorkers, settings.Workers)
			fmt.Fprintf(tw, "%s\t%t\n", config.KeyUnwrapEnvelopes, settings.UnwrapEnvelopes)
			fmt.Fprintf(tw, "%s\t%d\n", config.KeyMaxUnwrappedBytes, settings.MaxUnwrappedBytes)
			fmt.Fprintf(tw, "%s\t%t\n", config.KeyFingerprint, settings.Fingerprint)
			return tw.Flush()
		default:
			return fmt.Errorf("unsupported output format: %s", ctx.OutputFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}
