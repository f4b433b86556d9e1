package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-assetprobe/internal/pipeline"
	"github.com/deploymenttheory/go-assetprobe/pkg/app/resmap"
)

var resmapCmd = &cobra.Command{
	Use:   "resmap",
	Short: "Show or build resource maps",
}

var resmapShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show the entries of a resource map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(cmd)
		name, _ := cmd.Flags().GetString("name")

		response, err := resmap.Show(ctx, &resmap.ShowRequest{Path: args[0], Name: name})
		if err != nil {
			return err
		}
		return resmap.FormatOutput(ctx.Out, response, ctx.OutputFormat)
	},
}

var resmapConvertCmd = &cobra.Command{
	Use:   "convert <input.yaml> <output>",
	Short: "Build a resource map from a YAML description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(cmd)
		p := pipeline.New(pipeline.Options{Logger: ctx.Logger})

		m, err := resmap.Convert(ctx, &resmap.ConvertRequest{Input: args[0], Output: args[1]}, p.Publisher)
		if err != nil {
			return err
		}
		if !ctx.Quiet {
			fmt.Fprintf(ctx.Out, "Wrote %d entries for %s to %s\n", len(m.Entries), m.Publisher.DisplayName(), args[1])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resmapCmd)
	resmapCmd.AddCommand(resmapShowCmd, resmapConvertCmd)

	resmapShowCmd.Flags().StringP("name", "n", "", "show entries whose name contains this text")
}
