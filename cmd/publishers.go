package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-assetprobe/pkg/app/publishers"
)

var publishersCmd = &cobra.Command{
	Use:   "publishers [name]",
	Short: "List supported publishers",
	Long: `List the publishers assetprobe knows, in catalog order, with the cipher
shape each one uses. Pass a display name or identifier to show one publisher.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newContext(cmd)
		req := &publishers.Request{}
		if len(args) == 1 {
			req.Name = args[0]
		}

		response, err := publishers.Handle(ctx, req)
		if err != nil {
			return err
		}
		return publishers.FormatOutput(ctx.Out, response, ctx.OutputFormat)
	},
}

func init() {
	rootCmd.AddCommand(publishersCmd)
}
