package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-assetprobe/internal/config"
	"github.com/deploymenttheory/go-assetprobe/pkg/app"
	"github.com/deploymenttheory/go-assetprobe/pkg/app/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <path>...",
	Short: "Classify asset files by container format",
	Long: `Classify files, or every file in the given directories, by container format.

Examples:
  # Classify a single bundle
  assetprobe classify data/level0.bundle

  # Classify a game's data directory for a publisher
  assetprobe classify StreamingAssets --recursive --game 崩坏三

  # Machine-readable output with content fingerprints
  assetprobe classify downloads/*.blk --game GI --fingerprint -o json`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassify(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringP("game", "g", config.DefaultPublisher, "publisher display name or identifier")
	classifyCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	classifyCmd.Flags().Bool("fingerprint", false, "report a BLAKE3 fingerprint of each preprocessed stream")
	classifyCmd.Flags().IntP("workers", "w", 4, "number of files classified concurrently")
	classifyCmd.Flags().String("key-file", "", "YAML file with publisher key material")
	classifyCmd.Flags().String("resource-map", "", "resource map used to annotate results")
	classifyCmd.Flags().Bool("unwrap", true, "decompress gzip and brotli envelopes and classify their content")
}

func runClassify(cmd *cobra.Command, paths []string) error {
	ctx := newContext(cmd)

	v, err := loadSettings(cmd, map[string]string{
		config.KeyPublisher:       "game",
		config.KeyFingerprint:     "fingerprint",
		config.KeyWorkers:         "workers",
		config.KeyKeyFile:         "key-file",
		config.KeyResourceMap:     "resource-map",
		config.KeyUnwrapEnvelopes: "unwrap",
	})
	if err != nil {
		return err
	}
	settings, err := config.Decode(v)
	if err != nil {
		return app.WrapError("invalid configuration", err)
	}

	recursive, _ := cmd.Flags().GetBool("recursive")
	request := &classify.Request{
		Paths:             paths,
		Publisher:         settings.Publisher,
		Recursive:         recursive,
		KeyFile:           settings.KeyFile,
		ResourceMap:       settings.ResourceMap,
		Workers:           settings.Workers,
		UnwrapEnvelopes:   settings.UnwrapEnvelopes,
		MaxUnwrappedBytes: settings.MaxUnwrappedBytes,
		Fingerprint:       settings.Fingerprint,
	}

	response, err := classify.Handle(ctx, request)
	if err != nil {
		return err
	}
	return classify.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
