package main

import (
	"github.com/spf13/cobra"
)

func newDownloadCmd(opts *cliOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download an exported file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}

			target := output
			if target == "" {
				target = defaultDownloadName(args[0], "download")
			}

			n, err := downloadToFile(cmd.Context(), cli, args[0], target)
			if err != nil {
				return withFailureLog(opts.failLogPath, "", args[0], err)
			}

			opts.logger.Info().Str("path", target).Int64("bytes", n).Msg("Downloaded")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Target path (defaults to the file name in the URL)")

	return cmd
}
