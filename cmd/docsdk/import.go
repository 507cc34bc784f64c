package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	docsdk "github.com/docsdk/docsdk-go"
)

func newImportCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bring input files into DocSDK",
	}

	cmd.AddCommand(newImportUploadCmd(opts))
	cmd.AddCommand(newImportURLCmd(opts))

	return cmd
}

func newImportUploadCmd(opts *cliOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a local file and print the import task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return withFailureLog(opts.failLogPath, "", args[0], fmt.Errorf("open file: %w", err))
			}
			defer f.Close()

			if name == "" {
				name = filepath.Base(args[0])
			}
			result, err := cli.Import().UploadFile(cmd.Context(), docsdk.UploadImportRequest{}, name, f)
			if err != nil {
				return withFailureLog(opts.failLogPath, "", args[0], err)
			}
			return printResult(cmd, opts, result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "File name sent to the API (defaults to the base name)")

	return cmd
}

func newImportURLCmd(opts *cliOptions) *cobra.Command {
	var (
		filename string
		headers  map[string]string
	)

	cmd := &cobra.Command{
		Use:   "url <url>",
		Short: "Import a file the API downloads from a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			result, err := cli.Import().URL(cmd.Context(), docsdk.URLImportRequest{
				URL:      args[0],
				Filename: filename,
				Headers:  headers,
			})
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result)
		},
	}

	cmd.Flags().StringVar(&filename, "filename", "", "Override the file name")
	cmd.Flags().StringToStringVar(&headers, "header", nil, "Header sent when fetching the URL, as name=value (repeatable)")

	return cmd
}
