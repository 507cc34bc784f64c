package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	docsdk "github.com/docsdk/docsdk-go"
)

func buildClient(opts *cliOptions) (*docsdk.Client, error) {
	settings, err := docsdk.LoadSettingsFrom(opts.v, opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w (flag --api-key or DOCSDK_API_KEY)", err)
	}

	return docsdk.NewClient(settings,
		docsdk.WithTimeout(opts.timeout),
		docsdk.WithProcessingTimeout(opts.processingTimeout),
		docsdk.WithLogger(opts.logger),
	)
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      noColor,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}).Level(level)
}

// printResult writes the body of a 2xx result to stdout. Any other status
// prints the error body and fails.
func printResult[T any](cmd *cobra.Command, opts *cliOptions, result *docsdk.Result[T]) error {
	if !result.IsSuccess() {
		if body := result.ErrorBody(); body != nil {
			_ = printValue(cmd, opts, body)
		}
		return result.Err()
	}
	if !result.HasBody() {
		opts.logger.Info().Int("status", result.Status()).Msg("Done")
		return nil
	}
	return printValue(cmd, opts, result.Body())
}

func printValue(cmd *cobra.Command, opts *cliOptions, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	if opts.query != "" {
		selected := gjson.GetBytes(data, opts.query)
		if !selected.Exists() {
			return fmt.Errorf("query %q matched nothing", opts.query)
		}
		data = []byte(selected.Raw)
	}

	out := cmd.OutOrStdout()
	if opts.format == formatYAML {
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("convert output: %w", err)
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("write yaml: %w", err)
		}
		return enc.Close()
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("format json: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(out)
	return err
}

func defaultDownloadName(urlStr, id string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return id
	}

	if name := path.Base(parsed.Path); name != "" && name != "/" && name != "." {
		return name
	}
	return id
}

func downloadToFile(ctx context.Context, cli *docsdk.Client, downloadURL, targetPath string) (int64, error) {
	dir := filepath.Dir(targetPath)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create download dir: %w", err)
		}
	}

	file, err := os.Create(targetPath)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	return cli.Files().DownloadTo(ctx, downloadURL, file)
}

// collectInputFiles returns p itself when it is a file, or the regular files
// directly inside p, optionally narrowed to one extension.
func collectInputFiles(p, ext string) ([]string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}

	if info.Mode().IsRegular() {
		return []string{p}, nil
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is neither file nor directory: %s", p)
	}

	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	ext = strings.TrimPrefix(ext, ".")
	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if ext != "" && !strings.EqualFold(strings.TrimPrefix(filepath.Ext(entry.Name()), "."), ext) {
			continue
		}
		files = append(files, filepath.Join(p, entry.Name()))
	}

	return files, nil
}

func changeExt(name, ext string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + "." + strings.TrimPrefix(ext, ".")
}

// idCommand builds a command taking one id argument and printing the result
// of call.
func idCommand[T any](opts *cliOptions, use, short string,
	call func(ctx context.Context, cli *docsdk.Client, id string) (*docsdk.Result[T], error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			result, err := call(cmd.Context(), cli, args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result)
		},
	}
}
