package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	docsdk "github.com/docsdk/docsdk-go"
)

func newConvertCmd(opts *cliOptions) *cobra.Command {
	co := &convertOptions{opts: opts}

	cmd := &cobra.Command{
		Use:               "convert",
		Short:             "Upload, convert and download a file or every file in a directory",
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := co.complete(); err != nil {
				return withFailureLog(opts.failLogPath, "", co.inputPath, err)
			}
			return co.run(cmd)
		},
	}

	co.addFlags(cmd)

	return cmd
}

type convertOptions struct {
	inputPath   string
	extension   string
	to          string
	inputFormat string
	engine      string
	options     map[string]string
	interval    time.Duration
	outputDir   string
	concurrency int
	wait        bool
	opts        *cliOptions
	files       []string
	conversion  convertJobConfig
}

type convertJobConfig struct {
	request   docsdk.ConvertRequest
	wait      bool
	interval  time.Duration
	outputDir string
	failLog   string
}

func (o *convertOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.inputPath, "path", "p", "", "File or directory to convert")
	cmd.Flags().StringVar(&o.extension, "ext", "", "Only convert files with this extension when --path is a directory")
	cmd.Flags().StringVar(&o.to, "to", "", "Output format, e.g. pdf, docx, png")
	cmd.Flags().StringVar(&o.inputFormat, "input-format", "", "Input format (detected from the file name when empty)")
	cmd.Flags().StringVar(&o.engine, "engine", "", "Conversion engine")
	cmd.Flags().StringToStringVar(&o.options, "option", nil, "Engine option as name=value (repeatable)")
	cmd.Flags().BoolVar(&o.wait, "wait", true, "Wait for the conversion and download the result")
	cmd.Flags().DurationVar(&o.interval, "interval", 0, "Poll at this interval instead of waiting server-side")
	cmd.Flags().StringVar(&o.outputDir, "output-dir", ".", "Directory for the converted files")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", 3, "Number of files converted at once")
}

func (o *convertOptions) complete() error {
	if o.inputPath == "" {
		return errors.New("flag --path is required")
	}
	if o.to == "" {
		return errors.New("flag --to is required")
	}
	if o.concurrency <= 0 {
		o.concurrency = 3
	}

	files, err := collectInputFiles(o.inputPath, o.extension)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files found in %s", o.inputPath)
	}
	o.files = files

	req := docsdk.ConvertRequest{
		InputFormat:  o.inputFormat,
		OutputFormat: o.to,
		Engine:       o.engine,
	}
	if len(o.options) > 0 {
		req.Options = make(map[string]any, len(o.options))
		for k, v := range o.options {
			req.Options[k] = v
		}
	}

	o.conversion = convertJobConfig{
		request:   req,
		wait:      o.wait,
		interval:  o.interval,
		outputDir: o.outputDir,
		failLog:   o.opts.failLogPath,
	}
	return nil
}

func (o *convertOptions) run(cmd *cobra.Command) error {
	cli, err := buildClient(o.opts)
	if err != nil {
		return withFailureLog(o.opts.failLogPath, "", o.inputPath, err)
	}

	if len(o.files) == 1 {
		return convertFile(cmd.Context(), cli, o.opts, o.files[0], o.conversion)
	}
	return runConvertBatch(cmd.Context(), cli, o.opts, o.files, o.concurrency, o.conversion)
}

func runConvertBatch(ctx context.Context, cli *docsdk.Client, opts *cliOptions, files []string, concurrency int, job convertJobConfig) error {
	eg, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}

	var (
		errs []error
		mu   sync.Mutex
	)

	for _, file := range files {
		file := file
		eg.Go(func() error {
			if err := convertFile(ctx, cli, opts, file, job); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if len(errs) > 0 {
		return fmt.Errorf("batch completed with %d errors, first: %w", len(errs), errs[0])
	}

	return nil
}

// convertFile runs the upload, convert and export/url tasks for one file and
// downloads every exported file into the output directory.
func convertFile(ctx context.Context, cli *docsdk.Client, opts *cliOptions, file string, job convertJobConfig) error {
	label := filepath.Base(file)
	logger := opts.logger.With().Str("file", label).Logger()
	fail := func(id string, err error) error {
		return withFailureLog(job.failLog, id, file, err)
	}

	f, err := os.Open(file)
	if err != nil {
		return fail("", fmt.Errorf("open file: %w", err))
	}
	defer f.Close()

	uploaded, err := cli.Import().UploadFile(ctx, docsdk.UploadImportRequest{}, label, f)
	if err != nil {
		return fail("", err)
	}
	if !uploaded.IsSuccess() {
		return fail("", fmt.Errorf("[%s] upload failed: %w", label, uploaded.Err()))
	}
	upload := uploaded.Body()
	logger.Info().Str("task", upload.ID).Msg("Upload success")

	req := job.request
	req.Input = upload.ID
	converted, err := cli.Tasks().Convert(ctx, req)
	if err != nil {
		return fail(upload.ID, err)
	}
	if !converted.IsSuccess() {
		return fail(upload.ID, fmt.Errorf("[%s] convert failed: %w", label, converted.Err()))
	}
	conversion := converted.Body()
	logger.Info().Str("task", conversion.ID).Str("status", string(conversion.Status)).Msg("Convert requested")

	exported, err := cli.Export().URL(ctx, docsdk.URLExportRequest{Input: conversion.ID})
	if err != nil {
		return fail(conversion.ID, err)
	}
	if !exported.IsSuccess() {
		return fail(conversion.ID, fmt.Errorf("[%s] export failed: %w", label, exported.Err()))
	}
	export := exported.Body()

	if !job.wait {
		logger.Info().Str("task", export.ID).Msg("Submitted conversion")
		return nil
	}

	var done *docsdk.Result[*docsdk.TaskResponse]
	if job.interval > 0 {
		done, err = cli.Tasks().Poll(ctx, export.ID, job.interval)
	} else {
		done, err = cli.Tasks().Wait(ctx, export.ID)
	}
	if err != nil {
		return fail(export.ID, err)
	}
	if !done.IsSuccess() {
		return fail(export.ID, fmt.Errorf("[%s] wait failed: %w", label, done.Err()))
	}

	task := done.Body()
	if task.Status != docsdk.StatusFinished {
		return fail(export.ID, fmt.Errorf("[%s] export ended %s: %s", label, task.Status, task.Message))
	}
	if task.Result == nil || len(task.Result.Files) == 0 {
		return fail(export.ID, fmt.Errorf("[%s] export finished without files", label))
	}

	for _, out := range task.Result.Files {
		name := out.Filename
		if name == "" {
			name = changeExt(label, req.OutputFormat)
		}
		target := filepath.Join(job.outputDir, name)

		n, err := downloadToFile(ctx, cli, out.URL, target)
		if err != nil {
			return fail(export.ID, err)
		}
		logger.Info().Str("path", target).Int64("bytes", n).Msg("Downloaded converted file")
	}

	return nil
}
