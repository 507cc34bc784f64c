package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	docsdk "github.com/docsdk/docsdk-go"
)

func newJobsCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Create and inspect jobs",
	}

	cmd.AddCommand(newJobsCreateCmd(opts))
	cmd.AddCommand(newJobsShowCmd(opts))
	cmd.AddCommand(newJobsWaitCmd(opts))
	cmd.AddCommand(newJobsListCmd(opts))
	cmd.AddCommand(newJobsDeleteCmd(opts))

	return cmd
}

type jobsCreateOptions struct {
	file     string
	tag      string
	wait     bool
	interval time.Duration
	opts     *cliOptions
	tasks    map[string]docsdk.TaskRequest
}

// jobFile is the on-disk form of a job: task names mapped to the task
// payloads, each with an "operation" key. JSON files parse as YAML.
type jobFile struct {
	Tag   string                    `yaml:"tag"`
	Tasks map[string]map[string]any `yaml:"tasks"`
}

func newJobsCreateCmd(opts *cliOptions) *cobra.Command {
	o := &jobsCreateOptions{opts: opts}

	cmd := &cobra.Command{
		Use:               "create",
		Short:             "Create a job from a YAML or JSON task file",
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.complete(); err != nil {
				return withFailureLog(opts.failLogPath, "", o.file, err)
			}
			return o.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Task file (yaml or json)")
	cmd.Flags().StringVar(&o.tag, "tag", "", "Tag stored with the job (overrides the file)")
	cmd.Flags().BoolVar(&o.wait, "wait", false, "Wait for the job to finish")
	cmd.Flags().DurationVar(&o.interval, "interval", 0, "Poll at this interval instead of waiting server-side")

	return cmd
}

func (o *jobsCreateOptions) complete() error {
	if o.file == "" {
		return errors.New("flag --file is required")
	}

	data, err := os.ReadFile(o.file)
	if err != nil {
		return fmt.Errorf("read task file: %w", err)
	}

	tasks, tag, err := parseJobFile(data)
	if err != nil {
		return fmt.Errorf("parse task file %s: %w", o.file, err)
	}
	o.tasks = tasks
	if o.tag == "" {
		o.tag = tag
	}
	return nil
}

func parseJobFile(data []byte) (map[string]docsdk.TaskRequest, string, error) {
	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, "", err
	}
	if len(f.Tasks) == 0 {
		return nil, "", docsdk.ErrEmptyTasks
	}

	tasks := make(map[string]docsdk.TaskRequest, len(f.Tasks))
	for name, fields := range f.Tasks {
		op, _ := fields["operation"].(string)
		if op == "" {
			return nil, "", fmt.Errorf("task %q has no operation", name)
		}
		tasks[name] = docsdk.RawTask{Op: docsdk.Operation(op), Fields: fields}
	}
	return tasks, f.Tag, nil
}

func (o *jobsCreateOptions) run(cmd *cobra.Command) error {
	cli, err := buildClient(o.opts)
	if err != nil {
		return withFailureLog(o.opts.failLogPath, "", o.file, err)
	}
	ctx := cmd.Context()

	created, err := cli.Jobs().Create(ctx, o.tasks, o.tag)
	if err != nil {
		return withFailureLog(o.opts.failLogPath, "", o.file, err)
	}
	if !created.IsSuccess() || !o.wait {
		return printResult(cmd, o.opts, created)
	}

	job := created.Body()
	o.opts.logger.Info().Str("job", job.ID).Str("status", string(job.Status)).Msg("Job created")

	done, err := waitJob(ctx, cli, job.ID, o.interval)
	if err != nil {
		return withFailureLog(o.opts.failLogPath, job.ID, o.file, err)
	}
	return printResult(cmd, o.opts, done)
}

// waitJob waits server-side, or polls when interval is positive.
func waitJob(ctx context.Context, cli *docsdk.Client, jobID string, interval time.Duration) (*docsdk.Result[*docsdk.JobResponse], error) {
	if interval > 0 {
		return cli.Jobs().Poll(ctx, jobID, interval)
	}
	return cli.Jobs().Wait(ctx, jobID)
}

func newJobsShowCmd(opts *cliOptions) *cobra.Command {
	return idCommand(opts, "show <job-id>", "Show a job and its tasks",
		func(ctx context.Context, cli *docsdk.Client, id string) (*docsdk.Result[*docsdk.JobResponse], error) {
			return cli.Jobs().Show(ctx, id)
		})
}

func newJobsWaitCmd(opts *cliOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "wait <job-id>",
		Short: "Block until a job finished or failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			result, err := waitJob(cmd.Context(), cli, args[0], interval)
			if err != nil {
				return withFailureLog(opts.failLogPath, args[0], "job", err)
			}
			return printResult(cmd, opts, result)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll at this interval instead of waiting server-side")

	return cmd
}

func newJobsListCmd(opts *cliOptions) *cobra.Command {
	list := &listFlags{}

	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List jobs",
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			result, err := cli.Jobs().List(cmd.Context(), list.options())
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result)
		},
	}

	list.addFlags(cmd)

	return cmd
}

func newJobsDeleteCmd(opts *cliOptions) *cobra.Command {
	return idCommand(opts, "delete <job-id>", "Delete a job and its files",
		func(ctx context.Context, cli *docsdk.Client, id string) (*docsdk.Result[docsdk.Void], error) {
			return cli.Jobs().Delete(ctx, id)
		})
}
