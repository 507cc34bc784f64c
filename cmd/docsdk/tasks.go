package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	docsdk "github.com/docsdk/docsdk-go"
)

func newTasksCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Inspect and manage tasks",
	}

	cmd.AddCommand(newTasksShowCmd(opts))
	cmd.AddCommand(newTasksWaitCmd(opts))
	cmd.AddCommand(newTasksListCmd(opts))
	cmd.AddCommand(idCommand(opts, "delete <task-id>", "Delete a task and its files",
		func(ctx context.Context, cli *docsdk.Client, id string) (*docsdk.Result[docsdk.Void], error) {
			return cli.Tasks().Delete(ctx, id)
		}))
	cmd.AddCommand(idCommand(opts, "cancel <task-id>", "Cancel a waiting or processing task",
		func(ctx context.Context, cli *docsdk.Client, id string) (*docsdk.Result[*docsdk.TaskResponse], error) {
			return cli.Tasks().Cancel(ctx, id)
		}))
	cmd.AddCommand(idCommand(opts, "retry <task-id>", "Run a task again with the same payload",
		func(ctx context.Context, cli *docsdk.Client, id string) (*docsdk.Result[*docsdk.TaskResponse], error) {
			return cli.Tasks().Retry(ctx, id)
		}))
	cmd.AddCommand(newTasksFormatsCmd(opts))
	cmd.AddCommand(newTasksOperationsCmd(opts))

	return cmd
}

func newTasksShowCmd(opts *cliOptions) *cobra.Command {
	var includes []string

	cmd := idCommand(opts, "show <task-id>", "Show a task",
		func(ctx context.Context, cli *docsdk.Client, id string) (*docsdk.Result[*docsdk.TaskResponse], error) {
			incs := make([]docsdk.Include, 0, len(includes))
			for _, inc := range includes {
				incs = append(incs, docsdk.Include(inc))
			}
			return cli.Tasks().Show(ctx, id, incs...)
		})

	cmd.Flags().StringSliceVar(&includes, "include", nil, "Relations to embed: retries,depends_on_tasks,payload")

	return cmd
}

func newTasksWaitCmd(opts *cliOptions) *cobra.Command {
	var interval time.Duration

	cmd := idCommand(opts, "wait <task-id>", "Block until a task finished or failed",
		func(ctx context.Context, cli *docsdk.Client, id string) (*docsdk.Result[*docsdk.TaskResponse], error) {
			if interval > 0 {
				return cli.Tasks().Poll(ctx, id, interval)
			}
			return cli.Tasks().Wait(ctx, id)
		})

	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll at this interval instead of waiting server-side")

	return cmd
}

func newTasksListCmd(opts *cliOptions) *cobra.Command {
	list := &listFlags{}
	var jobID string

	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List tasks",
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			listOpts := list.options()
			if jobID != "" {
				listOpts.Filters[docsdk.FilterJobID] = jobID
			}
			result, err := cli.Tasks().List(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result)
		},
	}

	list.addFlags(cmd)
	cmd.Flags().StringVar(&jobID, "job-id", "", "Only list tasks of this job")

	return cmd
}

type operationFlags struct {
	inputFormat  string
	outputFormat string
	engine       string
	operation    string
	includes     []string
	alternative  bool
}

func (f *operationFlags) addFlags(cmd *cobra.Command, withOperation bool) {
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "Only formats converting from this format")
	cmd.Flags().StringVar(&f.outputFormat, "output-format", "", "Only formats converting to this format")
	cmd.Flags().StringVar(&f.engine, "engine", "", "Only this engine")
	cmd.Flags().StringSliceVar(&f.includes, "include", nil, "Relations to embed: options,engine_versions")
	cmd.Flags().BoolVar(&f.alternative, "alternative", false, "Include alternative engines")
	if withOperation {
		cmd.Flags().StringVar(&f.operation, "operation", "", "Only this operation")
	}
}

func (f *operationFlags) options(cmd *cobra.Command) docsdk.OperationOptions {
	opts := docsdk.OperationOptions{Filters: docsdk.Filters{}}
	set := func(name docsdk.Filter, value string) {
		if value != "" {
			opts.Filters[name] = value
		}
	}
	set(docsdk.FilterInputFormat, f.inputFormat)
	set(docsdk.FilterOutputFormat, f.outputFormat)
	set(docsdk.FilterEngine, f.engine)
	set(docsdk.FilterOperation, f.operation)
	for _, inc := range f.includes {
		opts.Includes = append(opts.Includes, docsdk.Include(inc))
	}
	if cmd.Flags().Changed("alternative") {
		alt := f.alternative
		opts.Alternative = &alt
	}
	return opts
}

func newTasksFormatsCmd(opts *cliOptions) *cobra.Command {
	flags := &operationFlags{}

	cmd := &cobra.Command{
		Use:               "formats",
		Short:             "List supported conversions",
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			result, err := cli.Tasks().ConvertFormats(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result)
		},
	}

	flags.addFlags(cmd, false)

	return cmd
}

func newTasksOperationsCmd(opts *cliOptions) *cobra.Command {
	flags := &operationFlags{}

	cmd := &cobra.Command{
		Use:               "operations",
		Short:             "List every available operation",
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			result, err := cli.Tasks().Operations(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result)
		},
	}

	flags.addFlags(cmd, true)

	return cmd
}
