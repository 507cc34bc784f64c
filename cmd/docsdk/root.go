package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	docsdk "github.com/docsdk/docsdk-go"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type cliOptions struct {
	apiKey            string
	sandbox           bool
	apiURL            string
	configFile        string
	timeout           time.Duration
	processingTimeout time.Duration
	logLevel          string
	format            string
	query             string
	failLogPath       string

	v      *viper.Viper
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{v: viper.New(), logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "docsdk",
		Short:         "DocSDK API v2 command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.complete(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.apiKey, "api-key", "", "DocSDK API key (or set DOCSDK_API_KEY)")
	flags.BoolVar(&opts.sandbox, "sandbox", false, "Use the sandbox API (or set DOCSDK_USE_SANDBOX)")
	flags.StringVar(&opts.apiURL, "api-url", "", "Override the API base URL")
	flags.StringVar(&opts.configFile, "config", "", "Settings file (properties, yaml, json or toml)")
	flags.DurationVar(&opts.timeout, "timeout", docsdk.DefaultTimeout, "HTTP timeout for API requests")
	flags.DurationVar(&opts.processingTimeout, "processing-timeout", docsdk.ProcessingTimeout, "Timeout for uploads, downloads and polling")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flags.StringVar(&opts.format, "format", formatJSON, "Output format: json|yaml")
	flags.StringVar(&opts.query, "query", "", "gjson path applied to the JSON output")
	flags.StringVar(&opts.failLogPath, "fail-log", "fail.log", "Path to write failed task logs")

	_ = opts.v.BindPFlag(docsdk.KeyAPIKey, flags.Lookup("api-key"))
	_ = opts.v.BindPFlag(docsdk.KeyUseSandbox, flags.Lookup("sandbox"))
	_ = opts.v.BindPFlag(docsdk.KeyAPIURL, flags.Lookup("api-url"))

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{formatJSON, formatYAML}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("log-level", cobra.FixedCompletions([]string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp))

	cmd.AddCommand(newUsersCmd(opts))
	cmd.AddCommand(newJobsCmd(opts))
	cmd.AddCommand(newTasksCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newDownloadCmd(opts))
	cmd.AddCommand(newConvertCmd(opts))
	cmd.AddCommand(newWebhooksCmd(opts))
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

func (o *cliOptions) complete(cmd *cobra.Command) error {
	switch o.format {
	case formatJSON, formatYAML:
	default:
		return fmt.Errorf("unsupported output format: %s", o.format)
	}

	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	o.logger = newLogger(cmd.ErrOrStderr(), level)

	return nil
}
