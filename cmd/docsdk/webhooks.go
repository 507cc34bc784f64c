package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	docsdk "github.com/docsdk/docsdk-go"
)

func newWebhooksCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Manage webhooks and check webhook signatures",
	}

	cmd.AddCommand(newWebhooksCreateCmd(opts))
	cmd.AddCommand(newWebhooksListCmd(opts))
	cmd.AddCommand(idCommand(opts, "delete <webhook-id>", "Delete a webhook",
		func(ctx context.Context, cli *docsdk.Client, id string) (*docsdk.Result[docsdk.Void], error) {
			return cli.Webhooks().Delete(ctx, id)
		}))
	cmd.AddCommand(newWebhooksVerifyCmd(opts))

	return cmd
}

func newWebhooksCreateCmd(opts *cliOptions) *cobra.Command {
	var events []string

	cmd := &cobra.Command{
		Use:   "create <url>",
		Short: "Register a webhook URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			req := docsdk.WebhookRequest{URL: args[0]}
			for _, e := range events {
				req.Events = append(req.Events, docsdk.Event(e))
			}
			result, err := cli.Webhooks().Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result)
		},
	}

	cmd.Flags().StringSliceVar(&events, "event", []string{
		string(docsdk.EventJobCreated),
		string(docsdk.EventJobFinished),
		string(docsdk.EventJobFailed),
	}, "Events to deliver")

	return cmd
}

func newWebhooksListCmd(opts *cliOptions) *cobra.Command {
	list := &listFlags{}
	var url string

	cmd := &cobra.Command{
		Use:               "list",
		Short:             "List webhooks of the current user",
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := buildClient(opts)
			if err != nil {
				return err
			}
			listOpts := list.options()
			if url != "" {
				listOpts.Filters[docsdk.FilterURL] = url
			}
			result, err := cli.Webhooks().List(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			return printResult(cmd, opts, result)
		},
	}

	list.addFlags(cmd)
	cmd.Flags().StringVar(&url, "url", "", "Only webhooks with this URL")

	return cmd
}

// newWebhooksVerifyCmd checks a stored webhook body offline. It needs only
// the signing secret, not an API key.
func newWebhooksVerifyCmd(opts *cliOptions) *cobra.Command {
	var (
		payloadPath string
		signature   string
		secret      string
	)

	cmd := &cobra.Command{
		Use:               "verify",
		Short:             "Verify the signature of a webhook payload",
		Args:              cobra.NoArgs,
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			if signature == "" {
				return errors.New("flag --signature is required")
			}
			if secret == "" {
				secret = os.Getenv(docsdk.EnvPrefix + "_WEBHOOK_SIGNING_SECRET")
			}

			payload, err := readPayload(cmd, payloadPath)
			if err != nil {
				return err
			}

			ok, err := docsdk.VerifySignature(secret, payload, signature)
			if err != nil {
				return err
			}
			if !ok {
				return docsdk.ErrSignatureMismatch
			}

			opts.logger.Info().Int("bytes", len(payload)).Msg("Signature valid")
			return nil
		},
	}

	cmd.Flags().StringVar(&payloadPath, "payload", "-", "File holding the raw request body, - for stdin")
	cmd.Flags().StringVar(&signature, "signature", "", "Value of the DocSDK-Signature header")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (or set DOCSDK_WEBHOOK_SIGNING_SECRET)")

	return cmd
}

func readPayload(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}
