package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	docsdk "github.com/docsdk/docsdk-go"
)

// positionalAlwaysFlags returns all flags (local + inherited) even when user did not type a dash.
func positionalAlwaysFlags(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	flags := make([]string, 0, 16)

	add := func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		if f.Shorthand != "" {
			flags = append(flags, "-"+f.Shorthand)
		}
		flags = append(flags, "--"+f.Name)
	}

	cmd.NonInheritedFlags().VisitAll(add)
	cmd.InheritedFlags().VisitAll(add)

	return flags, cobra.ShellCompDirectiveNoFileComp
}

// statusCompletions offers the job and task states for --status.
func statusCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(docsdk.StatusWaiting),
		string(docsdk.StatusProcessing),
		string(docsdk.StatusFinished),
		string(docsdk.StatusError),
	}, cobra.ShellCompDirectiveNoFileComp
}
