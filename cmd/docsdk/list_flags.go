package main

import (
	"github.com/spf13/cobra"

	docsdk "github.com/docsdk/docsdk-go"
)

type listFlags struct {
	filters  map[string]string
	includes []string
	status   string
	page     int
	perPage  int
}

func (l *listFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringToStringVar(&l.filters, "filter", nil, "Filter as name=value, e.g. operation=convert (repeatable)")
	cmd.Flags().StringSliceVar(&l.includes, "include", nil, "Relations to embed, e.g. tasks,payload")
	cmd.Flags().StringVar(&l.status, "status", "", "Only list entries in this state")
	cmd.Flags().IntVar(&l.page, "page", 0, "Page number")
	cmd.Flags().IntVar(&l.perPage, "per-page", 0, "Entries per page")

	_ = cmd.RegisterFlagCompletionFunc("status", statusCompletions)
}

func (l *listFlags) options() docsdk.ListOptions {
	opts := docsdk.ListOptions{Filters: docsdk.Filters{}}
	for name, value := range l.filters {
		opts.Filters[docsdk.Filter(name)] = value
	}
	if l.status != "" {
		opts.Filters[docsdk.FilterStatus] = l.status
	}
	for _, inc := range l.includes {
		opts.Includes = append(opts.Includes, docsdk.Include(inc))
	}
	if l.page > 0 || l.perPage > 0 {
		opts.Pagination = &docsdk.Pagination{Page: l.page, PerPage: l.perPage}
	}
	return opts
}
