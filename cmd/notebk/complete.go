package main

import (
	"strings"

	"github.com/spf13/cobra"

	"notebk/internal/app"
)

var pathActions = []string{"which", "delete", "rm", "ls"}

// completePathThenAction completes a folder address for the first word and
// an action name for the second.
func completePathThenAction(newSvc func() (*app.Service, error)) cobra.CompletionFunc {
	folders := completePaths(newSvc, 1)
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			var out []string
			for _, a := range pathActions {
				if strings.HasPrefix(a, toComplete) {
					out = append(out, a)
				}
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		}
		return folders(cmd, args, toComplete)
	}
}

// completePaths completes folder addresses for the first n positional words.
func completePaths(newSvc func() (*app.Service, error), n int) cobra.CompletionFunc {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		svc, err := newSvc()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return svc.Complete(toComplete), cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
	}
}
