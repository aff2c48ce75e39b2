package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func modelsCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List extraction back-ends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			models := a.registry.ListAvailable()
			if all {
				models = a.registry.List()
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tLABEL")
			for _, m := range models {
				fmt.Fprintf(tw, "%s\t%s\n", m.Key, m.Label)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include back-ends that cannot be built here")
	return cmd
}
