package main

import (
	"fmt"

	"github.com/Odelf18/career-maps/internal/facets"
	"github.com/spf13/cobra"
)

func newIndustriesCommand() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "industries <path-or-url>",
		Short: "List the distinct industries in a dataset, sorted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employers, err := flags.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, industry := range facets.Industries(employers) {
				fmt.Fprintln(cmd.OutOrStdout(), industry)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
