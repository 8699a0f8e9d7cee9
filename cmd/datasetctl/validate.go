package main

import (
	"errors"
	"fmt"

	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/spf13/cobra"
)

// errInvalidDataset is returned after the issues have been printed.
var errInvalidDataset = errors.New("dataset is invalid")

func newValidateCommand() *cobra.Command {
	var flags sourceFlags
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <path-or-url>",
		Short: "Check a dataset for errors and warnings",
		Long: `Loads a dataset the way the service does and reports every problem.

Duplicate or empty ids and missing names are errors. Invalid coordinates and
missing or relative career URLs are warnings: the employer stays in the list
but cannot be placed on the map or linked.

Example:
  datasetctl validate data/employers.json
  datasetctl validate employers.xlsx --sheet Employers --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employers, err := flags.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			warnings, verr := dataset.Validate(employers)
			for _, w := range warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}

			var invalid *dataset.ValidationError
			if errors.As(verr, &invalid) {
				for _, issue := range invalid.Issues {
					fmt.Fprintf(out, "error: %s\n", issue)
				}
				return errInvalidDataset
			}
			if verr != nil {
				return verr
			}

			fmt.Fprintf(out, "%d employers, %d warnings\n", len(employers), len(warnings))
			if strict && len(warnings) > 0 {
				return fmt.Errorf("%w: %d warnings in strict mode", errInvalidDataset, len(warnings))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}
