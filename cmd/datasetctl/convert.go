package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errUnplaceable = errors.New("JSON cannot hold missing coordinates; convert to YAML instead")

func newConvertCommand() *cobra.Command {
	var flags sourceFlags
	var out string

	cmd := &cobra.Command{
		Use:   "convert <path-or-url>",
		Short: "Convert a dataset to JSON or YAML",
		Long: `Reads any supported dataset and writes it as JSON or YAML, chosen by the
extension of --out. The input must pass validation.

Example:
  datasetctl convert employers.xlsx --out data/employers.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := dataset.FormatFromPath(out)
			if err != nil {
				return err
			}

			employers, err := flags.load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if _, err = dataset.Validate(employers); err != nil {
				return err
			}

			data, err := encode(employers, format)
			if err != nil {
				return err
			}
			if err = os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d employers to %s\n", len(employers), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "employers.json", "output path (.json, .yaml or .yml)")
	return cmd
}

func encode(employers []domain.Employer, format string) ([]byte, error) {
	switch format {
	case dataset.FormatJSON:
		for i := range employers {
			if !finite(employers[i].Lat) || !finite(employers[i].Lng) {
				return nil, fmt.Errorf("%w (employer %s)", errUnplaceable, employers[i].ID)
			}
		}
		data, err := json.MarshalIndent(employers, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case dataset.FormatYAML:
		data, err := yaml.Marshal(employers)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: cannot write %s", dataset.ErrUnsupportedFormat, format)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
