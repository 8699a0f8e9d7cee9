package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	infrahttp "github.com/Odelf18/career-maps/infrastructure/http"
	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/spf13/cobra"
)

const version = "dev"

const defaultFetchTimeout = 30 * time.Second

// sourceFlags select the dataset a command reads.
type sourceFlags struct {
	sheet   string
	timeout time.Duration
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sheet, "sheet", dataset.DefaultSheet, "worksheet name for .xlsx inputs")
	cmd.Flags().DurationVar(&f.timeout, "timeout", defaultFetchTimeout, "fetch timeout for http(s) inputs")
}

// loader picks a loader for arg: http(s) URLs are fetched, .xlsx files are
// read as workbooks and anything else as JSON or YAML.
func (f *sourceFlags) loader(arg string) (dataset.Loader, error) {
	if isURL(arg) {
		return dataset.NewHTTPLoader(arg, infrahttp.NewClient(&infrahttp.ClientConfig{Timeout: f.timeout})), nil
	}

	format, err := dataset.FormatFromPath(arg)
	if err != nil {
		return nil, err
	}
	if format == dataset.FormatXLSX {
		return dataset.NewXLSXLoader(arg, f.sheet), nil
	}
	return dataset.NewFileLoader(arg), nil
}

// load reads arg without validating it.
func (f *sourceFlags) load(ctx context.Context, arg string) ([]domain.Employer, error) {
	loader, err := f.loader(arg)
	if err != nil {
		return nil, err
	}
	employers, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", loader.Source(), err)
	}
	return employers, nil
}

func isURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "datasetctl",
		Short:         "Inspect and convert careermaps employer datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datasetctl version %s\n", version)
		},
	})
	root.AddCommand(newValidateCommand())
	root.AddCommand(newIndustriesCommand())
	root.AddCommand(newTemplateCommand())
	root.AddCommand(newConvertCommand())
	return root
}
