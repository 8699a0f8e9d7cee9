package main

import (
	"fmt"

	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/spf13/cobra"
)

// templateRows are the example rows written to a fresh workbook.
var templateRows = []domain.Employer{
	{
		ID:        "acme-tech",
		Name:      "Acme Tech",
		Industry:  "Technology",
		Address:   "901 E Byrd St, Richmond, VA 23219",
		Lat:       37.5349,
		Lng:       -77.4337,
		CareerURL: "https://careers.acme.example",
		JobPostings: []domain.JobPosting{
			{Title: "Backend Engineer", Tags: []string{"Mid Level", "Hybrid"}},
			{Title: "Engineering Intern", Tags: []string{"Entry Level", "On-site"}},
		},
	},
	{
		ID:        "river-health",
		Name:      "River City Health",
		Industry:  "Healthcare",
		Address:   "1200 E Broad St, Richmond, VA 23298",
		Lat:       37.5407,
		Lng:       -77.4297,
		CareerURL: "https://jobs.riverhealth.example",
		JobPostings: []domain.JobPosting{
			{Title: "Registered Nurse", Tags: []string{"On-site"}},
		},
	},
}

func newTemplateCommand() *cobra.Command {
	var out, sheet, from string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an Excel workbook in the xlsx dataset layout",
		Long: `Writes a workbook with the header row the xlsx source expects:

  id, name, industry, address, lat, lng, career_url, job_postings

job_postings holds "Title [tag1|tag2]; Title2 [tag]". With --from the rows
are copied from an existing JSON or YAML dataset, otherwise two example rows
are written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := templateRows
			if from != "" {
				employers, err := dataset.NewFileLoader(from).Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("load %s: %w", from, err)
				}
				rows = employers
			}

			f, err := dataset.NewWorkbook(rows, sheet)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			if err = f.SaveAs(out); err != nil {
				return fmt.Errorf("save %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(rows), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "employers.xlsx", "output workbook path")
	cmd.Flags().StringVar(&sheet, "sheet", dataset.DefaultSheet, "worksheet name")
	cmd.Flags().StringVar(&from, "from", "", "JSON or YAML dataset to copy rows from")
	return cmd
}
