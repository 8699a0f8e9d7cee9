package dataset_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/stretchr/testify/require"
)

func sampleEmployers() []domain.Employer {
	return []domain.Employer{
		{
			ID: "1", Name: "Acme Tech", Industry: "Technology",
			Address: "1 Main St, Richmond, VA", Lat: 37.54, Lng: -77.43,
			CareerURL: "https://acme.example/careers",
			JobPostings: []domain.JobPosting{
				{Title: "Backend Engineer", Tags: []string{"Senior", "Remote"}},
				{Title: "QA Analyst", Tags: []string{"Entry"}},
			},
		},
		{
			ID: "2", Name: "River Health", Industry: "Healthcare",
			Address: "200 Broad St, Richmond, VA", Lat: 37.55, Lng: -77.45,
			CareerURL:   "https://riverhealth.example/jobs",
			JobPostings: []domain.JobPosting{{Title: "Nurse", Tags: []string{"On-site"}}},
		},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

var nan = math.NaN()
