package dataset_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/Odelf18/career-maps/internal/dataset"
	"github.com/Odelf18/career-maps/internal/viewsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employersJSON = `[
  {"id":"1","name":"Acme Tech","industry":"Technology","address":"1 Main St","lat":37.54,"lng":-77.43,
   "careerUrl":"https://acme.example/careers",
   "jobPostings":[{"title":"Backend Engineer","tags":["Senior","Remote"]}]},
  {"id":"2","name":"River Health","industry":"Healthcare","address":"200 Broad St","lat":37.55,"lng":-77.45,
   "careerUrl":"https://riverhealth.example/jobs","jobPostings":[]}
]`

const employersYAML = `
- id: "1"
  name: Acme Tech
  industry: Technology
  address: 1 Main St
  lat: 37.54
  lng: -77.43
  careerUrl: https://acme.example/careers
  jobPostings:
    - title: Backend Engineer
      tags: [Senior, Remote]
- id: "2"
  name: River Health
  industry: Healthcare
  address: 200 Broad St
  lat: 37.55
  lng: -77.45
  careerUrl: https://riverhealth.example/jobs
  jobPostings: []
`

func TestFileLoader_JSONAndYAMLAgree(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fromJSON, err := dataset.NewFileLoader(writeFile(t, "employers.json", employersJSON)).Load(ctx)
	require.NoError(t, err)
	fromYAML, err := dataset.NewFileLoader(writeFile(t, "employers.yml", employersYAML)).Load(ctx)
	require.NoError(t, err)

	require.Len(t, fromJSON, 2)
	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, []string{"Senior", "Remote"}, fromJSON[0].JobPostings[0].Tags)
}

func TestDecode_MissingCoordinatesAreUnplaceable(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		dataset.FormatJSON: `[
  {"id":"1","name":"Acme Tech","lat":37.54,"lng":-77.43},
  {"id":"2","name":"No Coords"},
  {"id":"3","name":"Null Coords","lat":null,"lng":null}
]`,
		dataset.FormatYAML: `
- {id: "1", name: Acme Tech, lat: 37.54, lng: -77.43}
- {id: "2", name: No Coords}
- {id: "3", name: Null Coords, lat: null, lng: null}
`,
	}

	for format, input := range inputs {
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			employers, err := dataset.Decode(strings.NewReader(input), format)
			require.NoError(t, err)
			require.Len(t, employers, 3)

			assert.True(t, employers[0].HasValidCoordinates())
			assert.False(t, employers[1].HasValidCoordinates())
			assert.False(t, employers[2].HasValidCoordinates())

			markers := viewsync.Markers(employers)
			require.Len(t, markers, 1)
			assert.Equal(t, "1", markers[0].ID)

			fit, ok := viewsync.FitBounds(employers, viewsync.DefaultFitPadding)
			require.True(t, ok)
			assert.InDelta(t, 37.54, fit.Bounds.South, 1e-9)
			assert.InDelta(t, -77.43, fit.Bounds.East, 1e-9)

			warnings, err := dataset.Validate(employers)
			require.NoError(t, err)
			var unplaced []string
			for _, w := range warnings {
				if w.Field == "lat/lng" {
					assert.Equal(t, "missing, not shown on map", w.Message)
					unplaced = append(unplaced, w.ID)
				}
			}
			assert.Equal(t, []string{"2", "3"}, unplaced)
		})
	}
}

func TestFileLoader_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := dataset.NewFileLoader(writeFile(t, "employers.csv", "id,name")).Load(ctx)
	require.ErrorIs(t, err, dataset.ErrUnsupportedFormat)

	_, err = dataset.NewFileLoader(writeFile(t, "employers.xlsx", "")).Load(ctx)
	require.ErrorIs(t, err, dataset.ErrUnsupportedFormat)

	_, err = dataset.NewFileLoader(writeFile(t, "broken.json", "{")).Load(ctx)
	require.Error(t, err)

	_, err = dataset.NewFileLoader("/nonexistent/employers.json").Load(ctx)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "open dataset: ")
}

func TestDecode_EmptyDocuments(t *testing.T) {
	t.Parallel()

	employers, err := dataset.Decode(strings.NewReader("[]"), dataset.FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, employers)
	assert.Empty(t, employers)

	employers, err = dataset.Decode(strings.NewReader(""), dataset.FormatYAML)
	require.NoError(t, err)
	assert.NotNil(t, employers)
}
