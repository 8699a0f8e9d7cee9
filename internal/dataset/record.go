package dataset

import (
	"math"

	"github.com/Odelf18/career-maps/internal/domain"
)

// record is the decoded form of an employer. Lat and lng stay nil when the
// field is absent or null so they can be told apart from (0, 0).
type record struct {
	ID          string              `json:"id"          yaml:"id"`
	Name        string              `json:"name"        yaml:"name"`
	Industry    string              `json:"industry"    yaml:"industry"`
	Address     string              `json:"address"     yaml:"address"`
	Lat         *float64            `json:"lat"         yaml:"lat"`
	Lng         *float64            `json:"lng"         yaml:"lng"`
	CareerURL   string              `json:"careerUrl"   yaml:"careerUrl"`
	JobPostings []domain.JobPosting `json:"jobPostings" yaml:"jobPostings"`
}

func (r *record) employer() domain.Employer {
	return domain.Employer{
		ID:          r.ID,
		Name:        r.Name,
		Industry:    r.Industry,
		Address:     r.Address,
		Lat:         coordinate(r.Lat),
		Lng:         coordinate(r.Lng),
		CareerURL:   r.CareerURL,
		JobPostings: r.JobPostings,
	}
}

// coordinate maps a missing value to NaN, which HasValidCoordinates rejects.
func coordinate(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func toEmployers(records []record) []domain.Employer {
	employers := make([]domain.Employer, len(records))
	for i := range records {
		employers[i] = records[i].employer()
	}
	return employers
}
