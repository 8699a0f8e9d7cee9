// Package domain defines the employer directory model and filter state.
package domain

import "math"

// Coordinate limits for WGS84 degrees.
const (
	maxLatitude  = 90.0
	maxLongitude = 180.0
)

// JobPosting is a single open role at an employer.
type JobPosting struct {
	Title string   `json:"title" yaml:"title"`
	Tags  []string `json:"tags"  yaml:"tags"`
}

// Employer is a company record with its location and open roles.
type Employer struct {
	ID          string       `json:"id"          yaml:"id"`
	Name        string       `json:"name"        yaml:"name"`
	Industry    string       `json:"industry"    yaml:"industry"`
	Address     string       `json:"address"     yaml:"address"`
	Lat         float64      `json:"lat"         yaml:"lat"`
	Lng         float64      `json:"lng"         yaml:"lng"`
	CareerURL   string       `json:"careerUrl"   yaml:"careerUrl"`
	JobPostings []JobPosting `json:"jobPostings" yaml:"jobPostings"`
}

// HasValidCoordinates reports whether the employer can be placed on the map.
// Employers without valid coordinates still appear in the list view.
func (e *Employer) HasValidCoordinates() bool {
	return ValidCoordinates(e.Lat, e.Lng)
}

// PositionCount returns the number of open job postings.
func (e *Employer) PositionCount() int {
	return len(e.JobPostings)
}

// ValidCoordinates reports whether lat/lng are finite and within range.
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return math.Abs(lat) <= maxLatitude && math.Abs(lng) <= maxLongitude
}
