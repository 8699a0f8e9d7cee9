package dataset

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/Odelf18/career-maps/internal/domain"
)

// Issue is one problem found in a dataset record. Index is the record's
// position in the source.
type Issue struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (i Issue) String() string {
	if i.ID != "" {
		return fmt.Sprintf("record %d (%s): %s: %s", i.Index, i.ID, i.Field, i.Message)
	}
	return fmt.Sprintf("record %d: %s: %s", i.Index, i.Field, i.Message)
}

// ValidationError collects the issues that make a dataset unusable.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "invalid dataset: " + e.Issues[0].String()
	}
	return fmt.Sprintf("invalid dataset: %d issues, first: %s", len(e.Issues), e.Issues[0].String())
}

// Unwrap exposes the sentinel behind each issue to errors.Is.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Err != nil {
			errs = append(errs, issue.Err)
		}
	}
	return errs
}

// Validate checks employers. Records without an id or name, and repeated
// ids, are errors. Coordinates that cannot be mapped and missing or
// relative career URLs are returned as warnings; those employers stay in
// the dataset and are only left off the map or link.
func Validate(employers []domain.Employer) (warnings []Issue, err error) {
	var errs []Issue
	seen := make(map[string]int, len(employers))

	for i := range employers {
		e := &employers[i]
		id := strings.TrimSpace(e.ID)

		switch prev, dup := seen[id]; {
		case id == "":
			errs = append(errs, Issue{Index: i, Field: "id", Message: "is required", Err: ErrMissingID})
		case dup:
			errs = append(errs, Issue{
				Index: i, ID: e.ID, Field: "id",
				Message: fmt.Sprintf("duplicates record %d", prev),
				Err:     ErrDuplicateID,
			})
		default:
			seen[id] = i
		}

		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, Issue{Index: i, ID: e.ID, Field: "name", Message: "is required", Err: ErrMissingName})
		}

		if !e.HasValidCoordinates() {
			warnings = append(warnings, Issue{Index: i, ID: e.ID, Field: "lat/lng", Message: coordinateMessage(e)})
		}

		if msg := checkCareerURL(e.CareerURL); msg != "" {
			warnings = append(warnings, Issue{Index: i, ID: e.ID, Field: "careerUrl", Message: msg})
		}
	}

	if len(errs) > 0 {
		return warnings, &ValidationError{Issues: errs}
	}
	return warnings, nil
}

func coordinateMessage(e *domain.Employer) string {
	if math.IsNaN(e.Lat) || math.IsNaN(e.Lng) {
		return "missing, not shown on map"
	}
	return fmt.Sprintf("out of range (%v, %v), not shown on map", e.Lat, e.Lng)
}

func checkCareerURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "is empty"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "is not a valid URL"
	}
	if !u.IsAbs() || u.Host == "" {
		return "is not an absolute URL"
	}
	return ""
}

// IsValidationError reports whether err carries dataset validation issues.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
