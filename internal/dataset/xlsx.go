package dataset

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	infraerrors "github.com/Odelf18/career-maps/infrastructure/errors"
	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet read when none is configured.
const DefaultSheet = "Employers"

// Workbook column headers, in template order.
const (
	ColID          = "id"
	ColName        = "name"
	ColIndustry    = "industry"
	ColAddress     = "address"
	ColLat         = "lat"
	ColLng         = "lng"
	ColCareerURL   = "career_url"
	ColJobPostings = "job_postings"
)

// Columns lists the workbook headers in template order.
var Columns = []string{ColID, ColName, ColIndustry, ColAddress, ColLat, ColLng, ColCareerURL, ColJobPostings}

const (
	postingSep = ";"
	tagSep     = "|"
)

// XLSXLoader reads employers from one worksheet. The first row holds the
// headers; columns may appear in any order.
type XLSXLoader struct {
	Path  string
	Sheet string
}

// NewXLSXLoader returns a loader for sheet in the workbook at path.
func NewXLSXLoader(path, sheet string) *XLSXLoader {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &XLSXLoader{Path: path, Sheet: sheet}
}

// Source returns the workbook path and sheet.
func (l *XLSXLoader) Source() string { return "xlsx:" + l.Path + "#" + l.Sheet }

// Load opens the workbook and parses the sheet.
func (l *XLSXLoader) Load(_ context.Context) ([]domain.Employer, error) {
	f, err := excelize.OpenFile(l.Path)
	if err != nil {
		return nil, infraerrors.WrapWithContextf(err, "open workbook %s", l.Path)
	}
	defer func() { _ = f.Close() }()

	return ParseWorkbook(f, l.Sheet)
}

// ParseWorkbook reads employers from sheet. Blank rows are skipped. Lat or
// lng cells that are empty or not numbers become NaN, which Validate
// reports and the map skips.
func ParseWorkbook(f *excelize.File, sheet string) ([]domain.Employer, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []domain.Employer{}, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{ColID, ColName} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("sheet %q: missing %q column", sheet, required)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	employers := make([]domain.Employer, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		employers = append(employers, domain.Employer{
			ID:          cell(row, ColID),
			Name:        cell(row, ColName),
			Industry:    cell(row, ColIndustry),
			Address:     cell(row, ColAddress),
			Lat:         parseCoordinate(cell(row, ColLat)),
			Lng:         parseCoordinate(cell(row, ColLng)),
			CareerURL:   cell(row, ColCareerURL),
			JobPostings: ParsePostings(cell(row, ColJobPostings)),
		})
	}
	return employers, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseCoordinate(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParsePostings reads "Title [tag1|tag2]; Other Title [tag]". A posting
// without brackets has no tags. Order is kept and empty entries dropped.
func ParsePostings(s string) []domain.JobPosting {
	postings := []domain.JobPosting{}
	for _, part := range strings.Split(s, postingSep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		title, tags := part, []string{}
		if open := strings.LastIndex(part, "["); open >= 0 && strings.HasSuffix(part, "]") {
			title = strings.TrimSpace(part[:open])
			for _, tag := range strings.Split(part[open+1:len(part)-1], tagSep) {
				if tag = strings.TrimSpace(tag); tag != "" {
					tags = append(tags, tag)
				}
			}
		}
		postings = append(postings, domain.JobPosting{Title: title, Tags: tags})
	}
	return postings
}

// FormatPostings is the inverse of ParsePostings.
func FormatPostings(postings []domain.JobPosting) string {
	parts := make([]string, 0, len(postings))
	for _, p := range postings {
		if len(p.Tags) == 0 {
			parts = append(parts, p.Title)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s [%s]", p.Title, strings.Join(p.Tags, tagSep)))
	}
	return strings.Join(parts, postingSep+" ")
}

// NewWorkbook writes employers to a new workbook with a single sheet in
// template column order. Coordinates that cannot be mapped are left blank.
func NewWorkbook(employers []domain.Employer, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range Columns {
		if err := setCell(f, sheet, i+1, 1, h); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	for r := range employers {
		e := &employers[r]
		values := []any{e.ID, e.Name, e.Industry, e.Address, "", "", e.CareerURL, FormatPostings(e.JobPostings)}
		if e.HasValidCoordinates() {
			values[4], values[5] = e.Lat, e.Lng
		}
		for c, v := range values {
			if err := setCell(f, sheet, c+1, r+2, v); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
	}
	return f, nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err = f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}
