package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/Odelf18/career-maps/internal/domain"
	"github.com/lib/pq"
)

const (
	selectEmployers = `
		SELECT id, name, industry, address, lat, lng, career_url
		FROM employers
		ORDER BY sort_order, id`

	selectJobPostings = `
		SELECT employer_id, title, tags
		FROM job_postings
		ORDER BY employer_id, sort_order`
)

// PostgresLoader reads employers and their postings from Postgres. Tags
// are stored as a text[] column. Postings for unknown employers are
// ignored.
type PostgresLoader struct {
	db *sql.DB
}

// NewPostgresLoader returns a loader over db.
func NewPostgresLoader(db *sql.DB) *PostgresLoader {
	return &PostgresLoader{db: db}
}

// OpenPostgres opens and pings a lib/pq connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Source returns "postgres".
func (l *PostgresLoader) Source() string { return "postgres" }

// Load queries both tables.
func (l *PostgresLoader) Load(ctx context.Context) ([]domain.Employer, error) {
	employers, err := l.loadEmployers(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(employers))
	for i := range employers {
		byID[employers[i].ID] = i
	}

	rows, err := l.db.QueryContext(ctx, selectJobPostings)
	if err != nil {
		return nil, fmt.Errorf("query job postings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			employerID string
			posting    domain.JobPosting
			tags       pq.StringArray
		)
		if err = rows.Scan(&employerID, &posting.Title, &tags); err != nil {
			return nil, fmt.Errorf("scan job posting: %w", err)
		}
		i, ok := byID[employerID]
		if !ok {
			continue
		}
		posting.Tags = []string(tags)
		if posting.Tags == nil {
			posting.Tags = []string{}
		}
		employers[i].JobPostings = append(employers[i].JobPostings, posting)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job postings: %w", err)
	}

	return employers, nil
}

func (l *PostgresLoader) loadEmployers(ctx context.Context) ([]domain.Employer, error) {
	rows, err := l.db.QueryContext(ctx, selectEmployers)
	if err != nil {
		return nil, fmt.Errorf("query employers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	employers := []domain.Employer{}
	for rows.Next() {
		var (
			e         domain.Employer
			industry  sql.NullString
			address   sql.NullString
			careerURL sql.NullString
			lat, lng  sql.NullFloat64
		)
		if err = rows.Scan(&e.ID, &e.Name, &industry, &address, &lat, &lng, &careerURL); err != nil {
			return nil, fmt.Errorf("scan employer: %w", err)
		}
		e.Lat = nullCoordinate(lat)
		e.Lng = nullCoordinate(lng)
		e.Industry = industry.String
		e.Address = address.String
		e.CareerURL = careerURL.String
		e.JobPostings = []domain.JobPosting{}
		employers = append(employers, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employers: %w", err)
	}
	return employers, nil
}

func nullCoordinate(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
