package dataset

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/Odelf18/career-maps/infrastructure/circuitbreaker"
	infraerrors "github.com/Odelf18/career-maps/infrastructure/errors"
	"github.com/Odelf18/career-maps/infrastructure/retry"
	"github.com/Odelf18/career-maps/internal/domain"
)

// HTTPLoader fetches a JSON (or YAML) employer array from a URL. Transient
// failures are retried with backoff; repeated failed loads open the
// breaker so a reload loop does not hammer a dead upstream.
type HTTPLoader struct {
	URL     string
	Client  *http.Client
	Retry   retry.Config
	Breaker *circuitbreaker.Breaker
}

// NewHTTPLoader returns a loader for url using client.
func NewHTTPLoader(url string, client *http.Client) *HTTPLoader {
	return &HTTPLoader{
		URL:     url,
		Client:  client,
		Retry:   retry.DefaultConfig(),
		Breaker: circuitbreaker.New(circuitbreaker.DefaultConfig()),
	}
}

// Source returns the URL.
func (l *HTTPLoader) Source() string { return "http:" + l.URL }

// Load fetches and decodes the dataset.
func (l *HTTPLoader) Load(ctx context.Context) ([]domain.Employer, error) {
	var employers []domain.Employer

	fetch := func(ctx context.Context) error {
		return retry.Retry(ctx, l.Retry, func() error {
			var err error
			employers, err = l.fetch(ctx)
			return err
		})
	}

	var err error
	if l.Breaker != nil {
		err = l.Breaker.Execute(ctx, fetch)
	} else {
		err = fetch(ctx)
	}
	if err != nil {
		return nil, infraerrors.WrapWithContextf(err, "fetch dataset %s", l.URL)
	}
	return employers, nil
}

func (l *HTTPLoader) fetch(ctx context.Context) ([]domain.Employer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, http.NoBody)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err = infraerrors.ParseHTTPError(resp); err != nil {
		var httpErr *infraerrors.HTTPError
		if errors.As(err, &httpErr) && !httpErr.Temporary() {
			return nil, retry.Permanent(err)
		}
		return nil, err
	}

	employers, err := Decode(resp.Body, responseFormat(resp))
	if err != nil {
		return nil, retry.Permanent(err)
	}
	return employers, nil
}

func responseFormat(resp *http.Response) string {
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err == nil && strings.Contains(mediaType, "yaml") {
		return FormatYAML
	}
	if f, err := FormatFromPath(resp.Request.URL.Path); err == nil && f == FormatYAML {
		return FormatYAML
	}
	return FormatJSON
}
