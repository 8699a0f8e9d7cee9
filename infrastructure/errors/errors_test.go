package errors_test

import (
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"testing"

	infraerrors "github.com/Odelf18/career-maps/infrastructure/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(code int, body string) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(body))}
}

func TestParseHTTPError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, infraerrors.ParseHTTPError(response(http.StatusOK, "[]")))

	err := infraerrors.ParseHTTPError(response(http.StatusNotFound, `{"error":"no dataset"}`))
	var httpErr *infraerrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "status 404: no dataset", err.Error())
	assert.False(t, httpErr.Temporary())

	err = infraerrors.ParseHTTPError(response(http.StatusBadGateway, "upstream down\n"))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "upstream down", httpErr.Message)
	assert.True(t, httpErr.Temporary())
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	base := stderrors.New("boom")
	assert.NoError(t, infraerrors.WrapWithContext(nil, "load"))

	err := infraerrors.WrapWithContextf(base, "load %s", "employers.json")
	require.ErrorIs(t, err, base)
	assert.Equal(t, "load employers.json: boom", err.Error())
}
