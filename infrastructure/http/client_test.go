package http_test

import (
	"net/http"
	"testing"
	"time"

	infrahttp "github.com/Odelf18/career-maps/infrastructure/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	client := infrahttp.NewClient(nil)
	assert.Equal(t, infrahttp.DefaultTimeout, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, infrahttp.DefaultMaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
	assert.Equal(t, infrahttp.DefaultResponseHeaderTimeout, transport.ResponseHeaderTimeout)
}

func TestNewClient_Overrides(t *testing.T) {
	t.Parallel()

	client := infrahttp.NewClient(&infrahttp.ClientConfig{Timeout: 3 * time.Second, MaxIdleConns: 5})
	assert.Equal(t, 3*time.Second, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 5, transport.MaxIdleConns)
	assert.Equal(t, infrahttp.DefaultIdleConnTimeout, transport.IdleConnTimeout)
}
