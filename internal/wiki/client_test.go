package wiki

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spawnscraper/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetch(t *testing.T) {
	client := NewClient(config.Config{UserAgent: "spawnscraper-test"}, nil)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, "/w/Bronze_axe", r.URL.Path)
			assert.Equal(t, "raw", r.URL.Query().Get("action"))
			assert.Equal(t, "spawnscraper-test", r.Header.Get("User-Agent"))
			return respond(http.StatusOK, "{{ItemSpawnLine|3229,3213}}"), nil
		}),
	}

	body, err := client.Fetch(context.Background(), "https://wiki.test/w/Bronze_axe?action=raw")
	require.NoError(t, err)
	assert.Equal(t, "{{ItemSpawnLine|3229,3213}}", body)
}

func TestFetchDoesNotRetry(t *testing.T) {
	attempts := 0
	client := NewClient(config.Config{}, nil)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			attempts++
			return respond(http.StatusServiceUnavailable, `busy`), nil
		}),
	}

	_, err := client.Fetch(context.Background(), "https://wiki.test/w/Bronze_axe?action=raw")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Equal(t, 1, attempts)
}

func TestFetchTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	client := NewClient(config.Config{}, nil)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, boom
		}),
	}

	_, err := client.Fetch(context.Background(), "https://wiki.test/w/Bronze_axe?action=raw")
	require.ErrorIs(t, err, boom)
}

func TestFetchLimiterHonoursContext(t *testing.T) {
	client := NewClient(config.Config{FetchRatePerSec: 0.001}, nil)
	client.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return respond(http.StatusOK, ""), nil
		}),
	}
	ctx, cancel := context.WithCancel(context.Background())

	_, err := client.Fetch(ctx, "https://wiki.test/w/A")
	require.NoError(t, err)

	cancel()
	_, err = client.Fetch(ctx, "https://wiki.test/w/B")
	require.Error(t, err)
}
