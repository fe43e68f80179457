package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.JSONEq(t, `{"ok":true}`, string(result.Body))
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "application/json", result.ContentType)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_Non2xxStatuses(t *testing.T) {
	// A 301 without Location is returned as-is by the client.
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusMovedPermanently} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		result, err := URL(context.Background(), server.URL, nil)
		require.Error(t, err)
		require.NotNil(t, result)
		assert.Equal(t, status, result.StatusCode)

		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, status, fetchErr.StatusCode)
		server.Close()
	}
}

func TestURL_NoContentIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Body)
}

func TestURL_TransportTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	_, err := URL(context.Background(), server.URL, &Options{Timeout: 50 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request failed")
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{base: "https://example.com", want: "https://example.com/cv.json"},
		{base: "https://example.com/", want: "https://example.com/cv.json"},
		{base: "https://example.com/me", want: "https://example.com/me/cv.json"},
		{base: "https://example.com/me/", want: "https://example.com/me/cv.json"},
	}
	for _, tt := range tests {
		got, err := ResolveURL(tt.base, "cv.json")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "base %q", tt.base)
	}
}

func TestSource_Fetch(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/site/cv.json", r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	src, err := NewSource(server.URL+"/site", "cv.json", nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/site/cv.json", src.String())

	body, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))
	assert.Equal(t, 1, hits)
}
