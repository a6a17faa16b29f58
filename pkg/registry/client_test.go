package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crateup/crateup/pkg/errors"
)

const crossterm = `{
	"crate": {
		"repository": "\thttps://github.com/crossterm-rs/crossterm ",
		"description": " A\ncrossplatform\nterminal library\n ",
		"max_stable_version": "0.28.1"
	},
	"versions": [
		{"num": "0.28.1", "updated_at": "2024-08-02T10:00:00Z"},
		{"num": "0.28.0", "updated_at": " 2024-07-01T09:00:00Z\n"},
		{}
	]
}`

// TestLookup tests a successful registry lookup.
//
// It verifies:
//   - The request hits the crates API path with the required User-Agent
//   - String fields are trimmed and newlines folded to spaces
//   - Publish dates come from the matching version entries
func TestLookup(t *testing.T) {
	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(crossterm))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	meta, err := client.Lookup(context.Background(), "crossterm", "0.28.0")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/crates/crossterm", gotPath)
	assert.Equal(t, "crateup (https://github.com/crateup/crateup)", gotAgent)

	assert.Equal(t, "0.28.1", meta.LatestVersion)
	assert.Equal(t, "https://github.com/crossterm-rs/crossterm", meta.Repository)
	assert.Equal(t, "A crossplatform terminal library", meta.Description)
	assert.Equal(t, "2024-08-02T10:00:00Z", meta.LatestDate)
	assert.Equal(t, "2024-07-01T09:00:00Z", meta.CurrentDate)
}

// TestLookupPinnedVersion tests that a leading pin operator on the installed
// version is ignored when resolving its publish date.
func TestLookupPinnedVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(crossterm))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	meta, err := client.Lookup(context.Background(), "crossterm", "=0.28.0")
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01T09:00:00Z", meta.CurrentDate)
}

// TestLookupEmptyResponse tests that an empty or bare 200 response degrades
// to the installed version instead of failing.
func TestLookupEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"empty document", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, time.Second)
			meta, err := client.Lookup(context.Background(), "ghost", "0.1.0")
			require.NoError(t, err)

			assert.Equal(t, "0.1.0", meta.LatestVersion)
			assert.Empty(t, meta.Repository)
			assert.Empty(t, meta.Description)
			assert.Empty(t, meta.LatestDate)
			assert.Empty(t, meta.CurrentDate)
		})
	}
}

// TestLookupErrors tests the failure modes of Lookup.
//
// It verifies:
//   - Non-200 statuses return a RegistryError carrying the status
//   - Undecodable bodies return a RegistryError
//   - Transport failures return a RegistryError
//   - A cancelled context aborts the request
func TestLookupErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.Lookup(context.Background(), "semver", "1.0.22")
		require.Error(t, err)
		assert.True(t, errors.IsRegistryError(err))
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.Lookup(context.Background(), "semver", "1.0.22")
		require.Error(t, err)
		assert.True(t, errors.IsRegistryError(err))
	})

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.Lookup(context.Background(), "semver", "1.0.22")
		require.Error(t, err)
		assert.True(t, errors.IsRegistryError(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(crossterm))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := NewClient(server.URL, time.Second)
		_, err := client.Lookup(ctx, "crossterm", "0.28.0")
		assert.Error(t, err)
	})
}

// TestLookupTimeout tests the per-request timeout.
func TestLookupTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(server.URL, 30*time.Millisecond)
	_, err := client.Lookup(context.Background(), "slowpoke", "0.1.0")
	require.Error(t, err)
	assert.True(t, errors.IsRegistryError(err))
}

// TestNewClient tests endpoint normalization.
func TestNewClient(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("", 0).baseURL)
	assert.Equal(t, "https://registry.example.com", NewClient("https://registry.example.com/", 0).baseURL)
}

// TestCollapse tests string normalization for display.
func TestCollapse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"  plain  ", "plain"},
		{" A\ndescription\n ", "A description"},
		{"\thttps://example.com ", "https://example.com"},
		{"three\nline\nvalue", "three line value"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, collapse(tt.input), "input: %q", tt.input)
	}
}
