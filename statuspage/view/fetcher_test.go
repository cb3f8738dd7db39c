package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smell-of-curry/pokebedrock-status/statuspage/proxy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/server-status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"online":true,"players":{"online":3,"max":20},"version":"1.20.1","motd":"Welcome"}`))
	}))
	defer srv.Close()

	st, err := NewHTTPFetcher(srv.URL+"/api/server-status", time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, onlineStatus, st)
}

func TestHTTPFetcherDecodesErrorResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"online":false,"error":"Server configuration missing"}`))
	}))
	defer srv.Close()

	st, err := NewHTTPFetcher(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, proxy.OfflineStatus(proxy.MessageConfigMissing), st)
}

func TestHTTPFetcherTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	url := srv.URL

	_, err := NewHTTPFetcher(url, time.Second).Fetch(context.Background())
	assert.Error(t, err, "non-JSON bodies are a transport failure")

	srv.Close()
	_, err = NewHTTPFetcher(url, time.Second).Fetch(context.Background())
	assert.Error(t, err)
}

func TestModelWithHTTPFetcherUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	m := NewModel(discardLogger(), NewHTTPFetcher(url, time.Second))
	s := m.Poll(context.Background())
	require.NotNil(t, s.Status)
	assert.Equal(t, proxy.OfflineStatus(proxy.MessageFetchFailed), *s.Status)
}
