package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tls "github.com/refraction-networking/utls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, opts Options) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(opts)
	require.NoError(t, err)
	return c
}

func TestGet_ReturnsHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sift-test/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Custom", "yes")
		_, _ = w.Write([]byte("<html><title>ok</title></html>"))
	}))
	defer srv.Close()

	c := newClient(t, Options{UserAgent: "sift-test/1.0", TLSFingerprint: true})
	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "yes", resp.Header.Get("X-Custom"))
	assert.Equal(t, "<html><title>ok</title></html>", string(resp.Body))
	assert.Equal(t, srv.URL, resp.FinalURL)
}

func TestGet_ErrorStatusStillReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html><h1>Not here</h1></html>"))
	}))
	defer srv.Close()

	resp, err := newClient(t, Options{}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "Not here")
}

func TestGet_EmptyBodyIsNonNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := newClient(t, Options{}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotNil(t, resp.Body)
	assert.Empty(t, resp.Body)
	assert.NotNil(t, resp.Header)
}

func TestGet_MaxBodyBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	resp, err := newClient(t, Options{MaxBodyBytes: 4}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(resp.Body))
}

func TestGet_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := newClient(t, Options{}).Get(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, "moved", string(resp.Body))
	assert.Equal(t, srv.URL+"/new", resp.FinalURL)
}

func TestGet_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := newClient(t, Options{}).Get(context.Background(), addr)
	require.Error(t, err)
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newClient(t, Options{Timeout: 50 * time.Millisecond}).Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestGet_UnsupportedScheme(t *testing.T) {
	_, err := newClient(t, Options{}).Get(context.Background(), "ftp://example.com/file")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedScheme))
}

func TestNewHTTPClient_RejectsBadProxy(t *testing.T) {
	_, err := NewHTTPClient(Options{Proxy: "socks5://127.0.0.1:1080"})
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestChromeSpecForcesHTTP1(t *testing.T) {
	spec, err := chromeH1Spec()
	require.NoError(t, err)

	found := false
	for _, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			found = true
			assert.Equal(t, []string{"http/1.1"}, alpn.AlpnProtocols)
		}
	}
	assert.True(t, found, "chrome spec should carry an ALPN extension")
}
