package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cticrawl/internal/domain"
	"cticrawl/internal/fetcher"
)

func TestFetchHTMLSuccess(t *testing.T) {
	const page = "<html><body>hello</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	f := fetcher.New(time.Second, zap.NewNop())
	res := f.Fetch(context.Background(), srv.URL)

	require.True(t, res.OK())
	assert.Equal(t, page, res.Body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestFetchFollowsRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("moved here"))
	}))
	defer srv.Close()

	f := fetcher.New(time.Second, zap.NewNop())
	res := f.Fetch(context.Background(), srv.URL+"/old")

	require.True(t, res.OK())
	assert.Equal(t, "moved here", res.Body)
}

func TestFetchNonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	f := fetcher.New(time.Second, zap.NewNop())
	res := f.Fetch(context.Background(), srv.URL)

	assert.False(t, res.OK())
	assert.Equal(t, domain.FailNotHTML, res.Reason)
	assert.Empty(t, res.Body)
}

func TestFetchNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	f := fetcher.New(time.Second, zap.NewNop())
	res := f.Fetch(context.Background(), srv.URL)

	assert.False(t, res.OK())
	assert.Equal(t, domain.FailHTTPStatus, res.Reason)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer srv.Close()

	f := fetcher.New(50*time.Millisecond, zap.NewNop())
	res := f.Fetch(context.Background(), srv.URL)

	assert.False(t, res.OK())
	assert.Equal(t, domain.FailTimeout, res.Reason)
	assert.Error(t, res.Err)
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	f := fetcher.New(time.Second, zap.NewNop())
	res := f.Fetch(context.Background(), addr)

	assert.False(t, res.OK())
	assert.Equal(t, domain.FailConnection, res.Reason)
	assert.Error(t, res.Err)
}

func TestFetchInvalidURL(t *testing.T) {
	f := fetcher.New(time.Second, zap.NewNop())
	res := f.Fetch(context.Background(), "://bad")

	assert.False(t, res.OK())
	assert.Equal(t, domain.FailConnection, res.Reason)
}
