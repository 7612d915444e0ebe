package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docbase/docbase"
	docbasehttp "github.com/docbase/docbase/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("ETag", `"abc123"`)
		w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
		w.Write([]byte("<html>hello</html>"))
	}))
	defer srv.Close()

	f := docbasehttp.NewFetcher()
	res, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "<html>hello</html>", res.Body)
	assert.Equal(t, `"abc123"`, res.ETag)
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 GMT", res.LastModified)
	assert.Equal(t, int64(len("<html>hello</html>")), res.ContentLength)
	assert.Contains(t, res.ContentType, "text/html")
	assert.Equal(t, docbasehttp.DefaultUserAgent, gotUA)
}

func TestFetcher_Fetch_non200_is_not_an_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := docbasehttp.NewFetcher()
	res, err := f.Fetch(context.Background(), srv.URL+"/missing")

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestFetcher_Head_has_no_body(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("ETag", `"v9"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := docbasehttp.NewFetcher()
	res, err := f.Head(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Empty(t, res.Body)
	assert.Equal(t, `"v9"`, res.ETag)
}

func TestFetcher_transport_failure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	f := docbasehttp.NewFetcher(docbasehttp.WithTimeout(time.Second))
	_, err := f.Fetch(context.Background(), srv.URL)

	assert.Equal(t, docbase.EUNAVAILABLE, docbase.ErrorCode(err))
}

func TestFetcher_custom_user_agent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f := docbasehttp.NewFetcher(docbasehttp.WithUserAgent("custom/2.0"))
	_, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "custom/2.0", gotUA)
}
