package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a fake Dataverse server. The
// returned options use the test server's own HTTP client so its
// certificate is trusted.
func newTestClient(t *testing.T, handler http.Handler, opts Options) (*Client, *httptest.Server) {
	t.Helper()

	ts := httptest.NewTLSServer(handler)
	t.Cleanup(ts.Close)

	opts.HTTPClient = ts.Client()

	c, err := New(Installation{Hostname: ts.URL}, opts)
	require.NoError(t, err)

	return c, ts
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}
}

func TestNewValidatesConfiguration(t *testing.T) {
	t.Run("hostname required", func(t *testing.T) {
		_, err := New(Installation{}, Options{})
		assert.Error(t, err)
	})

	t.Run("scheme stripped from hostname", func(t *testing.T) {
		c, err := New(Installation{Hostname: "https://demo.dataverse.org/"}, Options{})
		require.NoError(t, err)
		assert.Equal(t, "demo.dataverse.org", c.Installation().Hostname)
	})

	t.Run("unknown error mode rejected", func(t *testing.T) {
		_, err := New(Installation{Hostname: "demo.dataverse.org"}, Options{OnError: "ignore"})
		assert.Error(t, err)
	})

	t.Run("unknown response mode rejected", func(t *testing.T) {
		_, err := New(Installation{Hostname: "demo.dataverse.org"}, Options{ResponseMode: "xml"})
		assert.Error(t, err)
	})
}

func TestSearchPassesJSONThroughUnmodified(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/search",
		jsonHandler(`{"status":"OK","data":{"total_count":2,"items":[{"name":"A"},{"name":"B"}]}}`))

	c, _ := newTestClient(t, router, Options{})

	res, err := c.Search(context.Background(), SearchQuery{Query: "climate"})
	require.NoError(t, err)
	require.NotNil(t, res)

	want := map[string]interface{}{
		"status": "OK",
		"data": map[string]interface{}{
			"total_count": float64(2),
			"items": []interface{}{
				map[string]interface{}{"name": "A"},
				map[string]interface{}{"name": "B"},
			},
		},
	}
	assert.Equal(t, want, res.JSON)
}

func TestSearchNotFoundRaises(t *testing.T) {
	c, ts := newTestClient(t, http.NotFoundHandler(), Options{})

	res, err := c.Search(context.Background(), SearchQuery{})
	assert.Nil(t, res)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.True(t, strings.HasPrefix(apiErr.URL, ts.URL+"/api/search"),
		"error should carry the request URL, got %s", apiErr.URL)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSearchNotFoundSuppressed(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler(), Options{OnError: ErrorModeSuppress})

	res, err := c.Search(context.Background(), SearchQuery{})
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestValidationErrorsNeverSuppressed(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler(), Options{OnError: ErrorModeSuppress})

	_, err := c.Search(context.Background(), SearchQuery{PerPage: 2000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "per_page")
}

func TestSearchSimpleMatchesEquivalentSearch(t *testing.T) {
	var seen []url.Values
	router := mux.NewRouter()
	router.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query())
		io.WriteString(w, `{"status":"OK","data":{}}`)
	})

	c, _ := newTestClient(t, router, Options{})

	_, err := c.SearchSimple(context.Background(), "climate", 10, 5)
	require.NoError(t, err)

	_, err = c.Search(context.Background(), SearchQuery{Query: "climate", Start: 10, PerPage: 5})
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
}

func TestAPIKeySentAsHeader(t *testing.T) {
	var gotKey string
	router := mux.NewRouter()
	router.HandleFunc("/api/info/version", func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Dataverse-key")
		io.WriteString(w, `{"status":"OK","data":{"version":"6.1"}}`)
	})

	c, _ := newTestClient(t, router, Options{APIKey: "secret-key"})

	_, err := c.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotKey)
}

func TestResponseModes(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/info/server", jsonHandler(`{"status":"OK","data":{"message":"dv1"}}`))

	t.Run("text mode returns the body", func(t *testing.T) {
		c, _ := newTestClient(t, router, Options{ResponseMode: ResponseModeText})

		res, err := c.ServerName(context.Background())
		require.NoError(t, err)
		assert.Equal(t, `{"status":"OK","data":{"message":"dv1"}}`, res.Text)
		assert.Nil(t, res.JSON)
	})

	t.Run("response mode leaves the body unread", func(t *testing.T) {
		c, _ := newTestClient(t, router, Options{ResponseMode: ResponseModeResponse})

		res, err := c.ServerName(context.Background())
		require.NoError(t, err)
		require.NotNil(t, res.Response)
		defer res.Response.Body.Close()

		body, err := io.ReadAll(res.Response.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"status":"OK","data":{"message":"dv1"}}`, string(body))
	})
}

func TestJSONDecodeFailureClassified(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	})

	c, _ := newTestClient(t, router, Options{})

	_, err := c.Search(context.Background(), SearchQuery{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, errors.Is(err, ErrDecodeFailed))
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
}

func TestErrorMessageFromEnvelope(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"status":"ERROR","message":"Invalid subtree identifier"}`)
	})

	c, _ := newTestClient(t, router, Options{})

	_, err := c.Search(context.Background(), SearchQuery{Subtree: "nope"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid subtree identifier", apiErr.Message)
	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.NotEmpty(t, apiErr.Body, "raw response should be attached")
}

func TestTransportFailure(t *testing.T) {
	ts := httptest.NewTLSServer(http.NotFoundHandler())
	httpClient := ts.Client()
	hostname := ts.URL
	ts.Close() // nothing listening anymore

	c, err := New(Installation{Hostname: hostname}, Options{HTTPClient: httpClient})
	require.NoError(t, err)

	_, err = c.ServerVersion(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, errors.Is(err, ErrConnectionFailed))
	assert.Zero(t, apiErr.StatusCode, "pre-response failures carry no status code")
}

func TestIsAtLeast(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/info/version",
		jsonHandler(`{"status":"OK","data":{"version":"6.1","build":"169-60ea1e6"}}`))

	c, _ := newTestClient(t, router, Options{})

	ok, err := c.IsAtLeast(context.Background(), "5.13")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsAtLeast(context.Background(), "6.2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMetadataBlockPath(t *testing.T) {
	var gotPath string
	router := mux.NewRouter()
	router.PathPrefix("/api/metadatablocks").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, `{"status":"OK","data":{"name":"citation"}}`)
	})

	c, _ := newTestClient(t, router, Options{})

	_, err := c.MetadataBlock(context.Background(), "citation")
	require.NoError(t, err)
	assert.Equal(t, "/api/metadatablocks/citation", gotPath)

	_, err = c.MetadataBlocks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/metadatablocks", gotPath)
}
