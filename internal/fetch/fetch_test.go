package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sosillc/bidgate/internal/common"
	"github.com/sosillc/bidgate/internal/model"
)

func writeEndpoints(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "endpoints.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadEndpoints(t *testing.T) {
	path := writeEndpoints(t, `
# aviation searches
search-aviation-1
search-aviation-2   # trailing comment

search-dla-parts
`)
	ids, err := ReadEndpoints(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"search-aviation-1", "search-aviation-2", "search-dla-parts"}, ids)
}

func TestReadEndpointsMissingFile(t *testing.T) {
	_, err := ReadEndpoints(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMissingEndpoints))
}

func TestReadEndpointsEmptyFile(t *testing.T) {
	path := writeEndpoints(t, "# only comments\n\n")
	_, err := ReadEndpoints(path)
	assert.ErrorIs(t, err, common.ErrMissingEndpoints)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("https://example.invalid", "")
	assert.ErrorIs(t, err, common.ErrMissingCredentials)
}

func TestSearchFollowsPagination(t *testing.T) {
	var pagesRequested []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "search-1", q.Get("search_id"))

		page := q.Get("page_number")
		pagesRequested = append(pagesRequested, page)

		results := []map[string]any{
			{"source_id": "OPP-" + page + "A", "title": "parts A"},
			{"source_id": "OPP-" + page + "B", "title": "parts B"},
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": results,
			"meta":    map[string]any{"pagination": map[string]any{"pages": 3}},
		})
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-key")
	require.NoError(t, err)

	opps, err := client.Search(context.Background(), "search-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, pagesRequested)
	require.Len(t, opps, 6)
	assert.Equal(t, "OPP-1A", opps[0].ID())
}

func TestSearchSkipsMalformedOpportunities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results": [{"source_id": "GOOD", "title": "ok"}, {"source_id": 5, "title": {"bad": true}}], "meta": {"pagination": {"pages": 1}}}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-key")
	require.NoError(t, err)

	opps, err := client.Search(context.Background(), "search-1")
	require.NoError(t, err)
	require.Len(t, opps, 1)
	assert.Equal(t, "GOOD", opps[0].ID())
}

func TestFetchDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"file_name": "sow.pdf", "text_extract": "statement of work body"},
				{"file_name": "specs.pdf", "text": "fallback text field"},
				{"file_name": "empty.pdf"},
			},
		})
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-key")
	require.NoError(t, err)

	opps := []*model.Opportunity{
		{SourceID: "A", DocumentPath: server.URL + "/docs/a"},
		{SourceID: "B"}, // no manifest, untouched
	}
	client.FetchDocuments(context.Background(), opps, 2)

	assert.Contains(t, opps[0].Text, "statement of work body")
	assert.Contains(t, opps[0].Text, "fallback text field")
	assert.Contains(t, opps[0].Text, "sow.pdf")
	assert.Empty(t, opps[1].Text)
}

func TestFetchDocumentsDegradesOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "test-key")
	require.NoError(t, err)

	opps := []*model.Opportunity{{SourceID: "A", DocumentPath: server.URL + "/docs/a"}}
	client.FetchDocuments(context.Background(), opps, 2)

	// Document failure is silent; the opportunity is scored on metadata only.
	assert.Empty(t, opps[0].Text)
}
