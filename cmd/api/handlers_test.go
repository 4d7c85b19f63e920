package main

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesPage(t *testing.T) {
	app := newTestApplication(t, nil)
	rr := do(t, app.router(), http.MethodGet, "/favorites", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get("ETag"))

	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)

	assert.Equal(t, "My favorites", strings.TrimSpace(doc.Find("h1").Text()))
	require.Equal(t, 6, doc.Find("article.card").Length())

	titanic := doc.Find(`article.card[data-id="1"]`)
	assert.Equal(t, "Titanic", strings.TrimSpace(titanic.Find(".card-title").Text()))
	assert.True(t, titanic.Find(".favorite-marker").HasClass("is-favorite"))

	unmarked := doc.Find(`article.card[data-id="2"]`)
	assert.Equal(t, "My Movie", strings.TrimSpace(unmarked.Find(".card-title").Text()))
	assert.False(t, unmarked.Find(".favorite-marker").HasClass("is-favorite"))

	assert.Equal(t, 2, doc.Find(`article.card[data-favorite="true"]`).Length())
}

func TestFavoritesPage_NotModified(t *testing.T) {
	app := newTestApplication(t, nil)
	h := app.router()

	first := do(t, h, http.MethodGet, "/favorites", nil)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := do(t, h, http.MethodGet, "/favorites", http.Header{"If-None-Match": {etag}})
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Zero(t, second.Body.Len())
	assert.Equal(t, etag, second.Header().Get("ETag"))

	stale := do(t, h, http.MethodGet, "/favorites", http.Header{"If-None-Match": {`"stale"`}})
	assert.Equal(t, http.StatusOK, stale.Code)
}

func TestFavoritesPage_Gzip(t *testing.T) {
	app := newTestApplication(t, nil)
	rr := do(t, app.router(), http.MethodGet, "/favorites", http.Header{"Accept-Encoding": {"gzip"}})

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Titanic")
}

func TestRootRedirect(t *testing.T) {
	app := newTestApplication(t, nil)
	rr := do(t, app.router(), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/favorites", rr.Header().Get("Location"))
}

func TestHealthcheck(t *testing.T) {
	app := newTestApplication(t, nil)
	rr := do(t, app.router(), http.MethodGet, "/v1/healthcheck", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body struct {
		Status     string            `json:"status"`
		SystemInfo map[string]string `json:"system_info"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "available", body.Status)
	assert.Equal(t, "development", body.SystemInfo["environment"])
	assert.Equal(t, version, body.SystemInfo["version"])
}

func TestListMovies(t *testing.T) {
	app := newTestApplication(t, nil)
	rr := do(t, app.router(), http.MethodGet, "/v1/movies", nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Movies   []map[string]any `json:"movies"`
		Metadata struct {
			TotalRecords int `json:"total_records"`
		} `json:"metadata"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))

	require.Len(t, body.Movies, 6)
	assert.Equal(t, 6, body.Metadata.TotalRecords)

	assert.Equal(t, "Titanic", body.Movies[0]["title"])
	assert.Equal(t, true, body.Movies[0]["is_favorite"])
	assert.NotContains(t, body.Movies[1], "is_favorite", "non-favorites omit the flag")
	for i, m := range body.Movies {
		assert.Equal(t, float64(i+1), m["id"])
		assert.NotEmpty(t, m["img"])
	}
}

func TestShowMovie(t *testing.T) {
	app := newTestApplication(t, nil)
	h := app.router()

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantBody string
	}{
		{name: "found", target: "/v1/movies/3", wantCode: http.StatusOK, wantBody: `"title": "My Movie"`},
		{name: "unknown id", target: "/v1/movies/99", wantCode: http.StatusNotFound, wantBody: "could not be found"},
		{name: "zero id", target: "/v1/movies/0", wantCode: http.StatusNotFound},
		{name: "negative id", target: "/v1/movies/-1", wantCode: http.StatusNotFound},
		{name: "non-numeric id", target: "/v1/movies/abc", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rr.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRouting_Errors(t *testing.T) {
	app := newTestApplication(t, nil)
	h := app.router()

	rr := do(t, h, http.MethodGet, "/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error": "the requested resource could not be found"}`, rr.Body.String())

	// The list is read-only.
	for _, method := range []string{http.MethodPost, http.MethodPatch, http.MethodDelete} {
		rr := do(t, h, method, "/v1/movies/1", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, method)
		assert.Contains(t, rr.Body.String(), "the "+method+" method is not supported")
	}
}
