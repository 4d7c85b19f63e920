package main

import (
	"bytes"
	"encoding/hex"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/leebrouse/favorites/internal/view"
)

func (app *application) favoritesPageHandler(w http.ResponseWriter, r *http.Request) {
	page := view.FavoritesPage{
		Cards: view.CardsFromMovies(app.models.Movies.GetAll()),
	}

	var buf bytes.Buffer
	if err := app.views.RenderFavorites(&buf, page); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	etag := pageETag(buf.Bytes())
	w.Header().Set("ETag", etag)

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (app *application) rootRedirectHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/favorites", http.StatusSeeOther)
}

// pageETag returns a strong entity tag over the rendered page.
func pageETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// etagMatches implements the weak comparison If-None-Match requires.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	if strings.TrimSpace(header) == "*" {
		return true
	}

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag {
			return true
		}
	}

	return false
}
