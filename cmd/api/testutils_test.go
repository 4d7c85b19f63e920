package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leebrouse/favorites/internal/config"
	"github.com/leebrouse/favorites/internal/data"
	"github.com/leebrouse/favorites/internal/jsonlog"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{Port: 4000, Env: "development", LogLevel: "off"}
	cfg.Seed.Source = config.SeedBuiltin
	cfg.CORS.TrustedOrigins = []string{"http://localhost:3000"}
	return cfg
}

func newTestApplication(t *testing.T, cfg *config.Config) *application {
	t.Helper()

	if cfg == nil {
		cfg = newTestConfig()
	}

	app, err := newApplication(cfg, jsonlog.New(io.Discard, jsonlog.LevelOff), data.BuiltinMovies())
	require.NoError(t, err)
	return app
}

// do sends a request through the full middleware chain.
func do(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
