package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finitefield.org/folio/internal/config"
	"finitefield.org/folio/internal/testutil"
)

// newTestServer wires the router the same way serve does, against the shipped content.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Content.Dir = "../../public"
	cfg.I18n.Dir = "../../locales"
	cfg.Site.URL = "https://folio.example.org/"
	cfg.Log.Level = "error"
	a, err := newApp(cfg, "stderr")
	require.NoError(t, err)
	srv := httptest.NewServer(newRouter(a))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, header http.Header) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	res, body := get(t, srv, "/healthz", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestHomePage(t *testing.T) {
	srv := newTestServer(t)
	res, body := get(t, srv, "/", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Render-ID"))
	assert.Equal(t, "fr", res.Header.Get("Content-Language"))

	doc := testutil.ParseHTML(t, body)
	assert.Equal(t, "Camille Durand", doc.Find("#name").Text())
	assert.True(t, doc.Find("html").HasClass("dark"))
	state, _ := doc.Find("main").Attr("data-state")
	assert.Equal(t, "ready", state)
	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://folio.example.org/?hl=fr", canonical)
}

func TestLanguageToggleOverHTMX(t *testing.T) {
	srv := newTestServer(t)
	res, body := get(t, srv, "/?hl=en", http.Header{"Hx-Request": {"true"}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "en", res.Header.Get("Content-Language"))
	assert.False(t, strings.Contains(body, "<head"))

	doc := testutil.ParseHTML(t, body)
	assert.Equal(t, "Backend Software Engineer", doc.Find("#role").Text())
	next, _ := doc.Find("#language-toggle-mobile").Attr("href")
	assert.Equal(t, "?hl=fr", next)
	pushed, _ := doc.Find("#language-toggle-mobile").Attr("hx-push-url")
	assert.Equal(t, "?hl=fr", pushed)
	assert.Equal(t, "Camille Durand | Backend Software Engineer", doc.Find("title").Text())

	var trigger map[string]struct {
		Lang      string `json:"lang"`
		Title     string `json:"title"`
		Canonical string `json:"canonical"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Header.Get("HX-Trigger")), &trigger))
	head := trigger["folio:lang"]
	assert.Equal(t, "en", head.Lang)
	assert.Equal(t, "Camille Durand | Backend Software Engineer", head.Title)
	assert.Equal(t, "https://folio.example.org/?hl=en", head.Canonical)
}

func TestStaticRoutes(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/components/hero.html", "/data/hero.json", "/assets/css/site.css", "/assets/js/app.js"} {
		res, body := get(t, srv, path, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
		assert.NotEmpty(t, body, path)
		assert.NotEmpty(t, res.Header.Get("ETag"), path)
	}
	res, _ := get(t, srv, "/data/missing.json", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "en.html")
	t.Setenv("FOLIO_CONTENT_DIR", "../../public")
	t.Setenv("FOLIO_I18N_DIR", "../../locales")
	t.Setenv("FOLIO_LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"render", "--env-file", "", "--lang", "en", "--out", out})
	require.NoError(t, rootCmd.Execute())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := testutil.ParseHTML(t, string(raw))
	assert.Equal(t, "Backend Software Engineer", doc.Find("#role").Text())
	lang, _ := doc.Find("html").Attr("lang")
	assert.Equal(t, "en", lang)
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("FOLIO_SERVER_ADDR", ":9191")
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootCmd.SetArgs([]string{"config", "--env-file", ""})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "9191")
	assert.Contains(t, buf.String(), "read_timeout: 10s")
}
