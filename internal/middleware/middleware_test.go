package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"finitefield.org/folio/internal/content"
	"finitefield.org/folio/internal/i18n"
	"finitefield.org/folio/internal/observability"
)

func TestLocaleReadsQueryOnly(t *testing.T) {
	bundle := i18n.FromMap("fr", map[string]map[string]string{"fr": {}, "en": {}})
	var got content.Lang
	h := Locale(bundle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Lang(r)
	}))

	cases := []struct {
		target string
		cookie string
		want   content.Lang
	}{
		{"/", "", content.French},
		{"/?hl=en", "", content.English},
		{"/?hl=EN-us", "", content.English},
		{"/?hl=de", "", content.French},
		{"/", "en", content.French},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.target, nil)
		req.Header.Set("Accept-Language", "en")
		if c.cookie != "" {
			req.AddCookie(&http.Cookie{Name: LangParam, Value: c.cookie})
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, c.want, got, c.target)
		assert.Equal(t, c.want.String(), rec.Header().Get("Content-Language"))
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestHTMXFlag(t *testing.T) {
	var is bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is = IsHTMX(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.True(t, is)
	assert.Contains(t, rec.Header().Values("Vary"), "HX-Request")
}

func TestLoggerEmitsRequestLine(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var ctxLogger *zap.Logger
	h := chiMid.RequestID(HTMX(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = observability.FromContext(r.Context())
		_, ok := RequestID(r.Context())
		assert.True(t, ok)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	}))))

	req := httptest.NewRequest(http.MethodGet, "/?hl=en", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, zap.ErrorLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, int64(http.StatusServiceUnavailable), fields["status"])
	assert.Equal(t, int64(4), fields["bytes"])
	assert.Equal(t, true, fields["htmx"])
	assert.NotEmpty(t, fields["request_id"])
	assert.NotNil(t, ctxLogger)
}

func TestAssetsWithCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{}"), 0o644))
	h := AssetsWithCache(dir, "/assets", CacheImmutable)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
	assert.Equal(t, CacheImmutable, rec.Header().Get("Cache-Control"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	WriteError(rec, req.WithContext(WithHTMX(req.Context(), true)), http.StatusBadGateway, "upstream")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"upstream"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteError(rec, req, http.StatusBadGateway, "upstream")
	assert.Contains(t, rec.Body.String(), "upstream")
}
