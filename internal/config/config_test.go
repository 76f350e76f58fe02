package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolated(opts ...Option) []Option {
	return append([]Option{WithFile(""), WithEnvFile(""), WithoutSystemEnv()}, opts...)
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(isolated()...)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, "public", cfg.Content.Dir)
	assert.True(t, cfg.Content.SanitizeFragments)
	assert.False(t, cfg.Remote())
	assert.Equal(t, "fr", cfg.Site.DefaultLang)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  read_timeout: 3s
content:
  base_url: https://cdn.example.org/site
  timeout: 2s
  cache_ttl: 1m
site:
  url: https://folio.example.org/
log:
  level: debug
`), 0o644))

	cfg, err := Load(WithFile(path), WithEnvFile(""), WithoutSystemEnv(), WithEnvMap(map[string]string{
		"FOLIO_SERVER_ADDR":                ":9100",
		"FOLIO_CONTENT_SANITIZE_FRAGMENTS": "false",
		"FOLIO_SERVER_IDLE_TIMEOUT":        "90s",
		"UNRELATED":                        "x",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, 90*time.Second, cfg.Server.IdleTimeout.Std())
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout.Std())
	assert.True(t, cfg.Remote())
	assert.Equal(t, 2*time.Second, cfg.Content.Timeout.Std())
	assert.Equal(t, time.Minute, cfg.Content.CacheTTL.Std())
	assert.False(t, cfg.Content.SanitizeFragments)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadSystemEnv(t *testing.T) {
	t.Setenv("FOLIO_LOG_LEVEL", "warn")
	t.Setenv("FOLIO_I18N_DIR", "/srv/locales")
	cfg, err := Load(WithFile(""), WithEnvFile(""))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/srv/locales", cfg.I18n.Dir)
}

func TestLoadDotEnvFallback(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FOLIO_CONTENT_DIR=/srv/site\nFOLIO_SITE_DEFAULT_LANG=en\nPORT=7070\n"), 0o644))

	cfg, err := Load(WithFile(""), WithEnvFile(envFile), WithoutSystemEnv(), WithEnvMap(map[string]string{
		"FOLIO_SITE_DEFAULT_LANG": "fr",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/srv/site", cfg.Content.Dir)
	assert.Equal(t, "fr", cfg.Site.DefaultLang)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestPortDoesNotOverrideExplicitAddr(t *testing.T) {
	cfg, err := Load(isolated(WithEnvMap(map[string]string{
		"PORT":              "7070",
		"FOLIO_SERVER_ADDR": "127.0.0.1:8081",
	}))...)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.Addr)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	_, err := Load(WithFile(filepath.Join(t.TempDir(), "nope.yaml")), WithEnvFile(""), WithoutSystemEnv())
	require.Error(t, err)
}

func TestValidateCollectsFields(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Content.BaseURL = "ftp://example.org"
	cfg.Site.DefaultLang = "de"
	cfg.Log.Level = "loud"
	cfg.Server.ReadTimeout = Duration(-time.Second)

	err := cfg.Validate()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"content.base_url", "log.level", "server.addr", "server.read_timeout", "site.default_lang"}, ve.Fields())
	assert.Contains(t, err.Error(), "site.default_lang")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(isolated(WithEnvMap(map[string]string{"FOLIO_LOG_LEVEL": "verbose"}))...)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"log.level"}, ve.Fields())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	original := Default()
	original.Server.Addr = ":9999"
	original.Server.WriteTimeout = Duration(42 * time.Second)
	original.Site.URL = "https://folio.example.org/"
	require.NoError(t, original.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "write_timeout: 42s")

	loaded, err := Load(WithFile(path), WithEnvFile(""), WithoutSystemEnv())
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestEnvKey(t *testing.T) {
	key, ok := envKey("FOLIO_CONTENT_BASE_URL")
	assert.True(t, ok)
	assert.Equal(t, "content.base_url", key)

	_, ok = envKey("FOLIO_DEBUG")
	assert.False(t, ok)
	_, ok = envKey("PORT")
	assert.False(t, ok)
}
