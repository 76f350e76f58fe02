package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirFetch(t *testing.T) {
	src := NewFS(fstest.MapFS{
		"components/hero.html": {Data: []byte("<section id=\"hero\"></section>")},
		"data/hero.json":       {Data: []byte(`{"name":"Ada"}`)},
	})
	ctx := context.Background()

	b, err := src.Fetch(ctx, ComponentPath("hero"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `id="hero"`)

	b, err = src.Fetch(ctx, "/"+DataPath("hero"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada"}`, string(b))

	_, err = src.Fetch(ctx, DataPath("about"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = src.Fetch(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDirFetchHonorsCanceledContext(t *testing.T) {
	src := NewFS(fstest.MapFS{"index.html": {Data: []byte("x")}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := src.Fetch(ctx, ShellPath)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/site/data/hero.json":
			_, _ = w.Write([]byte(`{"name":"Ada"}`))
		case "/site/data/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	src := NewHTTP(srv.URL+"/site/", nil, 0)
	assert.True(t, IsRemote(src))
	ctx := context.Background()

	b, err := src.Fetch(ctx, DataPath("hero"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada"}`, string(b))

	_, err = src.Fetch(ctx, DataPath("broken"))
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.False(t, errors.Is(err, ErrNotFound))

	_, err = src.Fetch(ctx, DataPath("missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewHTTP(base, nil, 0).Fetch(context.Background(), ShellPath)
	require.Error(t, err)
	assert.False(t, IsRemote(NewDir(t.TempDir())))
}
