package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// ErrNotFound is returned when a resource does not exist at the source.
var ErrNotFound = errors.New("source: not found")

// StatusError reports a non-success HTTP status from a remote source.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("source: %s returned HTTP %d", e.URL, e.Code)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Source fetches static resources (the page shell, fragments, content documents) by
// slash-separated path such as "components/hero.html".
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Paths used by the pipeline.
const (
	ShellPath = "index.html"
)

// ComponentPath returns the path of a named HTML fragment.
func ComponentPath(name string) string { return "components/" + name + ".html" }

// DataPath returns the path of a named content document.
func DataPath(name string) string { return "data/" + name + ".json" }

// Dir serves resources from a filesystem tree.
type Dir struct {
	fsys fs.FS
}

// NewDir reads resources below root on disk.
func NewDir(root string) *Dir { return &Dir{fsys: os.DirFS(root)} }

// NewFS reads resources from an fs.FS (embedded trees, fstest maps).
func NewFS(fsys fs.FS) *Dir { return &Dir{fsys: fsys} }

// Fetch implements Source.
func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if clean == "" || !fs.ValidPath(clean) {
		return nil, fmt.Errorf("source: invalid path %q", name)
	}
	b, err := fs.ReadFile(d.fsys, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
		}
		return nil, fmt.Errorf("source: read %s: %w", clean, err)
	}
	return b, nil
}

// HTTP fetches resources from a remote origin serving the same layout.
type HTTP struct {
	baseURL string
	client  *http.Client
}

// NewHTTP builds a remote source. A nil client gets a default with the given timeout.
func NewHTTP(baseURL string, client *http.Client, timeout time.Duration) *HTTP {
	if client == nil {
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTP{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), client: client}
}

// BaseURL returns the configured origin.
func (h *HTTP) BaseURL() string { return h.baseURL }

// Fetch implements Source.
func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	endpoint, err := url.JoinPath(h.baseURL, strings.Split(strings.TrimPrefix(name, "/"), "/")...)
	if err != nil {
		return nil, fmt.Errorf("source: build url for %s: %w", name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: endpoint, Code: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", endpoint, err)
	}
	return b, nil
}

// IsRemote reports whether src fetches over the network.
func IsRemote(src Source) bool {
	switch s := src.(type) {
	case *HTTP:
		return true
	case *Cached:
		return IsRemote(s.src)
	}
	return false
}
