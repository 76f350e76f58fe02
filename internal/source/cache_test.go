package source

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls atomic.Int32
	err   error
}

func (c *countingSource) Fetch(_ context.Context, name string) ([]byte, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return []byte(name), nil
}

func TestCachedServesWithinTTL(t *testing.T) {
	origin := &countingSource{}
	src := NewCached(origin, time.Minute)
	cached, ok := src.(*Cached)
	require.True(t, ok)
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return clock }
	ctx := context.Background()

	b, err := src.Fetch(ctx, DataPath("hero"))
	require.NoError(t, err)
	b[0] = 'X'
	b, err = src.Fetch(ctx, DataPath("hero"))
	require.NoError(t, err)
	assert.Equal(t, "data/hero.json", string(b))
	assert.EqualValues(t, 1, origin.calls.Load())

	clock = clock.Add(2 * time.Minute)
	_, err = src.Fetch(ctx, DataPath("hero"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, origin.calls.Load())

	cached.Purge()
	_, err = src.Fetch(ctx, DataPath("hero"))
	require.NoError(t, err)
	assert.EqualValues(t, 3, origin.calls.Load())
}

func TestCachedDoesNotKeepFailures(t *testing.T) {
	origin := &countingSource{err: errors.New("boom")}
	src := NewCached(origin, time.Minute)
	ctx := context.Background()

	_, err := src.Fetch(ctx, ShellPath)
	require.Error(t, err)
	origin.err = nil
	_, err = src.Fetch(ctx, ShellPath)
	require.NoError(t, err)
	assert.EqualValues(t, 2, origin.calls.Load())
}

func TestNewCachedDisabled(t *testing.T) {
	origin := &countingSource{}
	assert.Same(t, Source(origin), NewCached(origin, 0))
	assert.True(t, IsRemote(NewCached(NewHTTP("http://example.test", nil, 0), time.Minute)))
	assert.False(t, IsRemote(NewCached(NewDir(t.TempDir()), time.Minute)))
}
