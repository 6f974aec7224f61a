//go:build integration

package watermark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/pkg/testutil/containers"
)

func TestRedisStore(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	require.NoError(t, rc.FlushAll(ctx))

	s := NewRedisStore(rc.Client, time.Hour)
	key := Key{Entity: "class", SourcedID: "00000001-0000-0000-0000-000000000000"}
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	fresh, err := s.IsFresh(ctx, key, base)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = s.IsFresh(ctx, key, base)
	require.NoError(t, err)
	assert.True(t, fresh, "checking must not store a mark")

	require.NoError(t, s.Commit(ctx, key, base))
	fresh, err = s.IsFresh(ctx, key, base)
	require.NoError(t, err)
	assert.False(t, fresh, "equal mark is stale")

	require.NoError(t, s.Commit(ctx, key, base.Add(-time.Hour)))
	fresh, err = s.IsFresh(ctx, key, base.Add(time.Microsecond))
	require.NoError(t, err)
	assert.True(t, fresh, "an older commit must not lower the mark")

	ttl, err := rc.Client.PTTL(ctx, key.String()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
