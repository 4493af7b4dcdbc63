package localstate

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) Store {
	t.Helper()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func newRedisStore(t *testing.T) Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client)
}

func TestStores(t *testing.T) {
	backends := map[string]func(*testing.T) Store{
		"file":  newFileStore,
		"redis": newRedisStore,
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)
			key := HistoryKey("device/../1")

			_, err := s.Get(ctx, key)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, key, `[{"id":"a"}]`))
			got, err := s.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"a"}]`, got)

			require.NoError(t, s.Set(ctx, key, `[]`))
			got, err = s.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, `[]`, got)

			require.NoError(t, s.Delete(ctx, key))
			_, err = s.Get(ctx, key)
			assert.ErrorIs(t, err, ErrNotFound)

			assert.NoError(t, s.Delete(ctx, key), "deleting a missing key is fine")
		})
	}
}

func TestFileStore_KeysStayInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), ConsentKey("../../etc/passwd"), "true"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRedisStore_NilClient(t *testing.T) {
	ctx := context.Background()
	s := NewRedisStore(nil)

	assert.NoError(t, s.Set(ctx, "k", "v"))
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "k"))
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient("http://not-redis")
	assert.Error(t, err)
}

func TestConsent(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	c, err := GetConsent(ctx, s, "device-1")
	require.NoError(t, err)
	assert.False(t, c.Decided)

	require.NoError(t, SetConsent(ctx, s, "device-1", false))
	c, err = GetConsent(ctx, s, "device-1")
	require.NoError(t, err)
	assert.Equal(t, Consent{Decided: true, Accepted: false}, c)

	require.NoError(t, SetConsent(ctx, s, "device-1", true))
	c, err = GetConsent(ctx, s, "device-1")
	require.NoError(t, err)
	assert.True(t, c.Accepted)

	require.NoError(t, s.Set(ctx, ConsentKey("device-2"), "maybe"))
	c, err = GetConsent(ctx, s, "device-2")
	require.NoError(t, err)
	assert.False(t, c.Decided)
}
