package kvstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/kv"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]kv.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	local, err := storage.NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	return map[string]kv.Store{
		"memory":      NewMemoryStore(),
		"file/memory": NewFileStore(storage.NewMemoryStorage()),
		"file/local":  NewFileStore(local),
		"redis":       NewRedisStore(client),
	}
}

func TestStore_GetSetDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			defer store.Close()

			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, store.Set(ctx, "a", []byte(`[1]`)))
			got, err := store.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[1]`), got)

			require.NoError(t, store.Set(ctx, "a", []byte(`[2]`)))
			got, err = store.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[2]`), got)

			require.NoError(t, store.Delete(ctx, "a"))
			require.NoError(t, store.Delete(ctx, "a"))
			_, err = store.Get(ctx, "a")
			assert.ErrorIs(t, err, kv.ErrNotFound)
		})
	}
}

func TestStore_Keys(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, k := range []string{"lastnext24_reports", "other", "lastnext24_audio_r1"} {
				require.NoError(t, store.Set(ctx, k, []byte("x")))
			}

			keys, err := store.Keys(ctx, "lastnext24_")
			require.NoError(t, err)
			assert.Equal(t, []string{"lastnext24_audio_r1", "lastnext24_reports"}, keys)

			keys, err = store.Keys(ctx, "nope")
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestStore_Update(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			err := store.Update(ctx, "k", func(current []byte, exists bool) ([]byte, error) {
				assert.False(t, exists)
				assert.Nil(t, current)
				return []byte("one"), nil
			})
			require.NoError(t, err)

			err = store.Update(ctx, "k", func(current []byte, exists bool) ([]byte, error) {
				assert.True(t, exists)
				assert.Equal(t, []byte("one"), current)
				return append(current, []byte("+two")...), nil
			})
			require.NoError(t, err)
			got, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "one+two", string(got))

			boom := errors.New("boom")
			err = store.Update(ctx, "k", func([]byte, bool) ([]byte, error) { return []byte("lost"), boom })
			assert.ErrorIs(t, err, boom)
			got, err = store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "one+two", string(got))

			require.NoError(t, store.Update(ctx, "k", func([]byte, bool) ([]byte, error) { return nil, nil }))
			_, err = store.Get(ctx, "k")
			assert.ErrorIs(t, err, kv.ErrNotFound)
		})
	}
}

func TestStore_UpdateConcurrent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			const writers = 10

			var wg sync.WaitGroup
			for range writers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := store.Update(ctx, "counter", func(current []byte, _ bool) ([]byte, error) {
						return append(current, 'x'), nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			got, err := store.Get(ctx, "counter")
			require.NoError(t, err)
			assert.Len(t, got, writers)
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
	got[1] = 'z'

	again, _ := store.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestRedisStore_KeysEscapesGlob(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a*b", []byte("1")))
	require.NoError(t, store.Set(ctx, "axb", []byte("1")))

	keys, err := store.Keys(ctx, "a*")
	require.NoError(t, err)
	assert.Equal(t, []string{"a*b"}, keys)
}
