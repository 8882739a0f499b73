package storage

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]FileStorage {
	t.Helper()
	local, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)
	return map[string]FileStorage{
		"local":  local,
		"memory": NewMemoryStorage(),
	}
}

func TestFileStorage_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			key, err := s.Upload(ctx, bytes.NewReader([]byte("audio")), "audio/lastnext24_audio_r1", "audio/webm")
			require.NoError(t, err)
			assert.Equal(t, "audio/lastnext24_audio_r1", key)

			ok, err := s.Exists(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)

			rc, err := s.Download(ctx, key)
			require.NoError(t, err)
			data, _ := io.ReadAll(rc)
			rc.Close()
			assert.Equal(t, "audio", string(data))

			keys, err := s.List(ctx, "audio/")
			require.NoError(t, err)
			assert.Equal(t, []string{key}, keys)

			require.NoError(t, s.Delete(ctx, key))
			require.NoError(t, s.Delete(ctx, key))
			_, err = s.Download(ctx, key)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)
	ctx := context.Background()

	key, err := s.Upload(ctx, bytes.NewReader([]byte("x")), "../../etc/passwd", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = s.Upload(ctx, bytes.NewReader([]byte("x")), "", "text/plain")
	assert.Error(t, err)
}

func TestLocalStorage_GetURL(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)

	url, err := s.GetURL(context.Background(), "audio/a b", time.Minute)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/audio/a b", url)
}
