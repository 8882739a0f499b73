package kvstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/kv"
	"github.com/lastnext24/lastnext24-backend-go/internal/pkg/storage"
)

const fileKeyDir = "kv/"

// fileStore persists each key as one blob in a FileStorage. Atomicity of
// Update holds within a single process only.
type fileStore struct {
	mu    sync.Mutex
	files storage.FileStorage
}

func NewFileStore(files storage.FileStorage) kv.Store {
	return &fileStore{files: files}
}

func (s *fileStore) path(key string) string {
	return fileKeyDir + key + ".json"
}

func (s *fileStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx, key)
}

func (s *fileStore) read(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.files.Download(ctx, s.path(key))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return data, nil
}

func (s *fileStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, key, value)
}

func (s *fileStore) write(ctx context.Context, key string, value []byte) error {
	if _, err := s.files.Upload(ctx, bytes.NewReader(value), s.path(key), "application/json"); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *fileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files.Delete(ctx, s.path(key))
}

func (s *fileStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	paths, err := s.files.List(ctx, fileKeyDir+prefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		if !strings.HasSuffix(p, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(p, fileKeyDir), ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *fileStore) Update(ctx context.Context, key string, fn kv.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(ctx, key)
	exists := true
	if errors.Is(err, kv.ErrNotFound) {
		current, exists = nil, false
	} else if err != nil {
		return err
	}

	next, err := fn(current, exists)
	if err != nil {
		return err
	}
	if next == nil {
		return s.files.Delete(ctx, s.path(key))
	}
	return s.write(ctx, key, next)
}

func (s *fileStore) Close() error { return nil }
