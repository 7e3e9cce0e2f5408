package circuitbreaker

import (
	"context"
	"io"

	"devflow/internal/infra/storage"
)

// Store wraps an ImageStore behind a circuit breaker. It satisfies
// storage.ImageStore, so uploads fail fast while the backing store is down
// instead of holding request handlers on a dead connection.
type Store struct {
	cb    *CircuitBreaker
	inner storage.ImageStore
}

// NewStore wraps the store with the default image-store breaker.
func NewStore(inner storage.ImageStore) *Store {
	return &Store{cb: New(StorageConfig()), inner: inner}
}

func (s *Store) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := s.cb.Execute(func() (any, error) {
		return nil, s.inner.Put(ctx, path, r, size, contentType)
	})
	return err
}

func (s *Store) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	result, err := s.cb.Execute(func() (any, error) {
		return s.inner.Get(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	return result.(io.ReadCloser), nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	_, err := s.cb.Execute(func() (any, error) {
		return nil, s.inner.Delete(ctx, path)
	})
	return err
}
