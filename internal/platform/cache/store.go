// Package cache holds API responses keyed by request. Values are raw bytes so
// the memory and redis backends are interchangeable.
package cache

import (
	"context"
	"fmt"

	"github.com/riskibarqy/rio-stats/internal/platform/resilience"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
	DeletePrefix(ctx context.Context, prefix string)
}

// Loader fills a Store on miss. Concurrent misses for one key share a
// single load.
type Loader struct {
	store  Store
	flight resilience.SingleFlight
}

func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

func (l *Loader) Store() Store {
	return l.store
}

func (l *Loader) GetOrLoad(ctx context.Context, key string, loader func(context.Context) ([]byte, error)) ([]byte, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" || l.store == nil {
		return loader(ctx)
	}

	if value, ok := l.store.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := l.flight.Do(key, func() (any, error) {
		if cached, ok := l.store.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		l.store.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]byte), nil
}
