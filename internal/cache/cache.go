package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrMiss is returned when a view is not cached.
var ErrMiss = errors.New("cache miss")

// Key addresses one rendered view of an aggregate.
type Key struct {
	Kind     string
	RootID   string
	Selector string
	Language string
}

func (k Key) String() string {
	return viewKey(k.Kind, k.RootID) + ":" + strings.Join([]string{k.Selector, k.Language}, ":")
}

func viewKey(kind, rootID string) string {
	return "catalog:view:" + kind + ":" + rootID
}

// ViewCache caches rendered aggregate views.
type ViewCache interface {
	// GetView gets a view from the cache.
	GetView(ctx context.Context, key Key) ([]byte, error)
	// SetView stores a view in the cache for ttl.
	SetView(ctx context.Context, key Key, data []byte, ttl time.Duration) error
	// Invalidate drops every cached view of an aggregate.
	Invalidate(ctx context.Context, kind, rootID string) error
}
