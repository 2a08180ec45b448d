package queue

import (
	"context"
	"time"
)

// EntityChanged is published after a catalog change is committed.
type EntityChanged struct {
	Kind      string    `json:"kind"`
	RootID    string    `json:"rootId"`
	VersionID string    `json:"versionId,omitempty"`
	Operation string    `json:"operation"`
	Status    string    `json:"status,omitempty"`
	Languages []string  `json:"languages,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Time      time.Time `json:"time"`
}

type Publisher interface {
	// Publish appends catalog changes to the queue.
	Publish(ctx context.Context, events ...*EntityChanged) error
	Close() error
}
