// Package transcript provides the optional cache collaborators that
// sit in front of the YouTube transcript provider, keyed by video ID.
package transcript

import (
	"context"

	"go.uber.org/zap"
)

// Provider is the upstream transcript source being cached.
type Provider interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Store is a video-ID-keyed transcript cache backend.
type Store interface {
	Get(ctx context.Context, videoID string) (string, bool, error)
	Set(ctx context.Context, videoID, text string) error
}

// Caching wraps a provider with a cache store. Provider failures are
// never cached; a broken store degrades to pass-through.
type Caching struct {
	inner Provider
	store Store
	log   *zap.Logger
}

func NewCaching(inner Provider, store Store, log *zap.Logger) *Caching {
	if log == nil {
		log = zap.NewNop()
	}
	return &Caching{inner: inner, store: store, log: log}
}

func (c *Caching) Fetch(ctx context.Context, videoID string) (string, error) {
	if text, ok, err := c.store.Get(ctx, videoID); err != nil {
		c.log.Warn("transcript cache read failed", zap.String("video_id", videoID), zap.Error(err))
	} else if ok {
		return text, nil
	}

	text, err := c.inner.Fetch(ctx, videoID)
	if err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, videoID, text); err != nil {
		c.log.Warn("transcript cache write failed", zap.String("video_id", videoID), zap.Error(err))
	}
	return text, nil
}
