package storage

import (
	"context"
	"fmt"

	"github.com/bagdasarian/team-registration/internal/config"
)

func NewScreenshotStore(ctx context.Context, cfg config.StorageConfig) (ScreenshotStore, error) {
	switch cfg.Backend {
	case config.ScreenshotStoreInline:
		return NewInlineStore(), nil
	case config.ScreenshotStoreS3:
		store, err := NewS3Store(ctx, S3StoreConfig{
			Endpoint:        cfg.Endpoint,
			Region:          cfg.Region,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			Bucket:          cfg.Bucket,
			PublicBaseURL:   cfg.PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown screenshot store: %s", cfg.Backend)
	}
}
