package store

import (
	"context"

	"github.com/dreampaper/dreampaper/internal/wallpaper"
)

// Store persists the single most recent wallpaper. Put must be durable
// before it returns; Get returns nil when nothing has ever been written;
// Restore is called once at process start to reload the persisted record.
type Store interface {
	Put(ctx context.Context, w wallpaper.Wallpaper) error
	Get(ctx context.Context) (*wallpaper.Wallpaper, error)
	Restore(ctx context.Context) error
}
