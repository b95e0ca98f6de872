package feed_test

import (
	"context"
	"testing"
	"time"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreampaper/dreampaper/internal/feed"
	"github.com/dreampaper/dreampaper/internal/wallpaper"
)

func TestGenerator_Generate(t *testing.T) {
	injector := do.New()
	do.ProvideNamedValue[string](injector, "base_url", "https://wallpapers.example")

	g, err := feed.NewGenerator(injector)
	require.NoError(t, err)

	rss, err := g.Generate(context.Background(), wallpaper.Wallpaper{
		Format:      "png",
		Prompt:      "a vast nebula",
		GeneratedAt: time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	s := string(rss)
	assert.Contains(t, s, "<rss")
	assert.Contains(t, s, "a vast nebula")
	assert.Contains(t, s, "https://wallpapers.example/latest.png")
}
