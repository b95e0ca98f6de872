package feed

import (
	"context"
	"fmt"

	"github.com/gorilla/feeds"
	"github.com/samber/do"

	"github.com/dreampaper/dreampaper/internal/log"
	"github.com/dreampaper/dreampaper/internal/wallpaper"
)

// Generator builds the update feed devices poll for the latest wallpaper.
// The store holds a single record, so the feed always carries exactly one
// item.
type Generator struct {
	baseURL string
}

func NewGenerator(i *do.Injector) (*Generator, error) {
	return &Generator{baseURL: do.MustInvokeNamed[string](i, "base_url")}, nil
}

func (g *Generator) Generate(ctx context.Context, w wallpaper.Wallpaper) ([]byte, error) {
	log.FromContextOrDiscard(ctx).WithGroup("feed").Info("generating rss feed")

	feed := feeds.Feed{
		Title:       "dreampaper",
		Description: "Daily AI generated wallpapers",
		Link:        &feeds.Link{Href: g.baseURL},
		Updated:     w.GeneratedAt,
	}
	feed.Add(&feeds.Item{
		Title:   w.Prompt,
		Link:    &feeds.Link{Href: fmt.Sprintf("%s/latest.%s", g.baseURL, w.Format)},
		Updated: w.GeneratedAt,
	})

	rss, err := feed.ToRss()
	return []byte(rss), err
}
