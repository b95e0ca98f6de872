package handler

import (
	"context"
	"time"

	"github.com/samber/do"
	"github.com/samber/lo"

	"github.com/dreampaper/dreampaper/internal/feed"
	"github.com/dreampaper/dreampaper/internal/generate"
	"github.com/dreampaper/dreampaper/internal/log"
	"github.com/dreampaper/dreampaper/internal/page"
	"github.com/dreampaper/dreampaper/internal/publish"
	"github.com/dreampaper/dreampaper/internal/refresh"
	"github.com/dreampaper/dreampaper/internal/store"
	"github.com/dreampaper/dreampaper/internal/theme"
)

// Input comes from the scheduled EventBridge rule, usually empty. Any field
// may be set to override the daily defaults for a manual invocation.
type Input struct {
	Theme       string `json:"theme,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Quality     string `json:"quality,omitempty"`
}

type Output struct {
	Prompt      string    `json:"prompt"`
	Format      string    `json:"format"`
	Bytes       int       `json:"bytes"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Handler struct {
	runner      *refresh.Runner
	store       store.Store
	feed        *feed.Generator
	templator   *page.Templator
	uploader    publish.Uploader
	invalidator publish.Invalidator
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		runner:      do.MustInvoke[*refresh.Runner](i),
		store:       do.MustInvoke[store.Store](i),
		feed:        do.MustInvoke[*feed.Generator](i),
		templator:   do.MustInvoke[*page.Templator](i),
		uploader:    do.MustInvoke[publish.Uploader](i),
		invalidator: do.MustInvoke[publish.Invalidator](i),
	}, nil
}

func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("Handler").With("input", input)
	logger.Info("handling lambda invocation")

	req := generate.Request{
		Theme:       input.Theme,
		Prompt:      input.Prompt,
		Orientation: generate.Orientation(lo.Ternary(input.Orientation != "", input.Orientation, string(generate.Landscape))),
		Quality:     generate.Quality(lo.Ternary(input.Quality != "", input.Quality, string(generate.QualityHigh))),
	}
	if req.Theme == "" && req.Prompt == "" {
		req.Theme = theme.ForDay(time.Now())
	}

	result, err := h.runner.Run(ctx, req)
	if err != nil {
		return Output{}, err
	}

	if err := h.publish(ctx); err != nil {
		return Output{}, err
	}

	return Output{
		Prompt:      result.Prompt,
		Format:      result.Format,
		Bytes:       result.Bytes,
		GeneratedAt: result.GeneratedAt,
	}, nil
}

func (h *Handler) publish(ctx context.Context) error {
	w, err := h.store.Get(ctx)
	if err != nil {
		return err
	}

	rss, err := h.feed.Generate(ctx, *w)
	if err != nil {
		return err
	}

	html, err := h.templator.Template(ctx, page.Params{
		Image:     "latest." + w.Format,
		Prompt:    w.Prompt,
		Generated: w.GeneratedAt.Format(time.RFC1123),
	})
	if err != nil {
		return err
	}

	metadata := map[string]string{
		"prompt":       w.Prompt,
		"generated-at": w.GeneratedAt.Format(time.RFC3339),
	}
	uploads := []publish.Params{
		{Name: "latest." + w.Format, Data: w.Image, ContentType: "image/" + w.Format, Metadata: metadata},
		{Name: "latest.html", Data: html, ContentType: "text/html", Metadata: metadata},
		{Name: "feed.xml", Data: rss, ContentType: "application/rss+xml", Metadata: metadata},
	}
	for _, u := range uploads {
		if err := h.uploader.Upload(ctx, u); err != nil {
			return err
		}
	}

	return h.invalidator.Invalidate(ctx, []string{"/latest." + w.Format, "/latest.html", "/feed.xml"})
}
