package handler_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreampaper/dreampaper/internal/feed"
	"github.com/dreampaper/dreampaper/internal/generate"
	"github.com/dreampaper/dreampaper/internal/handler"
	"github.com/dreampaper/dreampaper/internal/page"
	"github.com/dreampaper/dreampaper/internal/publish"
	"github.com/dreampaper/dreampaper/internal/refresh"
	"github.com/dreampaper/dreampaper/internal/secret"
	"github.com/dreampaper/dreampaper/internal/store"
	"github.com/dreampaper/dreampaper/internal/wallpaper"
)

type mockGenerator struct {
	generateFunc func(ctx context.Context, req generate.ImageRequest) (string, error)
}

func (m *mockGenerator) Generate(ctx context.Context, req generate.ImageRequest) (string, error) {
	return m.generateFunc(ctx, req)
}

type mockDownloader struct {
	data []byte
}

func (m *mockDownloader) Download(context.Context, string) ([]byte, error) {
	return m.data, nil
}

type mockUploader struct {
	uploads []publish.Params
	err     error
}

func (m *mockUploader) Upload(_ context.Context, p publish.Params) error {
	if m.err != nil {
		return m.err
	}
	m.uploads = append(m.uploads, p)
	return nil
}

type mockInvalidator struct {
	paths [][]string
}

func (m *mockInvalidator) Invalidate(_ context.Context, paths []string) error {
	m.paths = append(m.paths, paths)
	return nil
}

type mockStore struct {
	current *wallpaper.Wallpaper
}

func (m *mockStore) Put(_ context.Context, w wallpaper.Wallpaper) error {
	m.current = &w
	return nil
}
func (m *mockStore) Get(context.Context) (*wallpaper.Wallpaper, error) { return m.current, nil }
func (m *mockStore) Restore(context.Context) error                    { return nil }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func setup(t *testing.T, gen generate.Generator, data []byte) (*handler.Handler, *mockStore, *mockUploader, *mockInvalidator) {
	t.Helper()

	injector := do.New()
	t.Cleanup(func() { _ = injector.Shutdown() })

	st := &mockStore{}
	uploader := &mockUploader{}
	invalidator := &mockInvalidator{}

	t.Setenv("OPENAI_API_KEY", "test-key")

	do.ProvideValue[store.Store](injector, st)
	do.ProvideValue[secret.Store](injector, secret.EnvStore{})
	do.ProvideValue[publish.Uploader](injector, publish.Uploader(uploader))
	do.ProvideValue[publish.Invalidator](injector, publish.Invalidator(invalidator))
	do.ProvideNamedValue[string](injector, "base_url", "https://wallpapers.example")
	do.ProvideNamedValue[string](injector, "credential_key", "OPENAI_API_KEY")
	do.Provide[*feed.Generator](injector, feed.NewGenerator)
	do.Provide[*page.Templator](injector, page.NewTemplator)
	do.ProvideValue[*generate.Orchestrator](injector, generate.NewOrchestrator(
		func(string) generate.Generator { return gen },
		&mockDownloader{data: data},
	))
	do.Provide[*refresh.Runner](injector, refresh.NewRunner)
	do.Provide[*handler.Handler](injector, handler.NewHandler)

	h, err := do.Invoke[*handler.Handler](injector)
	require.NoError(t, err)
	return h, st, uploader, invalidator
}

func TestHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("scheduled invocation publishes the new wallpaper", func(t *testing.T) {
		gen := &mockGenerator{generateFunc: func(_ context.Context, req generate.ImageRequest) (string, error) {
			assert.NotEmpty(t, req.Prompt, "empty input falls back to the daily theme")
			assert.Equal(t, generate.Landscape, req.Orientation)
			assert.Equal(t, generate.QualityHigh, req.Quality)
			return "https://provider.example/image.png", nil
		}}
		h, st, uploader, invalidator := setup(t, gen, pngBytes(t))

		out, err := h.Handle(ctx, handler.Input{})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Prompt)
		assert.Equal(t, "png", out.Format)
		require.NotNil(t, st.current)

		names := lo.Map(uploader.uploads, func(p publish.Params, _ int) string { return p.Name })
		assert.ElementsMatch(t, []string{"latest.png", "latest.html", "feed.xml"}, names)

		require.Len(t, invalidator.paths, 1)
		assert.Contains(t, invalidator.paths[0], "/latest.png")
	})

	t.Run("input overrides the defaults", func(t *testing.T) {
		var got generate.ImageRequest
		gen := &mockGenerator{generateFunc: func(_ context.Context, req generate.ImageRequest) (string, error) {
			got = req
			return "https://provider.example/image.png", nil
		}}
		h, _, _, _ := setup(t, gen, pngBytes(t))

		_, err := h.Handle(ctx, handler.Input{
			Prompt:      "a koi pond at night",
			Orientation: "portrait",
			Quality:     "standard",
		})
		require.NoError(t, err)
		assert.Equal(t, "a koi pond at night", got.Prompt)
		assert.Equal(t, generate.Portrait, got.Orientation)
		assert.Equal(t, generate.QualityStandard, got.Quality)
	})

	t.Run("generation failure publishes nothing", func(t *testing.T) {
		gen := &mockGenerator{generateFunc: func(context.Context, generate.ImageRequest) (string, error) {
			return "", &generate.ProviderError{Status: 500, Message: "internal"}
		}}
		h, st, uploader, invalidator := setup(t, gen, nil)

		_, err := h.Handle(ctx, handler.Input{})
		require.Error(t, err)
		assert.Nil(t, st.current)
		assert.Empty(t, uploader.uploads)
		assert.Empty(t, invalidator.paths)
	})
}
