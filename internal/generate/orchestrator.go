package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync/atomic"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/dreampaper/dreampaper/internal/log"
	"github.com/dreampaper/dreampaper/internal/theme"
	"github.com/dreampaper/dreampaper/internal/wallpaper"
)

// Progress checkpoints for the stages of a cycle. Each value is reported
// when the stage actually completes, never simulated from wall-clock time.
const (
	progressSubmitted  = 0.1
	progressResponse   = 0.6
	progressDownloaded = 0.85
	progressDone       = 1.0
)

// Orchestrator drives one end-to-end generation cycle: resolve the prompt,
// submit the provider request, download the result, decode it. At most one
// cycle may be in flight per instance; a second call returns ErrBusy.
type Orchestrator struct {
	factory    Factory
	downloader Downloader
	busy       atomic.Bool
}

func NewOrchestrator(factory Factory, downloader Downloader) *Orchestrator {
	return &Orchestrator{factory: factory, downloader: downloader}
}

// Generate runs one cycle and returns the decoded wallpaper. The store is
// never written here; callers persist the result, so a failed cycle leaves
// no partial state anywhere.
func (o *Orchestrator) Generate(ctx context.Context, req Request, credential string, progress ProgressFunc) (*wallpaper.Wallpaper, error) {
	sink := &progressSink{fn: progress}

	if !o.busy.CompareAndSwap(false, true) {
		sink.fail()
		return nil, ErrBusy
	}
	defer o.busy.Store(false)

	prompt, err := resolvePrompt(req)
	if err != nil {
		sink.fail()
		return nil, err
	}
	if credential == "" {
		sink.fail()
		return nil, ErrMissingCredential
	}

	logger := log.FromContextOrDiscard(ctx).WithGroup("orchestrator").With("prompt", prompt)
	logger.Info("starting generation cycle", "orientation", req.Orientation, "quality", req.Quality)

	generator := o.factory(credential)
	sink.report(progressSubmitted)

	url, err := generator.Generate(ctx, ImageRequest{
		Prompt:      prompt,
		Orientation: req.Orientation,
		Quality:     req.Quality,
	})
	if err != nil {
		sink.fail()
		return nil, asProviderError(err)
	}
	sink.report(progressResponse)
	logger.Info("provider returned image url")

	data, err := o.downloader.Download(ctx, url)
	if err != nil {
		sink.fail()
		return nil, &DownloadError{URL: url, err: err}
	}
	sink.report(progressDownloaded)
	logger.Info("downloaded image", "bytes", len(data))

	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		sink.fail()
		return nil, &DecodeError{err: err}
	}

	w := &wallpaper.Wallpaper{
		Image:       data,
		Format:      format,
		Prompt:      prompt,
		GeneratedAt: time.Now().UTC(),
	}
	sink.report(progressDone)
	logger.Info("cycle complete", "format", format)
	return w, nil
}

func resolvePrompt(req Request) (string, error) {
	if p := req.prompt(); p != "" {
		return p, nil
	}
	if req.Theme == "" {
		return "", ErrEmptyPrompt
	}
	phrase, ok := theme.Phrase(req.Theme)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, req.Theme)
	}
	return phrase, nil
}

// asProviderError labels transport failures as provider errors, but leaves
// cancellation and timeout alone so callers can still classify them.
func asProviderError(err error) error {
	if _, ok := err.(*ProviderError); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ProviderError{Message: err.Error(), err: err}
}

// progressSink enforces the reporting contract: values never decrease, and
// after the reset-to-zero on failure nothing further is delivered.
type progressSink struct {
	fn     ProgressFunc
	last   float64
	failed bool
}

func (s *progressSink) report(v float64) {
	if s.fn == nil || s.failed || v < s.last {
		return
	}
	s.last = v
	s.fn(v)
}

func (s *progressSink) fail() {
	if s.fn == nil || s.failed {
		return
	}
	s.failed = true
	s.fn(0)
}
