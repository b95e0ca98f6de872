package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dreampaper/dreampaper/internal/generate"
	"github.com/dreampaper/dreampaper/internal/log"
)

// HTTPDownloader fetches generated image bytes from the URL the provider
// handed back.
type HTTPDownloader struct {
	Client *http.Client
}

var _ generate.Downloader = (*HTTPDownloader)(nil)

func (d *HTTPDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	log.FromContextOrDiscard(ctx).Info("downloading generated image")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
