package publish

import "context"

type Params struct {
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// Uploader publishes derived artifacts (latest image copy, feed, page) to
// the distribution origin.
type Uploader interface {
	Upload(context.Context, Params) error
}

// Invalidator evicts stale paths from the CDN after an upload.
type Invalidator interface {
	Invalidate(context.Context, []string) error
}
