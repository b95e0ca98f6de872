package generate

import (
	"context"
	"strings"
)

type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
	Square    Orientation = "square"
)

type Quality string

const (
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "hd"
)

// Request describes one generation cycle. Theme names a registered preset;
// Prompt is literal free text and wins over Theme when both are set.
type Request struct {
	Theme       string
	Prompt      string
	Orientation Orientation
	Quality     Quality
}

func (r Request) prompt() string {
	return strings.TrimSpace(r.Prompt)
}

// ImageRequest is what the provider sees after the prompt source has been
// resolved and validated.
type ImageRequest struct {
	Prompt      string
	Orientation Orientation
	Quality     Quality
}

// Generator submits one generation request to the provider and returns a
// fetchable URL for the resulting image.
type Generator interface {
	Generate(context.Context, ImageRequest) (string, error)
}

// Factory builds a Generator bound to a provider credential. The credential
// is supplied per cycle and never retained by the orchestrator.
type Factory func(credential string) Generator

// Downloader fetches raw image bytes from a URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// ProgressFunc receives advisory progress in [0,1]. Values are
// non-decreasing during a cycle; a failing cycle reports a final 0.
type ProgressFunc func(float64)
