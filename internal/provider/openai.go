package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/dreampaper/dreampaper/internal/generate"
	"github.com/dreampaper/dreampaper/internal/log"
)

const DefaultModel = openai.CreateImageModelDallE3

// OpenAIGenerator submits image requests to the OpenAI images endpoint.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

var _ generate.Generator = (*OpenAIGenerator)(nil)

func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{client: openai.NewClient(apiKey), model: model}
}

// NewOpenAIFactory returns a generate.Factory that binds each cycle's
// credential to a fresh client.
func NewOpenAIFactory(model string) generate.Factory {
	return func(credential string) generate.Generator {
		return NewOpenAIGenerator(credential, model)
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req generate.ImageRequest) (string, error) {
	log.FromContextOrDiscard(ctx).Info("requesting image from openai", "model", g.model, "size", sizeFor(req.Orientation))

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Model:          g.model,
		Prompt:         req.Prompt,
		N:              1,
		Size:           sizeFor(req.Orientation),
		Quality:        qualityFor(req.Quality),
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", translateError(err)
	}

	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no image data returned")
	}
	return resp.Data[0].URL, nil
}

func sizeFor(o generate.Orientation) string {
	switch o {
	case generate.Portrait:
		return openai.CreateImageSize1024x1792
	case generate.Landscape:
		return openai.CreateImageSize1792x1024
	default:
		return openai.CreateImageSize1024x1024
	}
}

func qualityFor(q generate.Quality) string {
	if q == generate.QualityHigh {
		return openai.CreateImageQualityHD
	}
	return openai.CreateImageQualityStandard
}

// translateError maps the client's error types onto the orchestrator's
// taxonomy, preserving the provider's own message when one was parsed.
func translateError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &generate.ProviderError{Status: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &generate.ProviderError{Status: reqErr.HTTPStatusCode}
	}
	return err
}
