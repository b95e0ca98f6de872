package inject

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/samber/do"

	"github.com/dreampaper/dreampaper/internal/feed"
	"github.com/dreampaper/dreampaper/internal/generate"
	"github.com/dreampaper/dreampaper/internal/handler"
	"github.com/dreampaper/dreampaper/internal/log"
	"github.com/dreampaper/dreampaper/internal/page"
	"github.com/dreampaper/dreampaper/internal/provider"
	"github.com/dreampaper/dreampaper/internal/publish"
	"github.com/dreampaper/dreampaper/internal/refresh"
	"github.com/dreampaper/dreampaper/internal/secret"
	"github.com/dreampaper/dreampaper/internal/store"
)

// Setup wires the Lambda deployment: SSM-backed secrets, S3-backed store,
// CloudFront publishing.
func Setup(ctx context.Context) *do.Injector {
	logger := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			logger.Info(fmt.Sprintf(format, args...))
		},
	})
	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx)
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*cloudfront.Client](injector, func(i *do.Injector) (*cloudfront.Client, error) {
		return cloudfront.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.ProvideValue[*http.Client](injector, http.DefaultClient)

	do.Provide[secret.Store](injector, secret.NewParameterStore)
	do.Provide[store.Store](injector, store.NewS3Store)
	do.Provide[publish.Uploader](injector, publish.NewS3Uploader)
	do.Provide[publish.Invalidator](injector, publish.NewCloudFrontInvalidator)
	do.Provide[*feed.Generator](injector, feed.NewGenerator)
	do.Provide[*page.Templator](injector, page.NewTemplator)

	do.Provide[*generate.Orchestrator](injector, func(i *do.Injector) (*generate.Orchestrator, error) {
		model := do.MustInvokeNamed[string](i, "model")
		client := do.MustInvoke[*http.Client](i)
		return generate.NewOrchestrator(provider.NewOpenAIFactory(model), &provider.HTTPDownloader{Client: client}), nil
	})
	do.Provide[*refresh.Runner](injector, refresh.NewRunner)

	do.ProvideNamedValue[string](injector, "model", getenv("MODEL", provider.DefaultModel))
	do.ProvideNamedValue[string](injector, "credential_key", os.Getenv("OPENAI_KEY_PARAM"))
	do.ProvideNamedValue[string](injector, "bucket", os.Getenv("BUCKET"))
	do.ProvideNamedValue[string](injector, "distribution", os.Getenv("DISTRIBUTION"))
	do.ProvideNamedValue[string](injector, "base_url", os.Getenv("BASE_URL"))

	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
