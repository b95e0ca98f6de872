package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/samber/do"

	"github.com/dreampaper/dreampaper/internal/handler"
	"github.com/dreampaper/dreampaper/internal/inject"
	"github.com/dreampaper/dreampaper/internal/log"
	"github.com/dreampaper/dreampaper/internal/store"
)

func main() {
	ctx := log.NewContext(context.Background(), log.NewLambda(os.Stderr))
	injector := inject.Setup(ctx)

	if err := do.MustInvoke[store.Store](injector).Restore(ctx); err != nil {
		log.FromContextOrDiscard(ctx).Error("failed to restore wallpaper store", "error", err)
		os.Exit(1)
	}

	handler := do.MustInvoke[*handler.Handler](injector)
	lambda.StartWithOptions(handler.Handle, lambda.WithContext(ctx), lambda.WithEnableSIGTERM(func() {
		_ = injector.Shutdown()
	}))
}
