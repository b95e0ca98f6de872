package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dreampaper/dreampaper/internal/config"
	"github.com/dreampaper/dreampaper/internal/generate"
	"github.com/dreampaper/dreampaper/internal/log"
	"github.com/dreampaper/dreampaper/internal/provider"
	"github.com/dreampaper/dreampaper/internal/refresh"
	"github.com/dreampaper/dreampaper/internal/secret"
	"github.com/dreampaper/dreampaper/internal/store"
	"github.com/dreampaper/dreampaper/internal/theme"
)

func main() {
	once := flag.Bool("once", false, "run a single refresh cycle and exit")
	themeFlag := flag.String("theme", "", "named theme to generate from")
	prompt := flag.String("prompt", "", "literal prompt, overrides -theme")
	flag.Parse()

	logger := log.New(os.Stderr)
	ctx := log.NewContext(context.Background(), logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	fileStore, err := store.NewFileStore(cfg.StoreDir)
	if err != nil {
		logger.Error("failed to open wallpaper store", "error", err)
		os.Exit(1)
	}
	if err := fileStore.Restore(ctx); err != nil {
		logger.Error("failed to restore wallpaper store", "error", err)
		os.Exit(1)
	}

	orchestrator := generate.NewOrchestrator(
		provider.NewOpenAIFactory(cfg.Model),
		&provider.HTTPDownloader{Client: http.DefaultClient},
	)
	runner := refresh.New(orchestrator, fileStore, secret.EnvStore{}, cfg.CredentialKey, cfg.CycleTimeout)

	run := func(ctx context.Context, req generate.Request) error {
		result, err := runner.RunWithProgress(ctx, req, func(p float64) {
			fmt.Fprintf(os.Stderr, "\rgenerating... %3.0f%%", p*100)
		})
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		logger.Info("wallpaper refreshed", "prompt", result.Prompt, "bytes", result.Bytes, "generated_at", result.GeneratedAt)
		return nil
	}

	req := generate.Request{
		Theme:       firstNonEmpty(*themeFlag, cfg.Theme),
		Prompt:      *prompt,
		Orientation: cfg.Orientation,
		Quality:     cfg.Quality,
	}

	if *once {
		if req.Theme == "" && req.Prompt == "" {
			req.Theme = theme.ForDay(time.Now())
		}
		if err := run(ctx, req); err != nil {
			logger.Error("refresh failed", "error", err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		scheduled := req
		if scheduled.Theme == "" && scheduled.Prompt == "" {
			scheduled.Theme = theme.ForDay(time.Now())
		}
		if err := run(ctx, scheduled); err != nil {
			logger.Error("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		logger.Error("invalid schedule", "schedule", cfg.Schedule, "error", err)
		os.Exit(1)
	}

	logger.Info("scheduler started", "schedule", cfg.Schedule)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("stopped")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
