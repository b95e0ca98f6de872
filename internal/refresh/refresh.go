package refresh

import (
	"context"
	"time"

	"github.com/samber/do"

	"github.com/dreampaper/dreampaper/internal/generate"
	"github.com/dreampaper/dreampaper/internal/log"
	"github.com/dreampaper/dreampaper/internal/secret"
	"github.com/dreampaper/dreampaper/internal/store"
)

// DefaultTimeout bounds one refresh cycle. A cycle that has not completed
// within it reports failure and leaves the store untouched.
const DefaultTimeout = 60 * time.Second

// Result is what a completed cycle reports back to its trigger.
type Result struct {
	Prompt      string    `json:"prompt"`
	Format      string    `json:"format"`
	Bytes       int       `json:"bytes"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Runner wires one generation cycle end to end: credential lookup,
// orchestration under the cycle timeout, then the durable store write.
type Runner struct {
	orchestrator *generate.Orchestrator
	store        store.Store
	secrets      secret.Store
	secretKey    string
	timeout      time.Duration
}

func New(orchestrator *generate.Orchestrator, st store.Store, secrets secret.Store, secretKey string, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		orchestrator: orchestrator,
		store:        st,
		secrets:      secrets,
		secretKey:    secretKey,
		timeout:      timeout,
	}
}

func NewRunner(i *do.Injector) (*Runner, error) {
	return New(
		do.MustInvoke[*generate.Orchestrator](i),
		do.MustInvoke[store.Store](i),
		do.MustInvoke[secret.Store](i),
		do.MustInvokeNamed[string](i, "credential_key"),
		DefaultTimeout,
	), nil
}

// Run executes one cycle. Progress is logged rather than rendered; the
// interactive call sites pass their own sink through RunWithProgress.
func (r *Runner) Run(ctx context.Context, req generate.Request) (*Result, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("refresh")
	return r.RunWithProgress(ctx, req, func(p float64) {
		logger.Debug("progress", "value", p)
	})
}

func (r *Runner) RunWithProgress(ctx context.Context, req generate.Request, progress generate.ProgressFunc) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	credential, err := r.secrets.Retrieve(ctx, r.secretKey)
	if err != nil {
		return nil, err
	}

	w, err := r.orchestrator.Generate(ctx, req, credential, progress)
	if err != nil {
		return nil, err
	}

	if err := r.store.Put(ctx, *w); err != nil {
		return nil, err
	}

	return &Result{
		Prompt:      w.Prompt,
		Format:      w.Format,
		Bytes:       len(w.Image),
		GeneratedAt: w.GeneratedAt,
	}, nil
}
