// Package app implements the application layer for envsync.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"go.trai.ch/envsync/internal/adapters/linear"
	"go.trai.ch/envsync/internal/adapters/pip"
	"go.trai.ch/envsync/internal/adapters/telemetry"
	"go.trai.ch/envsync/internal/adapters/watcher"
	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/envsync/internal/engine/sequencer"
	"golang.org/x/sync/errgroup"
)

// Step names as they appear in the plan and the rendered output.
const (
	StepUpgrade = "toolchain upgrade"
	StepInstall = "dependency install"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	store        ports.RunInfoStore
	watcher      ports.Watcher

	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	store ports.RunInfoStore,
	manifestWatcher ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		store:        store,
		watcher:      manifestWatcher,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithStreams overrides the output streams. Used for testing.
func (a *App) WithStreams(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// Sync runs the full bootstrap: toolchain upgrade, then dependency
// install, strictly in that order and fail-fast. The returned error keeps
// the failing delegated tool's exit status recoverable via
// domain.ExitStatus.
func (a *App) Sync(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	a.logManifestState(cfg)

	if err := a.runPlan(ctx, a.fullPlan(cfg)); err != nil {
		return err
	}

	a.recordSuccess(cfg)
	return nil
}

// Watch runs one full bootstrap, then re-runs the install step whenever
// the manifest changes. The toolchain upgrade is not repeated inside the
// loop. Watch only returns on context cancellation or watcher failure; a
// failing bootstrap is logged and the loop keeps going.
func (a *App) Watch(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	a.logManifestState(cfg)

	if err := a.runPlan(ctx, a.fullPlan(cfg)); err != nil {
		if ctx.Err() != nil {
			return err
		}
		a.logger.Error(err)
	} else {
		a.recordSuccess(cfg)
	}

	if err := a.watcher.Start(ctx, cfg.Manifest); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})

	go func() {
		for range a.watcher.Events() {
			debouncer.Add()
		}
	}()

	a.logger.Info("watching manifest for changes: " + cfg.Manifest)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			if err := a.runPlan(ctx, a.installPlan(cfg)); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				a.logger.Error(err)
				continue
			}
			a.recordSuccess(cfg)
		}
	}
}

func (a *App) loadConfig() (*domain.Config, error) {
	return a.configLoader.Load(".")
}

// fullPlan is the ordered two-step bootstrap.
func (a *App) fullPlan(cfg *domain.Config) []sequencer.Step {
	tool := pip.New(a.executor, cfg)
	return []sequencer.Step{
		{
			Name: StepUpgrade,
			Run: func(ctx context.Context, stdout, stderr io.Writer) error {
				return tool.Upgrade(ctx, cfg.Toolchain, stdout, stderr)
			},
		},
		{
			Name: StepInstall,
			Run: func(ctx context.Context, stdout, stderr io.Writer) error {
				return tool.Install(ctx, cfg.Manifest, stdout, stderr)
			},
		},
	}
}

// installPlan re-runs only the install step (watch mode).
func (a *App) installPlan(cfg *domain.Config) []sequencer.Step {
	return a.fullPlan(cfg)[1:]
}

// runPlan executes the steps with rendering and telemetry wired together:
// the OTel bridge forwards span lifecycle events to the renderer, and the
// spans stream delegated tool output to it.
func (a *App) runPlan(ctx context.Context, steps []sequencer.Step) error {
	renderer := linear.NewRenderer(a.stdout, a.stderr)

	bridge := telemetry.NewBridge(renderer)
	telemetry.Setup(bridge)
	tracer := telemetry.NewOTelTracer("envsync").WithRenderer(renderer)

	seq := sequencer.New(tracer)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	var runErr error
	g.Go(func() error {
		runErr = seq.Run(gctx, steps)
		// Drain buffered span output before the final flush.
		_ = tracer.Shutdown(context.WithoutCancel(gctx))
		_ = renderer.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return runErr
}

// logManifestState reports whether the manifest changed since the last
// successful sync. Purely informational: the run proceeds either way,
// relying on the delegated tools' own idempotence.
func (a *App) logManifestState(cfg *domain.Config) {
	digest, err := domain.ManifestDigest(cfg.Manifest)
	if err != nil || digest == "" {
		return
	}

	info, err := a.store.Get(cfg.Root)
	if err != nil {
		a.logger.Warn("could not read previous run info: " + err.Error())
		return
	}

	if info != nil && info.ManifestDigest == digest {
		a.logger.Info("manifest unchanged since last successful sync")
	}
}

// recordSuccess persists the run info. Failure to record is not a
// bootstrap failure.
func (a *App) recordSuccess(cfg *domain.Config) {
	digest, err := domain.ManifestDigest(cfg.Manifest)
	if err != nil {
		a.logger.Warn("could not digest manifest: " + err.Error())
		return
	}

	if err := a.store.Put(cfg.Root, domain.RunInfo{
		ManifestDigest: digest,
		Toolchain:      cfg.Toolchain,
		CompletedAt:    time.Now().UTC(),
	}); err != nil {
		a.logger.Warn("could not record run info: " + err.Error())
	}
}
