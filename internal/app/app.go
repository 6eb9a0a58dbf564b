// Package app implements the application layer for dashci.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/morsellabs/dashci/internal/adapters/detector"
	"github.com/morsellabs/dashci/internal/adapters/linear"
	"github.com/morsellabs/dashci/internal/adapters/telemetry"
	"github.com/morsellabs/dashci/internal/adapters/watcher"
	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports"
	"github.com/morsellabs/dashci/internal/engine/pipeline"
	"github.com/morsellabs/dashci/internal/ui/output"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	provisioner  ports.EnvironmentProvisioner
	installer    ports.DependencyInstaller
	runner       ports.TestRunner
	logger       ports.Logger
	watcher      ports.Watcher

	newRenderer func(opts RunOptions) ports.Renderer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	provisioner ports.EnvironmentProvisioner,
	installer ports.DependencyInstaller,
	runner ports.TestRunner,
	log ports.Logger,
	fsWatcher ports.Watcher,
) *App {
	a := &App{
		configLoader: loader,
		provisioner:  provisioner,
		installer:    installer,
		runner:       runner,
		logger:       log,
		watcher:      fsWatcher,
	}
	a.newRenderer = a.defaultRenderer
	return a
}

// WithRendererFactory overrides renderer construction. Used by tests to
// capture output.
func (a *App) WithRendererFactory(factory func(opts RunOptions) ports.Renderer) *App {
	a.newRenderer = factory
	return a
}

// RunOptions configuration for the Run and Setup methods.
type RunOptions struct {
	// NoCache forces dependency installation even when the environment stamp
	// matches the manifest.
	NoCache bool

	// OutputMode selects the rendering style: auto, pretty, plain, or ci.
	OutputMode string
}

// Run executes the full workflow: provision the environment, install the
// manifest, then run the test suite. The returned error preserves the test
// runner's literal exit status.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	ws, err := a.loadWorkspace()
	if err != nil {
		return err
	}
	return a.execute(ctx, ws, opts, true)
}

// Setup provisions the environment and installs dependencies without running
// the test suite.
func (a *App) Setup(ctx context.Context, opts RunOptions) error {
	ws, err := a.loadWorkspace()
	if err != nil {
		return err
	}
	return a.execute(ctx, ws, opts, false)
}

// Watch runs the workflow once, then re-runs it whenever relevant workspace
// files change. Failed runs are reported and the loop continues.
func (a *App) Watch(ctx context.Context, opts RunOptions) error {
	ws, err := a.loadWorkspace()
	if err != nil {
		return err
	}

	// The pipeline writes into the environment directory; watching it would
	// cause an endless re-run loop.
	if ig, ok := a.watcher.(interface{ IgnorePath(string) }); ok {
		ig.IgnorePath(ws.EnvPath())
	}

	if err := a.watcher.Start(ctx, ws.Root); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() { _ = a.watcher.Stop() }()

	trigger := make(chan struct{}, 1)
	deb := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.logger.Info(fmt.Sprintf("%d file(s) changed", len(paths)))
		select {
		case trigger <- struct{}{}:
		default:
		}
	})

	go func() {
		for ev := range a.watcher.Events() {
			if isRelevantChange(ws, ev.Path) {
				deb.Add(ev.Path)
			}
		}
	}()

	a.runWatched(ctx, ws, opts)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			a.runWatched(ctx, ws, opts)
		}
	}
}

// runWatched executes one watched iteration, reporting failures without
// terminating the loop.
func (a *App) runWatched(ctx context.Context, ws domain.Workspace, opts RunOptions) {
	if err := a.execute(ctx, ws, opts, true); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error(err)
	}
	a.logger.Info("watching for changes...")
}

// isRelevantChange reports whether a changed path should trigger a re-run.
func isRelevantChange(ws domain.Workspace, path string) bool {
	switch path {
	case ws.ManifestPath(), ws.TestEntryPath(), filepath.Join(ws.Root, domain.ConfigFileName):
		return true
	}
	return strings.HasSuffix(path, ".py") || strings.HasSuffix(path, ".csv")
}

func (a *App) loadWorkspace() (domain.Workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return domain.Workspace{}, zerr.Wrap(err, "failed to determine working directory")
	}

	ws, err := a.configLoader.Load(cwd)
	if err != nil {
		return domain.Workspace{}, zerr.Wrap(err, "failed to load configuration")
	}
	return ws, nil
}

// execute runs the pipeline with a renderer attached, returning the
// pipeline's error with exit status intact.
func (a *App) execute(ctx context.Context, ws domain.Workspace, opts RunOptions, withTests bool) error {
	renderer := a.newRenderer(opts)

	// Bridge OTel spans to the renderer so stage lifecycles render live.
	bridge := telemetry.NewBridge(renderer)
	setupOTel(bridge)

	tracer := telemetry.NewOTelTracer("dashci").WithRenderer(renderer)
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	pipe := pipeline.New(tracer)
	stages := a.stages(ws, opts, withTests)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "pipeline panic: %v\n", r)
			}
			_ = renderer.Stop()
		}()

		return pipe.Run(ctx, stages)
	})

	return g.Wait()
}

// runState carries results between stages.
type runState struct {
	env domain.Environment
}

func (a *App) stages(ws domain.Workspace, opts RunOptions, withTests bool) []pipeline.Stage {
	state := &runState{}

	stages := []pipeline.Stage{
		{
			Name: "provision environment",
			Run: func(ctx context.Context, out io.Writer) error {
				env, err := a.provisioner.EnsureEnvironment(ctx, ws)
				if err != nil {
					return err
				}
				state.env = env

				if env.Created {
					fmt.Fprintf(out, "created environment at %s\n", env.Dir)
				} else {
					fmt.Fprintf(out, "reusing environment at %s\n", env.Dir)
				}
				return nil
			},
		},
		{
			Name: "install dependencies",
			Run: func(ctx context.Context, out io.Writer) error {
				if state.env.Fresh && !opts.NoCache {
					fmt.Fprintln(out, "dependencies up to date")
					return nil
				}

				if err := a.installer.Install(ctx, ws, state.env, out, out); err != nil {
					return err
				}

				// A failed stamp write only degrades the next run to a full
				// install.
				if err := a.provisioner.RecordStamp(ws, state.env); err != nil {
					a.logger.Warn("failed to record environment stamp: " + err.Error())
				}
				return nil
			},
		},
	}

	if withTests {
		stages = append(stages, pipeline.Stage{
			Name: "run tests",
			Run: func(ctx context.Context, out io.Writer) error {
				_, err := a.runner.Run(ctx, ws, state.env, out, out)
				return err
			},
		})
	}

	return stages
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Env removes the isolated environment directory.
	Env bool
	// Cache removes recorded environment stamps.
	Cache bool
}

// Clean removes the environment and cached metadata based on the provided
// options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	ws, err := a.loadWorkspace()
	if err != nil {
		return err
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Env {
		remove(ws.EnvPath(), "environment directory")
	}

	if options.Cache {
		remove(ws.StampCachePath(), "environment stamp cache")
	}

	return errs
}

// defaultRenderer builds the renderer for the resolved output mode.
func (a *App) defaultRenderer(opts RunOptions) ports.Renderer {
	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.OutputMode)

	if mode == detector.ModePretty {
		return linear.NewRenderer(os.Stdout, os.Stderr, linear.WithProfile(output.ColorProfile()))
	}
	return linear.NewRenderer(os.Stdout, os.Stderr)
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
