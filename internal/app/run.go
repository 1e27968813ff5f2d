package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/fontpackgen/internal/builder"
	"github.com/vk/fontpackgen/internal/ctxlog"
	"github.com/vk/fontpackgen/internal/executor"
	"github.com/vk/fontpackgen/internal/fsutil"
	"github.com/vk/fontpackgen/internal/inmemorystore"
	"github.com/vk/fontpackgen/internal/localexecutor"
	"github.com/vk/fontpackgen/internal/makefile"
	"github.com/vk/fontpackgen/internal/manifest"
	"github.com/vk/fontpackgen/internal/scheduler"
)

// Run assembles the build graph and writes it out. Nothing is written
// unless the whole graph assembled; with Run set, the graph is then
// executed locally.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	plan, err := builder.Build(ctx, a.pack)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}

	var names *manifest.Manifest
	if a.config.ManifestPath != "" {
		names, err = manifest.Build(a.pack)
		if err != nil {
			return fmt.Errorf("failed to build name manifest: %w", err)
		}
	}

	// Every output is rendered before the first rename.
	outputs, err := a.prepareOutputs(plan, names)
	if err != nil {
		return err
	}
	if err := fsutil.CommitAll(outputs...); err != nil {
		return err
	}
	a.logger.Info("Makefile written.", "path", a.config.OutputPath, "targets", plan.Graph.Len())
	if names != nil {
		a.logger.Info("Name manifest written.", "path", a.config.ManifestPath, "fonts", len(names.Fonts))
	}

	if a.config.Run {
		if err := a.execute(ctx, plan); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// prepareOutputs renders the manifest and the Makefile into pending files.
// The Makefile comes last so it is committed last.
func (a *App) prepareOutputs(plan *builder.Plan, names *manifest.Manifest) ([]*fsutil.PendingFile, error) {
	var outputs []*fsutil.PendingFile
	if names != nil {
		p, err := manifest.Prepare(a.config.ManifestPath, names)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, p)
	}
	p, err := makefile.Prepare(a.config.OutputPath, plan.Variables, plan.Graph)
	if err != nil {
		fsutil.DiscardAll(outputs...)
		return nil, err
	}
	return append(outputs, p), nil
}

func (a *App) execute(ctx context.Context, plan *builder.Plan) error {
	sched, err := scheduler.New(plan.Graph, a.config.Goals...)
	if err != nil {
		return err
	}

	runner := a.runner
	if runner == nil {
		runner = executor.NewShellRunner(a.config.WorkDir, executor.Variables(plan.Variables, os.LookupEnv))
	}

	a.logger.Info("Starting concurrent execution...", "goals", a.config.Goals)
	exec := localexecutor.New(sched, runner, inmemorystore.New(), localexecutor.Options{
		Jobs:      a.pack.Jobs,
		KeepGoing: a.config.KeepGoing,
	})
	if err := exec.Execute(ctx); err != nil {
		return err
	}
	a.logger.Info("Execution finished.")
	return nil
}
