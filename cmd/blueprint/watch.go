package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/blueprint/compiler/gen"
)

func (a *app) watchCmd() *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch <schema>",
		Short: "Regenerate the bundle whenever the schema document changes, overwriting existing files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.genConfig(a.settings.Out, gen.WithForce())
			if err != nil {
				return err
			}
			return a.watch(cmd.Context(), args[0], gen.NewWriter(cfg), debounce)
		},
	}
	cmd.Flags().StringVarP(&a.out, "out", "o", ".", "Laravel project root to write into (env BLUEPRINT_OUT)")
	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "quiet period before regenerating")
	return cmd
}

// watch generates once, then again after every burst of writes to path,
// until ctx is done. Generation failures are logged and do not stop the
// watcher.
func (a *app) watch(ctx context.Context, path string, w *gen.Writer, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()
	// Editors often replace files on save, so the directory is watched.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	regenerate := func() {
		models, err := a.models(path)
		if err == nil {
			err = w.WriteDir(ctx, models)
		}
		if err != nil {
			a.logger.Error("regenerate failed", "path", path, "error", err)
		}
	}
	regenerate()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			a.logger.Debug("schema changed", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", "error", err)
		case <-timer.C:
			regenerate()
		}
	}
}
