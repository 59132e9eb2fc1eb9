package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syssam/variantgen/compiler/load"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Regenerate the variant types whenever a descriptor changes",
		Long: `Generate the variant types once, then watch the descriptor directories and
regenerate after every change. Rapid changes are debounced (see the debounce
setting, 500ms by default). Violations are reported but do not stop the
watch. Interrupt to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := newWatcher(a, a.paths(args), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer w.Close()
			return w.Run(cmd.Context())
		},
	}
}

// watcher regenerates the descriptors of a set of directories when they
// change.
type watcher struct {
	app      *app
	paths    []string
	fs       *fsnotify.Watcher
	out, err io.Writer
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	trigger chan struct{}
}

func newWatcher(a *app, paths []string, out, errOut io.Writer) (*watcher, error) {
	dirs, err := watchDirs(paths)
	if err != nil {
		return nil, err
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, errors.Wrapf(err, "watch %s", dir)
		}
	}
	d := a.opts.Debounce
	if d <= 0 {
		d = 500 * time.Millisecond
	}
	return &watcher{
		app:      a,
		paths:    paths,
		fs:       fs,
		out:      out,
		err:      errOut,
		debounce: d,
		trigger:  make(chan struct{}, 1),
	}, nil
}

// watchDirs returns the directories holding the descriptors of paths.
func watchDirs(paths []string) ([]string, error) {
	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "watch %s", p)
		}
		if !fi.IsDir() {
			p = filepath.Dir(p)
		}
		dirs = append(dirs, filepath.Clean(p))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs), nil
}

// Run generates once and then after every debounced change, until ctx is
// done.
func (w *watcher) Run(ctx context.Context) error {
	w.regenerate(ctx)
	fmt.Fprintf(w.out, "watching %d director(ies), press Ctrl+C to stop\n", len(w.fs.WatchList()))
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.app.log.Debug("descriptor changed",
				zap.String("file", event.Name),
				zap.String("op", event.Op.String()))
			w.schedule()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.app.log.Warn("watch error", zap.Error(err))
		case <-w.trigger:
			w.regenerate(ctx)
		}
	}
}

// relevant reports whether the event modifies a descriptor file.
func (w *watcher) relevant(event fsnotify.Event) bool {
	if !load.IsDescriptorFile(event.Name) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// schedule triggers a regeneration once no change happened for the debounce
// period.
func (w *watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
		}
	})
}

func (w *watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// regenerate runs a generation and reports its outcome. Failures are
// reported and keep the watch going.
func (w *watcher) regenerate(ctx context.Context) {
	start := time.Now()
	sum, err := w.app.generate(ctx, w.paths, w.err)
	switch {
	case ctx.Err() != nil:
	case err != nil:
		fmt.Fprintf(w.err, "Error: %v\n", err)
		w.app.log.Debug("generation failed", zap.Error(err))
	default:
		fmt.Fprintf(w.out, "%s (%s)\n", sum, time.Since(start).Round(time.Millisecond))
	}
}

// Close stops watching.
func (w *watcher) Close() error {
	w.stopTimer()
	return w.fs.Close()
}
