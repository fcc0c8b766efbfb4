package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vvakame/gqldocgen/internal/log"
)

// Options configures Run.
type Options struct {
	// Paths returns the files to watch. It is called again after every change
	// so newly matched files are picked up.
	Paths func() ([]string, error)
	// Match reports whether a newly created file should trigger OnChange.
	// Created files are ignored when Match is nil.
	Match func(file string) bool
	// OnChange is called after a batch of events has settled.
	OnChange func(ctx context.Context) error
	// Debounce is the quiet period before OnChange is called.
	Debounce time.Duration
}

const defaultDebounce = 100 * time.Millisecond

// Run watches the directories containing the files given by opts.Paths until
// ctx is done. OnChange errors are logged, not returned.
func Run(ctx context.Context, opts *Options) error {
	logger := log.FromContext(ctx)

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool)
	files := make(map[string]bool)
	refresh := func() error {
		paths, err := opts.Paths()
		if err != nil {
			return err
		}
		files = make(map[string]bool, len(paths))
		for _, p := range paths {
			abs, err := filepath.Abs(p)
			if err != nil {
				return err
			}
			files[abs] = true
			dir := filepath.Dir(abs)
			if watched[dir] {
				continue
			}
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("unable to watch %s: %w", dir, err)
			}
			watched[dir] = true
			logger.V(log.Debug).Info("watching", "dir", dir)
		}
		return nil
	}
	if err := refresh(); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !relevant(event, files, abs, opts.Match) {
				continue
			}
			logger.V(log.Debug).Info("file changed", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(err, "watcher error")

		case <-fire:
			fire = nil
			if err := refresh(); err != nil {
				logger.Error(err, "failed to refresh watched files")
			}
			if err := opts.OnChange(ctx); err != nil {
				logger.Error(err, "failed to regenerate")
			}
		}
	}
}

// relevant reports whether event touches a watched file, or creates a new
// file accepted by match.
func relevant(event fsnotify.Event, files map[string]bool, abs string, match func(file string) bool) bool {
	if files[abs] {
		return true
	}
	if !event.Has(fsnotify.Create) || match == nil {
		return false
	}
	return match(abs)
}
