package registry

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	v1 "github.com/f9-o/hotkeys/api/v1"
)

// debounce collapses the burst of events editors emit for a single save.
const debounce = 150 * time.Millisecond

// Watch reloads the manifest at path whenever it changes and hands the new
// command list to onChange. Invalid manifests are logged and skipped; the
// previous list stays in effect. Watch blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file so that editors
// which save by rename keep triggering reloads.
func Watch(ctx context.Context, path string, log *slog.Logger, onChange func([]v1.Command)) error {
	if log == nil {
		log = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	log.Debug("watching registry", "path", abs)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			pending = timer.C

		case <-pending:
			pending = nil
			cmds, err := Load(abs)
			if err != nil {
				log.Warn("registry reload failed; keeping previous commands", "path", abs, "err", err)
				continue
			}
			log.Info("registry reloaded", "commands", len(cmds))
			onChange(cmds)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("registry watcher error", "err", err)
		}
	}
}
