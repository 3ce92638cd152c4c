package subscribe

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// FileEvents reports writes to path until ctx is done. The kernel does not
// raise inotify events for sysfs attributes changed by a driver, so this
// complements DisplayEvents rather than replacing it; it catches writes made
// through the filesystem and works on ordinary directories.
func FileEvents(ctx context.Context, path string, logger *slog.Logger) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				select {
				case events <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				if logger != nil {
					logger.Warn("file watch error", "path", path, "err", err)
				}
			}
		}
	}()

	return events, nil
}
