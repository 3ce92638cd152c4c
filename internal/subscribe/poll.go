package subscribe

import (
	"context"
	"time"
)

// PollEvents calls read every interval and reports when the value changes.
// It is the fallback for drivers that raise neither uevents nor inotify
// events. Read errors are treated as "no change".
func PollEvents(ctx context.Context, interval time.Duration, read func() (int, error)) <-chan struct{} {
	events := make(chan struct{}, 1)

	go func() {
		defer close(events)

		prev, err := read()
		known := err == nil

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			cur, err := read()
			if err != nil {
				continue
			}
			if known && cur == prev {
				continue
			}
			prev, known = cur, true
			select {
			case events <- struct{}{}:
			default:
			}
		}
	}()

	return events
}
