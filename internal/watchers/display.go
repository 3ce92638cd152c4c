package watchers

import (
	"context"
	"sync"

	"github.com/hoppxi/lc/pkg/backlight"
)

// LevelReader is the part of the controller a watcher needs.
type LevelReader interface {
	Level(dev backlight.Device) (backlight.Level, error)
}

// StartDisplayWatcher reports the level of dev once, then again after every
// event on any of sources whenever it differs from the last report. It
// returns when ctx is done, when every source is closed, or on the first
// read error.
func StartDisplayWatcher(ctx context.Context, r LevelReader, dev backlight.Device, sources []<-chan struct{}, report func(backlight.Level)) error {
	last, err := r.Level(dev)
	if err != nil {
		return err
	}
	report(last)

	events := merge(ctx, sources)
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			lvl, err := r.Level(dev)
			if err != nil {
				return err
			}
			if lvl != last {
				report(lvl)
				last = lvl
			}
		}
	}
}

func merge(ctx context.Context, sources []<-chan struct{}) <-chan struct{} {
	out := make(chan struct{}, 1)
	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src <-chan struct{}) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-src:
					if !ok {
						return
					}
					select {
					case out <- struct{}{}:
					default:
					}
				}
			}
		}(src)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
