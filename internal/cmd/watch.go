package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoppxi/lc/internal/subscribe"
	"github.com/hoppxi/lc/internal/watchers"
	"github.com/hoppxi/lc/pkg/backlight"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch [device]",
		Short: "Print the brightness of a device every time it changes",
		Args:  argsRange(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			var id string
			if len(args) == 1 {
				id = args[0]
			}
			dev, err := a.resolve(cmd, id)
			if err != nil {
				return err
			}

			// Fail on a missing device before subscribing to anything.
			if _, err := a.ctrl.Level(dev); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var sources []<-chan struct{}
			if ev, err := subscribe.DisplayEvents(ctx, dev.ID, a.log); err != nil {
				a.log.Warn("kernel uevents unavailable", "err", err)
			} else {
				sources = append(sources, ev)
			}
			path, err := backlight.BrightnessPath(a.cfg.Root, dev.ID)
			if err != nil {
				return err
			}
			if ev, err := subscribe.FileEvents(ctx, path, a.log); err != nil {
				a.log.Debug("file events unavailable", "path", path, "err", err)
			} else {
				sources = append(sources, ev)
			}
			if interval, _ := cmd.Flags().GetDuration("interval"); interval > 0 {
				sources = append(sources, subscribe.PollEvents(ctx, interval, func() (int, error) {
					return a.ctrl.ReadCurrent(dev)
				}))
			}
			if len(sources) == 0 {
				return errors.New("no change notification source available")
			}

			out := cmd.OutOrStdout()
			brief, _ := cmd.Flags().GetBool("brief")
			return watchers.StartDisplayWatcher(ctx, a.ctrl, dev, sources, func(lvl backlight.Level) {
				if brief {
					fmt.Fprintln(out, int(lvl.Percent))
					return
				}
				fmt.Fprintf(out, "%s: %d/%d (%.1f%%)\n", dev.ID, lvl.Current, lvl.Max, lvl.Percent)
			})
		},
	}
	watchCmd.Flags().Duration("interval", time.Second, "Also poll the brightness file this often (0 disables)")
	return watchCmd
}
