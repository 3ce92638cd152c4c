package cmd

import (
	"io"
	"log/slog"

	"github.com/hoppxi/lc/internal/manager"
	"github.com/hoppxi/lc/pkg/backlight"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app is everything a command needs for one invocation.
type app struct {
	cfg      manager.Config
	log      *slog.Logger
	registry *backlight.Registry
	ctrl     *backlight.Controller
	closers  []io.Closer
}

// newFs is swapped by tests to run against a memory filesystem.
var newFs = afero.NewOsFs

func newApp(cmd *cobra.Command) (*app, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := manager.NewConfigManager().Load(cmd.Flags(), file)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}

	fsys := newFs()
	a := &app{cfg: cfg, log: logger, registry: backlight.NewRegistry(fsys, cfg.Root, logger)}

	var builtin backlight.Driver = backlight.NewSysfs(fsys, cfg.Root, logger)
	if cfg.Logind {
		l, err := backlight.ConnectLogind(builtin, logger)
		if err != nil {
			logger.Warn("logind unavailable, writing sysfs directly", "err", err)
		} else {
			builtin = l
			a.closers = append(a.closers, l)
		}
	}
	a.ctrl = backlight.NewController(logger, builtin, backlight.DDC{})
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.Debug("close failed", "err", err)
		}
	}
}

// resolve picks the device named by id, or the configured default.
func (a *app) resolve(cmd *cobra.Command, id string) (backlight.Device, error) {
	if id == "" {
		id = a.cfg.Device
	}
	if id == "" {
		return backlight.Device{}, usageErrorf("no device given and no default device configured")
	}
	kind := backlight.Builtin
	if ddc, _ := cmd.Flags().GetBool("ddc"); ddc {
		kind = backlight.ExternalDDC
	}
	return a.registry.ResolveKind(kind, id)
}
