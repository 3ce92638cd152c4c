package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hoppxi/lc/pkg/backlight"
	"github.com/hoppxi/lc/pkg/displayinfo"
	"github.com/hoppxi/lc/pkg/operation"
	"github.com/spf13/cobra"
)

var Version = "0.2.0"

type appKey struct{}

func appFrom(cmd *cobra.Command) *app {
	if cmd.Context() == nil {
		return nil
	}
	a, _ := cmd.Context().Value(appKey{}).(*app)
	return a
}

// argsRange is cobra.RangeArgs with a usage error.
func argsRange(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return usageErrorf("%s: expected %d to %d arguments, got %d", cmd.Name(), lo, hi, len(args))
		}
		return nil
	}
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "lc <device> <percentage> | lc <device> -r <delta>",
		Version: Version,
		Short:   "lc sets display backlight brightness",
		Long: `lc - light command: a brightness setter.

Sets the brightness of a backlight under /sys/class/backlight to an integer
percentage of its maximum (1-100), or moves it by a signed number of
percentage points with --relative (-100 to 100).`,
		Example: `  lc intel_backlight 50
  lc intel_backlight -r -10
  lc intel_backlight --relative=+5
  lc list -o json`,
		Args:          argsRange(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		RunE: runSet,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("root", backlight.DefaultRoot, "Backlight class directory")
	pf.String("device", "", "Default device when none is given")
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/lc/lc.yaml)")
	pf.Bool("ddc", false, "Treat the device as an external DDC/CI monitor")
	pf.Bool("logind", false, "Fall back to systemd-logind when sysfs is not writable")
	pf.BoolP("verbose", "v", false, "Log each step to stderr")
	pf.BoolP("brief", "b", false, "Print only the resulting number")

	rootCmd.Flags().StringP("relative", "r", "", "Change brightness by this many percentage points (-100 to 100)")
	rootCmd.Flags().Bool("notify", false, "Show a desktop notification with the new level")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		if cmd != rootCmd {
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "\nDevices:")
		if err := printDevices(cmd, out); err != nil {
			fmt.Fprintf(out, "  unable to list devices: %v\n", err)
		}
	})

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error() + " (negative deltas go after -r, e.g. -r -10)"}
	})

	rootCmd.AddCommand(newListCmd(), newGetCmd(), newWatchCmd())
	return rootCmd
}

func runSet(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	var (
		id   string
		spec backlight.Spec
	)
	if cmd.Flags().Changed("relative") {
		raw, _ := cmd.Flags().GetString("relative")
		delta, err := parseNumber("delta", raw)
		if err != nil {
			return err
		}
		spec = backlight.RelativeSpec(delta)
		switch len(args) {
		case 0:
		case 1:
			id = args[0]
		default:
			return usageErrorf("--relative takes the delta as its value, got extra argument %q", args[1])
		}
	} else {
		var raw string
		switch len(args) {
		case 0:
			return cmd.Help()
		case 1:
			if a.cfg.Device == "" {
				return usageErrorf("missing brightness for device %q", args[0])
			}
			raw = args[0]
		case 2:
			id, raw = args[0], args[1]
		}
		pct, err := parseNumber("brightness", raw)
		if err != nil {
			return err
		}
		spec = backlight.AbsoluteSpec(pct)
	}

	if err := spec.Validate(); err != nil {
		return err
	}
	dev, err := a.resolve(cmd, id)
	if err != nil {
		return err
	}

	res, err := operation.Display.SetBrightness(a.ctrl, dev, spec, a.cfg.Notify)
	var nerr *operation.NotifyError
	if errors.As(err, &nerr) {
		a.log.Warn("brightness changed but notification failed", "err", nerr.Err)
	} else if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if brief, _ := cmd.Flags().GetBool("brief"); brief {
		fmt.Fprintln(out, res.Target)
		return nil
	}
	fmt.Fprintf(out, "%s: %d/%d (%d%%)\n", dev.ID, res.Target, res.Max, res.Target*100/res.Max)
	return nil
}

// parseNumber reads a base-10 integer with an optional sign and "%" suffix.
func parseNumber(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(raw, "%"))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", backlight.ErrInvalidArgument, field, raw)
	}
	return n, nil
}

func printDevices(cmd *cobra.Command, w io.Writer) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	infos, err := displayinfo.GetDisplayInfo(a.registry, a.ctrl)
	if err != nil {
		return err
	}
	return displayinfo.Write(w, infos, "table")
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

const (
	exitOK = iota
	exitFailure
	exitUsage
	exitNotFound
	exitIO
	exitUnsupported
)

func exitCode(err error) int {
	var (
		ue *usageError
		ie *backlight.IOError
		pe *backlight.ParseError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue), errors.Is(err, backlight.ErrInvalidArgument):
		return exitUsage
	case errors.Is(err, backlight.ErrDeviceNotFound), errors.Is(err, backlight.ErrInvalidID):
		return exitNotFound
	case errors.Is(err, backlight.ErrUnsupported):
		return exitUnsupported
	case errors.As(err, &ie), errors.As(err, &pe), errors.Is(err, backlight.ErrZeroRange):
		return exitIO
	default:
		return exitFailure
	}
}

// report prints err with a remediation hint and returns the exit code.
func report(cmd *cobra.Command, err error) int {
	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "%s: %v\n", cmd.Root().Name(), err)

	switch {
	case errors.Is(err, backlight.ErrInvalidArgument):
		fmt.Fprintln(errOut, "Hint: brightness is an integer percentage in [1, 100]; --relative takes a delta in [-100, 100].")
	case errors.Is(err, backlight.ErrDeviceNotFound), errors.Is(err, backlight.ErrInvalidID):
		fmt.Fprintln(errOut, "Available devices:")
		if lerr := printDevices(cmd, errOut); lerr != nil {
			fmt.Fprintf(errOut, "  unable to list devices: %v\n", lerr)
		}
	}
	return exitCode(err)
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	c, err := rootCmd.ExecuteC()
	if c != nil {
		if a := appFrom(c); a != nil {
			defer a.Close()
		}
	}
	if err != nil {
		if c == nil {
			c = rootCmd
		}
		return report(c, err)
	}
	return exitOK
}

func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
