package operation

import (
	"fmt"

	"github.com/hoppxi/lc/pkg/backlight"
	"github.com/ncruces/zenity"
)

type display struct {
	notify func(title, text string) error
}

// Display is the exported instance.
var Display = &display{notify: desktopNotify}

func desktopNotify(title, text string) error {
	return zenity.Notify(text, zenity.Title(title), zenity.Icon(zenity.InfoIcon))
}

// SetBrightness applies spec to dev. With notify set, the new level is also
// shown as a desktop notification; a failed notification does not fail the
// change.
func (d *display) SetBrightness(ctrl *backlight.Controller, dev backlight.Device, spec backlight.Spec, notify bool) (backlight.Result, error) {
	res, err := ctrl.Apply(dev, spec)
	if err != nil {
		return backlight.Result{}, fmt.Errorf("failed to set brightness: %w", err)
	}

	if notify {
		pct := res.Target * 100 / res.Max
		if nerr := d.notify("Brightness", fmt.Sprintf("%s: %d%%", dev.ID, pct)); nerr != nil {
			return res, &NotifyError{Err: nerr}
		}
	}
	return res, nil
}

// NotifyError reports a brightness change that succeeded but could not be
// announced.
type NotifyError struct {
	Err error
}

func (e *NotifyError) Error() string { return "notification failed: " + e.Err.Error() }

func (e *NotifyError) Unwrap() error { return e.Err }
