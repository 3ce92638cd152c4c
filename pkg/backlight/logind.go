package backlight

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"

	"github.com/godbus/dbus/v5"
)

const (
	logindDest      = "org.freedesktop.login1"
	logindSession   = "/org/freedesktop/login1/session/auto"
	logindSetMethod = "org.freedesktop.login1.Session.SetBrightness"
)

// SetBrightness takes a uint32.
var logindMax = uint64(math.MaxUint32)

// Logind wraps a driver and retries writes the kernel rejected for lack of
// permission through systemd-logind, which lets the owner of the active
// session set backlight brightness without root. Reads pass through.
type Logind struct {
	Driver
	obj  dbus.BusObject
	conn *dbus.Conn
	log  *slog.Logger
}

// ConnectLogind connects to the system bus and wraps inner.
func ConnectLogind(inner Driver, logger *slog.Logger) (*Logind, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	l := NewLogind(inner, conn.Object(logindDest, logindSession), logger)
	l.conn = conn
	return l, nil
}

// NewLogind wraps inner with an existing logind session object.
func NewLogind(inner Driver, obj dbus.BusObject, logger *slog.Logger) *Logind {
	return &Logind{Driver: inner, obj: obj, log: orDiscard(logger)}
}

func (l *Logind) WriteCurrent(dev Device, value int) error {
	err := l.Driver.WriteCurrent(dev, value)
	if err == nil || !errors.Is(err, fs.ErrPermission) {
		return err
	}
	if uint64(value) > logindMax {
		return &ArgumentError{Field: "brightness", Value: value, Min: 0, Max: int(logindMax)}
	}
	l.log.Debug("sysfs write denied, using logind", "device", dev.ID, "value", value)
	call := l.obj.Call(logindSetMethod, 0, "backlight", dev.ID, uint32(value))
	if call.Err != nil {
		return fmt.Errorf("logind SetBrightness %s: %w (direct write: %v)", dev.ID, call.Err, err)
	}
	return nil
}

func (l *Logind) Close() error {
	if l.conn == nil {
		return nil
	}
	return l.conn.Close()
}
