package subscribe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path"

	"golang.org/x/sys/unix"
)

// Uevent is a parsed kernel object event.
type Uevent struct {
	Action string
	Header string
	Env    map[string]string
}

// ParseUevent splits a raw NETLINK_KOBJECT_UEVENT message. The first
// NUL-separated field is the "action@devpath" header, the rest KEY=VALUE.
func ParseUevent(msg []byte) (Uevent, bool) {
	fields := bytes.Split(msg, []byte{0})
	if len(fields) == 0 || !bytes.ContainsRune(fields[0], '@') {
		return Uevent{}, false
	}

	ev := Uevent{Header: string(fields[0]), Env: make(map[string]string, len(fields))}
	for _, f := range fields[1:] {
		k, v, ok := bytes.Cut(f, []byte{'='})
		if !ok {
			continue
		}
		ev.Env[string(k)] = string(v)
	}
	ev.Action = ev.Env["ACTION"]
	return ev, true
}

// IsBacklightChange reports whether ev is a change of backlight device id.
// An empty id matches every backlight device.
func (ev Uevent) IsBacklightChange(id string) bool {
	if ev.Env["SUBSYSTEM"] != "backlight" || ev.Action != "change" {
		return false
	}
	return id == "" || path.Base(ev.Env["DEVPATH"]) == id
}

// DisplayEvents listens for backlight change uevents of device id until ctx
// is done. Bursts are coalesced into one pending notification.
func DisplayEvents(ctx context.Context, id string, logger *slog.Logger) (<-chan struct{}, error) {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_KOBJECT_UEVENT)
	if err != nil {
		return nil, err
	}

	addr := &unix.SockaddrNetlink{
		Family: unix.AF_NETLINK,
		Groups: 1, // kernel broadcast group
	}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, err
	}
	// Wake up once a second so a cancelled ctx is noticed.
	tv := unix.Timeval{Sec: 1}
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		unix.Close(fd)
		return nil, err
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer unix.Close(fd)

		buf := make([]byte, 8192)
		for ctx.Err() == nil {
			n, _, err := unix.Recvfrom(fd, buf, 0)
			if retryable(err) {
				if errors.Is(err, unix.ENOBUFS) && logger != nil {
					logger.Debug("netlink receive queue overflowed, events dropped")
				}
				continue
			}
			if err != nil {
				if logger != nil {
					logger.Warn("netlink receive failed", "err", err)
				}
				return
			}

			ev, ok := ParseUevent(buf[:n])
			if !ok || !ev.IsBacklightChange(id) {
				continue
			}
			select {
			case events <- struct{}{}:
			default:
			}
		}
	}()

	return events, nil
}

// retryable reports whether a netlink receive error leaves the socket usable.
// ENOBUFS means the receive queue overflowed and some events were lost.
func retryable(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) || errors.Is(err, unix.ENOBUFS)
}
