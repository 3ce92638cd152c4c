package backlight

import (
	"errors"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/spf13/afero"
)

// Registry discovers backlight devices under the sysfs class directory.
type Registry struct {
	fs   afero.Fs
	root string
	log  *slog.Logger
}

func NewRegistry(fsys afero.Fs, root string, logger *slog.Logger) *Registry {
	if root == "" {
		root = DefaultRoot
	}
	return &Registry{fs: fsys, root: root, log: orDiscard(logger)}
}

// Devices returns one Builtin device per entry of the class directory,
// sorted by ID. A missing directory yields no devices and no error.
func (r *Registry) Devices() ([]Device, error) {
	names, err := r.readNames()
	if errors.Is(err, fs.ErrNotExist) {
		r.log.Debug("backlight root missing", "root", r.root)
		return nil, nil
	}
	if err != nil {
		return nil, &IOError{Op: "list", Path: r.root, Err: err}
	}

	sort.Strings(names)
	devices := make([]Device, 0, len(names))
	for _, name := range names {
		// Entries are symlinks in sysfs, so they are not filtered by type.
		if err := ValidateID(name); err != nil {
			r.log.Debug("skipping entry", "name", name, "err", err)
			continue
		}
		devices = append(devices, newDevice(Builtin, name))
	}
	return devices, nil
}

func (r *Registry) readNames() ([]string, error) {
	dir, err := r.fs.Open(r.root)
	if err != nil {
		return nil, err
	}
	defer dir.Close()
	return dir.Readdirnames(-1)
}

// Resolve builds a Builtin device for id without checking that it exists.
// Only an unsafe id fails here; a missing device shows up on first read.
func (r *Registry) Resolve(id string) (Device, error) {
	return r.ResolveKind(Builtin, id)
}

func (r *Registry) ResolveKind(kind Kind, id string) (Device, error) {
	if err := ValidateID(id); err != nil {
		return Device{}, err
	}
	return newDevice(kind, id), nil
}

// Summary is one listing row.
type Summary struct {
	ID      string
	Name    string
	Kind    string
	Current int
	Max     int
	Percent float64
	Err     error
}

// Summaries reads the level of every device. A device that cannot be read
// is still listed, with Err set.
func (r *Registry) Summaries(ctrl *Controller) ([]Summary, error) {
	devices, err := r.Devices()
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(devices))
	for _, dev := range devices {
		s := Summary{ID: dev.ID, Name: dev.Name, Kind: dev.Kind.String()}
		lvl, err := ctrl.Level(dev)
		if err != nil {
			s.Err = err
		} else {
			s.Current, s.Max, s.Percent = lvl.Current, lvl.Max, lvl.Percent
		}
		out = append(out, s)
	}
	return out, nil
}
