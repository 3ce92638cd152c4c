package backlight

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Sysfs drives built-in panels through the backlight class files.
type Sysfs struct {
	fs   afero.Fs
	root string
	log  *slog.Logger
}

// NewSysfs returns a driver rooted at root on fsys. A nil logger discards.
func NewSysfs(fsys afero.Fs, root string, logger *slog.Logger) *Sysfs {
	if root == "" {
		root = DefaultRoot
	}
	return &Sysfs{fs: fsys, root: root, log: orDiscard(logger)}
}

func (s *Sysfs) Kind() Kind { return Builtin }

func (s *Sysfs) Root() string { return s.root }

func (s *Sysfs) ReadMax(dev Device) (int, error) {
	path, err := MaxBrightnessPath(s.root, dev.ID)
	if err != nil {
		return 0, err
	}
	return s.readInt(dev, path)
}

func (s *Sysfs) ReadCurrent(dev Device) (int, error) {
	path, err := BrightnessPath(s.root, dev.ID)
	if err != nil {
		return 0, err
	}
	return s.readInt(dev, path)
}

func (s *Sysfs) WriteCurrent(dev Device, value int) (err error) {
	path, err := BrightnessPath(s.root, dev.ID)
	if err != nil {
		return err
	}

	// sysfs attributes cannot be created, so no O_CREATE here.
	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return s.openError(dev, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	s.log.Debug("writing brightness", "device", dev.ID, "path", path, "value", value)
	if _, err := f.WriteString(strconv.Itoa(value)); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func (s *Sysfs) readInt(dev Device, path string) (n int, err error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return 0, s.openError(dev, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return 0, &IOError{Op: "read", Path: path, Err: err}
	}

	content := strings.TrimSpace(string(data))
	n, err = strconv.Atoi(content)
	if err != nil || n < 0 {
		return 0, &ParseError{Path: path, Content: content}
	}
	s.log.Debug("read brightness file", "device", dev.ID, "path", path, "value", n)
	return n, nil
}

// openError turns a failed open into a NotFoundError when the device
// directory itself is absent.
func (s *Sysfs) openError(dev Device, path string, err error) error {
	ioErr := &IOError{Op: "open", Path: path, Err: err}
	if !errors.Is(err, fs.ErrNotExist) {
		return ioErr
	}
	if _, statErr := s.fs.Stat(filepath.Join(s.root, dev.ID)); errors.Is(statErr, fs.ErrNotExist) {
		return &NotFoundError{ID: dev.ID, Err: ioErr}
	}
	return ioErr
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}
