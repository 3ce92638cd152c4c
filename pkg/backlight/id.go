package backlight

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultRoot is the sysfs backlight class directory.
const DefaultRoot = "/sys/class/backlight"

const (
	maxBrightnessFile = "max_brightness"
	brightnessFile    = "brightness"
)

type Kind int

const (
	Builtin Kind = iota
	ExternalDDC
)

func (k Kind) String() string {
	switch k {
	case Builtin:
		return "builtin"
	case ExternalDDC:
		return "ddc"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Device identifies one backlight. It holds no brightness state; every read
// goes to the backing driver.
type Device struct {
	ID   string
	Name string
	Kind Kind
}

func newDevice(kind Kind, id string) Device {
	prefix := "Built-in: "
	if kind == ExternalDDC {
		prefix = "External: "
	}
	return Device{ID: id, Name: prefix + id, Kind: kind}
}

// ValidateID rejects ids that are not a single safe path segment.
func ValidateID(id string) error {
	switch {
	case id == "", id == ".":
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	case strings.ContainsRune(id, '/'), strings.ContainsRune(id, 0), strings.Contains(id, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func MaxBrightnessPath(root, id string) (string, error) {
	return devicePath(root, id, maxBrightnessFile)
}

func BrightnessPath(root, id string) (string, error) {
	return devicePath(root, id, brightnessFile)
}

func devicePath(root, id, name string) (string, error) {
	if err := ValidateID(id); err != nil {
		return "", err
	}
	return filepath.Join(root, id, name), nil
}
