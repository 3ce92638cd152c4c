package backlight

import (
	"fmt"
	"log/slog"
)

type Mode int

const (
	Absolute Mode = iota
	Relative
)

func (m Mode) String() string {
	if m == Relative {
		return "relative"
	}
	return "absolute"
}

// Spec is a brightness request: a percentage of max, or a signed delta in
// percentage points.
type Spec struct {
	Mode  Mode
	Value int
}

func AbsoluteSpec(percentage int) Spec { return Spec{Mode: Absolute, Value: percentage} }

func RelativeSpec(delta int) Spec { return Spec{Mode: Relative, Value: delta} }

// Validate checks the request range. It does no I/O.
func (s Spec) Validate() error {
	switch s.Mode {
	case Absolute:
		if s.Value < 1 || s.Value > 100 {
			return &ArgumentError{Field: "percentage", Value: s.Value, Min: 1, Max: 100}
		}
	case Relative:
		if s.Value < -100 || s.Value > 100 {
			return &ArgumentError{Field: "delta", Value: s.Value, Min: -100, Max: 100}
		}
	default:
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidArgument, int(s.Mode))
	}
	return nil
}

// Target computes the raw value for s. One percent is max/100 with integer
// division, so devices with max below 100 step in units of zero and land
// on the lower clamp. The result is clamped into [1, max].
func Target(s Spec, current, maxRaw int) int {
	step := maxRaw / 100
	var target int
	if s.Mode == Relative {
		target = current + step*s.Value
	} else {
		target = s.Value * step
	}
	return Clamp(target, maxRaw)
}

// Clamp bounds v to [1, maxRaw]. The lower bound keeps the panel from going
// fully dark.
func Clamp(v, maxRaw int) int {
	if v > maxRaw {
		v = maxRaw
	}
	if v < 1 {
		v = 1
	}
	return v
}

type Level struct {
	Current int
	Max     int
	Percent float64
}

// Result describes a completed Apply. Previous is only read for relative
// requests and is 0 otherwise.
type Result struct {
	Device   Device
	Max      int
	Previous int
	Target   int
}

// Controller reads and writes brightness through the driver registered for
// a device's kind.
type Controller struct {
	drivers map[Kind]Driver
	log     *slog.Logger
}

func NewController(logger *slog.Logger, drivers ...Driver) *Controller {
	c := &Controller{drivers: make(map[Kind]Driver, len(drivers)), log: orDiscard(logger)}
	for _, d := range drivers {
		c.drivers[d.Kind()] = d
	}
	return c
}

func (c *Controller) driver(dev Device) (Driver, error) {
	d, ok := c.drivers[dev.Kind]
	if !ok {
		return nil, &UnsupportedError{Kind: dev.Kind, Op: "select driver"}
	}
	return d, nil
}

func (c *Controller) ReadMax(dev Device) (int, error) {
	d, err := c.driver(dev)
	if err != nil {
		return 0, err
	}
	return d.ReadMax(dev)
}

func (c *Controller) ReadCurrent(dev Device) (int, error) {
	d, err := c.driver(dev)
	if err != nil {
		return 0, err
	}
	return d.ReadCurrent(dev)
}

func (c *Controller) Level(dev Device) (Level, error) {
	maxRaw, err := c.ReadMax(dev)
	if err != nil {
		return Level{}, err
	}
	cur, err := c.ReadCurrent(dev)
	if err != nil {
		return Level{}, err
	}
	lvl := Level{Current: cur, Max: maxRaw}
	if maxRaw > 0 {
		lvl.Percent = float64(cur) / float64(maxRaw) * 100
	}
	return lvl, nil
}

// Apply reads max (and current for relative requests), computes the clamped
// target and writes it. The first failing step aborts; nothing is retried.
func (c *Controller) Apply(dev Device, s Spec) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	d, err := c.driver(dev)
	if err != nil {
		return Result{}, err
	}

	res := Result{Device: dev}
	if res.Max, err = d.ReadMax(dev); err != nil {
		return Result{}, err
	}
	if res.Max == 0 {
		return Result{}, fmt.Errorf("%s: %w", dev.ID, ErrZeroRange)
	}
	c.log.Debug("max brightness read", "device", dev.ID, "max", res.Max)

	if s.Mode == Relative {
		if res.Previous, err = d.ReadCurrent(dev); err != nil {
			return Result{}, err
		}
		c.log.Debug("current brightness read", "device", dev.ID, "current", res.Previous)
	}

	res.Target = Target(s, res.Previous, res.Max)
	c.log.Debug("target computed", "device", dev.ID, "mode", s.Mode, "value", s.Value, "target", res.Target)

	if err := d.WriteCurrent(dev, res.Target); err != nil {
		return Result{}, err
	}
	return res, nil
}
