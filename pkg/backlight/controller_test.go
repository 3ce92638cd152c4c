package backlight

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixtures use the integer rule: one percent is max/100, truncated.

func TestTargetScenarios(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		current int
		max     int
		want    int
	}{
		{"half of 255 steps by 2", AbsoluteSpec(50), 0, 255, 100},
		{"full of 255", AbsoluteSpec(100), 0, 255, 200},
		{"half of 19393", AbsoluteSpec(50), 0, 19393, 9650},
		{"relative down", RelativeSpec(-10), 40, 100, 30},
		{"relative up", RelativeSpec(25), 40, 100, 65},
		{"relative below floor", RelativeSpec(-100), 40, 100, 1},
		{"relative above max", RelativeSpec(100), 90, 100, 100},
		{"small max rounds to floor", AbsoluteSpec(100), 0, 15, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Target(tt.spec, tt.current, tt.max))
		})
	}
}

func TestSpecValidate(t *testing.T) {
	assert.NoError(t, AbsoluteSpec(1).Validate())
	assert.NoError(t, AbsoluteSpec(100).Validate())
	assert.NoError(t, RelativeSpec(-100).Validate())
	assert.NoError(t, RelativeSpec(0).Validate())

	for _, s := range []Spec{AbsoluteSpec(0), AbsoluteSpec(101), AbsoluteSpec(-5), RelativeSpec(-101), RelativeSpec(101), {Mode: Mode(7)}} {
		assert.ErrorIs(t, s.Validate(), ErrInvalidArgument, "spec %+v", s)
	}

	var argErr *ArgumentError
	require.ErrorAs(t, AbsoluteSpec(0).Validate(), &argErr)
	assert.Equal(t, "percentage", argErr.Field)
	assert.Equal(t, 1, argErr.Min)
	assert.Equal(t, 100, argErr.Max)
}

func TestAbsoluteClampInvariant(t *testing.T) {
	for max := 1; max <= 1200; max += 7 {
		for pct := 1; pct <= 100; pct++ {
			got := Target(AbsoluteSpec(pct), 0, max)
			require.GreaterOrEqual(t, got, 1, "max=%d pct=%d", max, pct)
			require.LessOrEqual(t, got, max, "max=%d pct=%d", max, pct)
		}
	}
}

func TestRelativeClampInvariant(t *testing.T) {
	for _, max := range []int{1, 7, 99, 100, 255, 937, 19393} {
		for cur := 0; cur <= max; cur += 1 + max/50 {
			for delta := -100; delta <= 100; delta++ {
				got := Target(RelativeSpec(delta), cur, max)
				require.GreaterOrEqual(t, got, 1)
				require.LessOrEqual(t, got, max)
			}
		}
	}
}

func TestAbsoluteMonotonic(t *testing.T) {
	for _, max := range []int{1, 50, 100, 255, 937, 120000} {
		prev := 0
		for pct := 1; pct <= 100; pct++ {
			got := Target(AbsoluteSpec(pct), 0, max)
			require.GreaterOrEqual(t, got, prev, "max=%d pct=%d", max, pct)
			prev = got
		}
	}
}

func TestApplyAbsolute(t *testing.T) {
	fsys := newTree(t, map[string]panel{"intel_backlight": {max: "255\n", current: "17\n"}})
	ctrl := newTestController(fsys)
	dev := newDevice(Builtin, "intel_backlight")

	res, err := ctrl.Apply(dev, AbsoluteSpec(50))
	require.NoError(t, err)
	assert.Equal(t, 255, res.Max)
	assert.Equal(t, 100, res.Target)
	assert.Equal(t, 100, readRaw(t, fsys, "intel_backlight"))
}

func TestApplyIdempotent(t *testing.T) {
	fsys := newTree(t, map[string]panel{"intel_backlight": {max: "937", current: "400"}})
	ctrl := newTestController(fsys)
	dev := newDevice(Builtin, "intel_backlight")

	first, err := ctrl.Apply(dev, AbsoluteSpec(33))
	require.NoError(t, err)
	second, err := ctrl.Apply(dev, AbsoluteSpec(33))
	require.NoError(t, err)
	assert.Equal(t, first.Target, second.Target)
	assert.Equal(t, first.Target, readRaw(t, fsys, "intel_backlight"))
}

func TestApplyRelative(t *testing.T) {
	fsys := newTree(t, map[string]panel{"acpi_video0": {max: "100", current: "40"}})
	ctrl := newTestController(fsys)

	res, err := ctrl.Apply(newDevice(Builtin, "acpi_video0"), RelativeSpec(-10))
	require.NoError(t, err)
	assert.Equal(t, 40, res.Previous)
	assert.Equal(t, 30, res.Target)
	assert.Equal(t, 30, readRaw(t, fsys, "acpi_video0"))
}

func TestApplyRejectsBeforeIO(t *testing.T) {
	fsys := newTree(t, map[string]panel{"intel_backlight": {max: "100", current: "40"}})
	ctrl := newTestController(fsys)

	_, err := ctrl.Apply(newDevice(Builtin, "intel_backlight"), AbsoluteSpec(0))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 40, readRaw(t, fsys, "intel_backlight"))

	// No filesystem at all: validation must still win.
	_, err = NewController(nil, NewSysfs(nil, testRoot, nil)).Apply(newDevice(Builtin, "x"), RelativeSpec(150))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestApplyMissingDevice(t *testing.T) {
	fsys := newTree(t, map[string]panel{"intel_backlight": {max: "100", current: "40"}})
	ctrl := newTestController(fsys)

	dev, err := NewRegistry(fsys, testRoot, nil).Resolve("nv_backlight")
	require.NoError(t, err)

	_, err = ctrl.Apply(dev, AbsoluteSpec(50))
	assert.ErrorIs(t, err, ErrDeviceNotFound)
	exists, _ := afero.DirExists(fsys, testRoot+"/nv_backlight")
	assert.False(t, exists)
}

func TestApplyParseErrorAborts(t *testing.T) {
	fsys := newTree(t, map[string]panel{"intel_backlight": {max: "100", current: "garbage"}})
	ctrl := newTestController(fsys)

	_, err := ctrl.Apply(newDevice(Builtin, "intel_backlight"), RelativeSpec(5))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)

	data, err := afero.ReadFile(fsys, testRoot+"/intel_backlight/brightness")
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(data))
}

func TestApplyZeroMax(t *testing.T) {
	fsys := newTree(t, map[string]panel{"stub": {max: "0", current: "0"}})
	_, err := newTestController(fsys).Apply(newDevice(Builtin, "stub"), AbsoluteSpec(50))
	assert.ErrorIs(t, err, ErrZeroRange)
}

func TestApplyExternalUnsupported(t *testing.T) {
	ctrl := newTestController(afero.NewMemMapFs())
	_, err := ctrl.Apply(newDevice(ExternalDDC, "DP-1"), AbsoluteSpec(50))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestControllerWithoutDriver(t *testing.T) {
	ctrl := NewController(nil)
	_, err := ctrl.ReadMax(newDevice(Builtin, "intel_backlight"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLevel(t *testing.T) {
	fsys := newTree(t, map[string]panel{"intel_backlight": {max: "400", current: "100"}})
	lvl, err := newTestController(fsys).Level(newDevice(Builtin, "intel_backlight"))
	require.NoError(t, err)
	assert.Equal(t, Level{Current: 100, Max: 400, Percent: 25}, lvl)
}
