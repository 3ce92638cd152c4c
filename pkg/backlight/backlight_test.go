package backlight

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const testRoot = "/sys/class/backlight"

type panel struct {
	max, current string
}

func newTree(t *testing.T, panels map[string]panel) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(testRoot, 0o755))
	for id, p := range panels {
		dir := filepath.Join(testRoot, id)
		require.NoError(t, fsys.MkdirAll(dir, 0o755))
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, "max_brightness"), []byte(p.max), 0o444))
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, "brightness"), []byte(p.current), 0o644))
	}
	return fsys
}

func readRaw(t *testing.T, fsys afero.Fs, id string) int {
	t.Helper()
	data, err := afero.ReadFile(fsys, filepath.Join(testRoot, id, "brightness"))
	require.NoError(t, err)
	n, err := strconv.Atoi(string(data))
	require.NoError(t, err)
	return n
}

func newTestController(fsys afero.Fs) *Controller {
	return NewController(nil, NewSysfs(fsys, testRoot, nil), DDC{})
}
