package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeRoot(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, probeRoot(dir))

	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.ErrorIs(t, probeRoot(file), ErrRootUnreadable)
	assert.ErrorIs(t, probeRoot(filepath.Join(dir, "missing")), ErrRootUnreadable)
}

func TestProbeChild(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), make([]byte, 42), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := make(map[string]probeResult, len(entries))
	for _, de := range entries {
		byName[de.Name()] = probeChild(de)
	}

	require.Contains(t, byName, "a.bin")
	assert.Equal(t, KindFile, byName["a.bin"].kind)
	assert.Equal(t, int64(42), byName["a.bin"].size)
	assert.NoError(t, byName["a.bin"].err)

	require.Contains(t, byName, "sub")
	assert.Equal(t, KindDir, byName["sub"].kind)
	assert.Zero(t, byName["sub"].size)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))
	assert.ErrorIs(t, classify(fmt.Errorf("open: %w", fs.ErrPermission)), ErrPermissionDenied)
	assert.ErrorIs(t, classify(fmt.Errorf("stat: %w", fs.ErrNotExist)), ErrNotFound)
	assert.ErrorIs(t, classify(fmt.Errorf("read: short read")), ErrIO)
}

func TestKindFromMode(t *testing.T) {
	assert.Equal(t, KindFile, kindFromMode(0))
	assert.Equal(t, KindDir, kindFromMode(fs.ModeDir))
	assert.Equal(t, KindSymlink, kindFromMode(fs.ModeSymlink))
	assert.Equal(t, KindOther, kindFromMode(fs.ModeSocket))
}
