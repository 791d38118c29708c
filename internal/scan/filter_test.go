package scan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterHiddenPolicy(t *testing.T) {
	flt, err := newFilter("/data", Options{})
	require.NoError(t, err)

	assert.True(t, flt.skip("/data/.git", ".git"))
	assert.True(t, flt.skip("/data/.cache", ".cache"))
	assert.False(t, flt.skip("/data/src", "src"))

	flt, err = newFilter("/data", Options{IncludeHidden: true})
	require.NoError(t, err)

	assert.False(t, flt.skip("/data/.git", ".git"))
}

func TestFilterExcludePatterns(t *testing.T) {
	flt, err := newFilter("/data", Options{
		Excludes: []string{"**/node_modules", "**/*.log"},
	})
	require.NoError(t, err)

	assert.True(t, flt.excluded("/data/web/node_modules"))
	assert.True(t, flt.excluded("/data/app/debug.log"))
	assert.False(t, flt.excluded("/data/app/main.go"))
	assert.False(t, flt.excluded("/data/node_modules_backup"))
}

func TestFilterInvalidPattern(t *testing.T) {
	_, err := newFilter("/data", Options{Excludes: []string{"[unterminated"}})
	assert.Error(t, err)
}

func TestFilterWithinRoot(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data", "project")
	flt, err := newFilter(root, Options{})
	require.NoError(t, err)

	assert.True(t, flt.withinRoot(root))
	assert.True(t, flt.withinRoot(filepath.Join(root, "sub")))
	assert.True(t, flt.withinRoot(filepath.Join(root, "sub", "deep")))
	assert.False(t, flt.withinRoot(filepath.Join(string(filepath.Separator), "data")))
	assert.False(t, flt.withinRoot(root+"-sibling"))
	assert.False(t, flt.withinRoot(filepath.Join(string(filepath.Separator), "etc")))
}

func TestFilterCyclic(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	flt, err := newFilter(root, Options{})
	require.NoError(t, err)

	link := filepath.Join(root, "a", "b", "loop")

	assert.True(t, flt.cyclic(link, filepath.Join(root, "a")))
	assert.True(t, flt.cyclic(link, filepath.Join(root, "a", "b")))
	assert.False(t, flt.cyclic(link, filepath.Join(root, "a", "c")))
	assert.False(t, flt.cyclic(link, filepath.Join(root, "a", "b", "other")))
}
