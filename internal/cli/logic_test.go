package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjellheim/treedu/internal/scan"
)

func TestNormalizeRootMatchesSessionRoot(t *testing.T) {
	dir := t.TempDir()

	root, err := normalizeRoot(dir + "/./sub/..")
	require.NoError(t, err)

	sess, err := scan.NewSession(dir+"/./sub/..", scan.Options{})
	require.NoError(t, err)

	assert.Equal(t, sess.Root(), root)
}

func TestNormalizeRootIsAbsolute(t *testing.T) {
	root, err := normalizeRoot(".")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(root))
}
