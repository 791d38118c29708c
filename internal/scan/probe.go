package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// probeResult classifies a single entry without descending into it.
// Directory sizes are left to aggregation; only files carry a size here.
type probeResult struct {
	kind Kind
	size int64
	err  error
}

// probeChild resolves kind and size for one listed directory entry.
// Lstat semantics: symlinks are reported as symlinks, not their targets.
func probeChild(de fs.DirEntry) probeResult {
	info, err := de.Info()
	if err != nil {
		return probeResult{kind: KindOther, err: classify(err)}
	}

	kind := kindFromMode(info.Mode())

	var size int64
	if kind == KindFile {
		size = info.Size()
	}

	return probeResult{kind: kind, size: size}
}

// probeSymlink follows the link at path and classifies its target.
// Links that escape the scan root or cannot be resolved come back as
// zero-size Other entries with the error recorded.
func probeSymlink(path string, flt *filter) probeResult {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return probeResult{kind: KindOther, err: classify(err)}
	}

	if !flt.withinRoot(target) || flt.cyclic(path, target) {
		return probeResult{kind: KindOther, err: ErrSymlinkOutsideRoot}
	}

	info, err := os.Stat(path)
	if err != nil {
		return probeResult{kind: KindOther, err: classify(err)}
	}

	kind := kindFromMode(info.Mode())

	var size int64
	if kind == KindFile {
		size = info.Size()
	}

	return probeResult{kind: kind, size: size}
}

// probeRoot validates that path denotes an existing directory.
func probeRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRootUnreadable, path)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootUnreadable, path)
	}

	return nil
}
