package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// filter decides whether a directory entry is skipped or descended into.
// It performs no I/O; symlink targets are resolved by the probe and only
// checked for containment here.
type filter struct {
	root           string
	includeHidden  bool
	followSymlinks bool
	excludes       []glob.Glob
}

// newFilter compiles the exclusion patterns for the given root.
func newFilter(root string, opts Options) (*filter, error) {
	excludes := make([]glob.Glob, 0, len(opts.Excludes))

	for _, pattern := range opts.Excludes {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, g)
	}

	return &filter{
		root:           root,
		includeHidden:  opts.IncludeHidden,
		followSymlinks: opts.FollowSymlinks,
		excludes:       excludes,
	}, nil
}

// skip reports whether the named entry is excluded from the scan entirely,
// by the hidden-entry policy or by an exclusion pattern.
func (f *filter) skip(path, name string) bool {
	if !f.includeHidden && strings.HasPrefix(name, ".") {
		return true
	}

	return f.excluded(path)
}

// excluded reports whether path matches an exclusion pattern.
func (f *filter) excluded(path string) bool {
	if len(f.excludes) == 0 {
		return false
	}

	slashed := filepath.ToSlash(path)

	for _, g := range f.excludes {
		if g.Match(slashed) {
			return true
		}
	}

	return false
}

// withinRoot reports whether the resolved target path stays inside the
// scan root. Used to refuse descending symlinks that escape the tree.
func (f *filter) withinRoot(target string) bool {
	rel, err := filepath.Rel(f.root, target)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// cyclic reports whether a symlink at linkPath resolving to target would
// re-enter an ancestor and loop the traversal.
func (f *filter) cyclic(linkPath, target string) bool {
	dir := filepath.Dir(linkPath)

	return dir == target || strings.HasPrefix(dir, target+string(filepath.Separator))
}
