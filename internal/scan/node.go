package scan

import "sync/atomic"

// node is the mutable accumulator for one directory subtree. It is owned
// by the task processing it; the only cross-worker mutations are the
// aggregate size, the pending-children countdown and the child flags,
// all of which are atomic.
type node struct {
	parent *node
	path   string
	name   string
	depth  int

	// pending counts unresolved direct subdirectories plus one listing
	// token held by the owning task. The node finalizes when it reaches
	// zero; the token keeps it from finalizing mid-listing.
	pending atomic.Int64
	// size accumulates descendant file bytes.
	size atomic.Int64

	childFailed    atomic.Bool
	childCancelled atomic.Bool

	// Owner-only fields, written before the listing token is released.
	failed    bool
	partial   bool
	cancelled bool
	err       error
}

// newNode creates a node holding its own listing token.
func newNode(parent *node, path, name string, depth int) *node {
	n := &node{parent: parent, path: path, name: name, depth: depth}
	n.pending.Store(1)

	return n
}

// status derives the terminal status. Valid only once pending reached zero.
func (n *node) status() Status {
	switch {
	case n.cancelled || n.childCancelled.Load():
		return StatusCancelled
	case n.failed:
		return StatusFailed
	case n.partial || n.childFailed.Load():
		return StatusPartiallyFailed
	default:
		return StatusDone
	}
}

// entry builds the immutable snapshot reported for this node.
func (n *node) entry() Entry {
	return Entry{
		Path:   n.path,
		Name:   n.name,
		Kind:   KindDir,
		Size:   n.size.Load(),
		Depth:  n.depth,
		Status: n.status(),
		Err:    n.err,
	}
}
