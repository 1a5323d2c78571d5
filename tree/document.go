// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tree

import "weak"

// rootTag marks the sentinel. The sentinel is recognized by identity, the tag is only
// there to make it obvious in a debugger.
const rootTag = "#root"

// Document owns a tree of nodes below a sentinel root. The sentinel is never handed out,
// Root returns a Cursor on its first child, which is the document root for callers.
type Document struct {
	sentinel     *Node
	declarations []Declaration
	size         int
}

// New creates an empty Document.
func New() *Document {
	return &Document{
		sentinel: NewNode(rootTag),
	}
}

// AppendFirstChild attaches child as the first child of parent.
// A nil parent denotes the sentinel. parent must not have children yet.
func (d *Document) AppendFirstChild(parent, child *Node) {
	parent = d.target(parent)

	parent.firstChild = child
	parent.lastChild = child
	parent.childCount++

	child.parent = weak.Make(parent)
	d.size++
}

// AppendLastSibling attaches child behind the last node in the sibling chain of
// parent's children. A nil parent denotes the sentinel.
func (d *Document) AppendLastSibling(parent, child *Node) {
	parent = d.target(parent)

	if parent.firstChild == nil {
		d.AppendFirstChild(parent, child)
		return
	}

	last := parent.lastChild
	if last == nil {
		last = parent.firstChild
		for last.nextSibling != nil {
			last = last.nextSibling
		}
	}

	last.nextSibling = child
	child.prevSibling = weak.Make(last)
	parent.lastChild = child
	parent.childCount++

	child.parent = weak.Make(parent)
	d.size++
}

// Append attaches child as the last child of parent, as its first child if parent
// has none yet. A nil parent denotes the sentinel.
func (d *Document) Append(parent, child *Node) {
	if d.target(parent).childCount == 0 {
		d.AppendFirstChild(parent, child)
	} else {
		d.AppendLastSibling(parent, child)
	}
}

// Root returns a Cursor on the document root. For an empty document the Cursor is
// not Valid and all of its operations are no-ops.
func (d *Document) Root() *Cursor {
	return &Cursor{doc: d, node: d.sentinel.firstChild}
}

// Len returns the number of nodes attached to the document.
func (d *Document) Len() int {
	return d.size
}

// Walk visits every node depth-first in document order. Returning false from fn
// skips the children of the visited node.
func (d *Document) Walk(fn func(depth int, c *Cursor) bool) {
	d.walk(d.sentinel.firstChild, 0, fn)
}

func (d *Document) walk(n *Node, depth int, fn func(depth int, c *Cursor) bool) {
	for ; n != nil; n = n.nextSibling {
		if fn(depth, &Cursor{doc: d, node: n}) {
			d.walk(n.firstChild, depth+1, fn)
		}
	}
}

func (d *Document) target(parent *Node) *Node {
	if parent == nil {
		return d.sentinel
	}

	return parent
}

func (d *Document) isSentinel(n *Node) bool {
	return n == d.sentinel
}
