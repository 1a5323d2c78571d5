// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"strconv"
	"strings"
)

// Cursor points to a node of a Document. Moving along a link that does not exist
// leaves the Cursor where it is, so walking a tree never dereferences a missing node.
// The navigation methods report whether the Cursor moved.
//
// A Cursor may change values and attributes but never the structure of the tree.
type Cursor struct {
	doc  *Document
	node *Node
}

// Valid returns false for the Cursor of an empty document.
func (c *Cursor) Valid() bool {
	return c != nil && c.node != nil
}

// Clone returns an independent Cursor on the same node.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{doc: c.doc, node: c.node}
}

// FirstChild moves to the first child.
func (c *Cursor) FirstChild() bool {
	if !c.Valid() || c.node.firstChild == nil {
		return false
	}

	c.node = c.node.firstChild

	return true
}

// NextSibling moves to the next sibling.
func (c *Cursor) NextSibling() bool {
	if !c.Valid() || c.node.nextSibling == nil {
		return false
	}

	c.node = c.node.nextSibling

	return true
}

// PrevSibling moves to the previous sibling.
func (c *Cursor) PrevSibling() bool {
	if !c.Valid() {
		return false
	}

	prev := c.node.getPrevSibling()
	if prev == nil {
		return false
	}

	c.node = prev

	return true
}

// Parent moves to the parent. A top level element has no parent for a Cursor.
func (c *Cursor) Parent() bool {
	if !c.Valid() {
		return false
	}

	parent := c.node.getParent()
	if parent == nil || c.doc.isSentinel(parent) {
		return false
	}

	c.node = parent

	return true
}

// Root moves up until the parent would be the sentinel and reports whether it moved.
func (c *Cursor) Root() bool {
	moved := false
	for c.Parent() {
		moved = true
	}

	return moved
}

func (c *Cursor) Tag() string {
	if !c.Valid() {
		return ""
	}

	return c.node.Tag()
}

func (c *Cursor) Value() string {
	if !c.Valid() {
		return ""
	}

	return c.node.Value()
}

// Attribute returns the named attribute. ok is false if there is no such attribute.
func (c *Cursor) Attribute(name string) (value string, ok bool) {
	if !c.Valid() {
		return "", false
	}

	return c.node.Attribute(name)
}

// Attributes returns a copy of all attributes of the current node.
func (c *Cursor) Attributes() Attributes {
	if !c.Valid() {
		return NewAttributes()
	}

	return c.node.Attributes()
}

func (c *Cursor) State() State {
	if !c.Valid() {
		return Open
	}

	return c.node.State()
}

func (c *Cursor) ChildCount() int {
	if !c.Valid() {
		return 0
	}

	return c.node.ChildCount()
}

// SetValue replaces the inline value of the current node.
func (c *Cursor) SetValue(value string) {
	if c.Valid() {
		c.node.SetValue(value)
	}
}

// SetAttribute sets or overwrites an attribute of the current node.
func (c *Cursor) SetAttribute(name, value string) {
	if c.Valid() {
		c.node.SetAttribute(name, value)
	}
}

// Children returns a Cursor for each direct child in document order.
func (c *Cursor) Children() []*Cursor {
	if !c.Valid() {
		return nil
	}

	var children []*Cursor
	for n := c.node.firstChild; n != nil; n = n.nextSibling {
		children = append(children, &Cursor{doc: c.doc, node: n})
	}

	return children
}

// Find resolves a slash separated path of tags relative to the current node and
// returns a new Cursor on the result. A segment may select the n-th child with that
// tag using a one-based index, e.g. "Parent/Child[2]". An empty path returns a clone.
func (c *Cursor) Find(path string) (*Cursor, bool) {
	if !c.Valid() {
		return nil, false
	}

	cur := c.node

	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}

		tag, index, ok := parseSegment(segment)
		if !ok {
			return nil, false
		}

		cur = nthChild(cur, tag, index)
		if cur == nil {
			return nil, false
		}
	}

	return &Cursor{doc: c.doc, node: cur}, true
}

// parseSegment splits "Tag[n]" into its tag and index. Without index n is 1.
func parseSegment(segment string) (tag string, index int, ok bool) {
	tag, rest, found := strings.Cut(segment, "[")
	if !found {
		return segment, 1, true
	}

	num, trailer, found := strings.Cut(rest, "]")
	if !found || trailer != "" {
		return "", 0, false
	}

	index, err := strconv.Atoi(num)
	if err != nil || index < 1 {
		return "", 0, false
	}

	return tag, index, true
}

func nthChild(n *Node, tag string, index int) *Node {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		if child.tag != tag {
			continue
		}

		index--
		if index == 0 {
			return child
		}
	}

	return nil
}
