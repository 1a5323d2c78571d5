// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tree

import "weak"

// State tells whether the closing tag of a Node has been seen.
type State int

const (
	// Open nodes are waiting for their closing tag.
	Open State = iota
	// Closed nodes are complete. A Closed node never becomes Open again.
	Closed
)

func (s State) String() string {
	switch s {
	case Open:
		return "OPEN"
	case Closed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Node is a single element of a Document.
// The tree owns its nodes through firstChild and nextSibling. parent and prevSibling
// are weak back references, they never keep a node alive on their own.
// Links are only changed by Document, callers walk the tree with a Cursor.
type Node struct {
	tag        string
	value      string
	attributes Attributes
	childCount int
	state      State

	parent      weak.Pointer[Node]
	prevSibling weak.Pointer[Node]
	firstChild  *Node
	lastChild   *Node
	nextSibling *Node
}

// NewNode creates a new Open node without links.
func NewNode(tag string) *Node {
	return &Node{
		tag:        tag,
		attributes: NewAttributes(),
		state:      Open,
	}
}

func (n *Node) Tag() string {
	return n.tag
}

func (n *Node) SetTag(tag string) {
	n.tag = tag
}

func (n *Node) Value() string {
	return n.value
}

func (n *Node) SetValue(value string) {
	n.value = value
}

// Attribute returns the value of the named attribute and whether it exists.
func (n *Node) Attribute(name string) (string, bool) {
	return n.attributes.Get(name)
}

// SetAttribute sets or overwrites the named attribute.
func (n *Node) SetAttribute(name, value string) {
	n.attributes.Set(name, value)
}

// Attributes returns a copy of all attributes.
func (n *Node) Attributes() Attributes {
	return n.attributes.Clone()
}

// ChildCount is the number of direct children.
func (n *Node) ChildCount() int {
	return n.childCount
}

func (n *Node) State() State {
	return n.state
}

// Close marks the node as Closed. There is no way back.
func (n *Node) Close() {
	n.state = Closed
}

func (n *Node) getParent() *Node {
	return n.parent.Value()
}

func (n *Node) getPrevSibling() *Node {
	return n.prevSibling.Value()
}
