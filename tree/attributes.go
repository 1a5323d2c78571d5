// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"maps"
	"slices"
)

// Attributes maps attribute names to values. Keys are unique, the last write wins.
type Attributes map[string]string

// NewAttributes creates an empty Attributes map.
func NewAttributes() Attributes {
	return make(Attributes)
}

// Set the given attribute. Returns true if an existing attribute got overwritten.
func (a Attributes) Set(key, value string) bool {
	_, exists := a[key]
	a[key] = value

	return exists
}

// Get returns the value for key and whether it exists.
func (a Attributes) Get(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a)
}

// Keys returns all attribute names in lexical order.
func (a Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// Clone returns an independent copy, never nil.
func (a Attributes) Clone() Attributes {
	c := make(Attributes, len(a))
	maps.Copy(c, a)

	return c
}
