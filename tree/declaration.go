// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Declaration is a processing instruction like `<?xml version="1.0"?>`. Declarations
// have no place in the tree, the Document keeps them in source order.
type Declaration struct {
	// Target is the first word, "xml" for the XML declaration.
	Target     string
	Attributes Attributes
}

// AddDeclaration records a declaration.
func (d *Document) AddDeclaration(decl Declaration) {
	d.declarations = append(d.declarations, decl)
}

// Declarations returns all recorded declarations in source order.
func (d *Document) Declarations() []Declaration {
	return append([]Declaration(nil), d.declarations...)
}

// Version returns the version of the xml declaration in canonical semver form, e.g.
// "1.0" becomes "v1.0.0". It is empty if there is no such declaration or the version
// is not a valid semantic version.
func (d *Document) Version() string {
	for _, decl := range d.declarations {
		if decl.Target != "xml" {
			continue
		}

		if v, ok := decl.Attributes.Get("version"); ok {
			return CanonicalVersion(v)
		}
	}

	return ""
}

// CanonicalVersion converts a declared version like "1.0" into canonical semver.
// It returns the empty string for anything that is not a semantic version.
func CanonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}

	return semver.Canonical(v)
}
