// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package bonsai parses simple line oriented markup into a tree. Every element sits
// on its own line, either as an opening tag, a closing tag or a complete element
// with an inline value:
//
//	<Parent name="John">
//	    <Child>Child 1</Child>
//	    <Child>Child 2</Child>
//	</Parent>
//
// The tree is navigated with a tree.Cursor, whose moves never fail.
package bonsai

import (
	"context"
	"fmt"

	"github.com/golangee/bonsai/parser"
	"github.com/golangee/bonsai/source"
	"github.com/golangee/bonsai/tree"
)

// Parse parses text and returns a Cursor on the document root.
func Parse(text string, opts ...parser.Option) (*tree.Cursor, error) {
	doc, err := parser.Parse(text, opts...)
	if err != nil {
		return nil, err
	}

	return doc.Root(), nil
}

// Load fetches location with loader and parses it. Errors are either a
// *source.UnavailableError or a *parser.MalformedError.
func Load(ctx context.Context, loader *source.Loader, location string, opts ...parser.Option) (*tree.Cursor, error) {
	src, err := loader.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("cannot load document: %w", err)
	}

	doc, err := parser.New(opts...).Parse(src.Location, src.Text)
	if err != nil {
		return nil, err
	}

	return doc.Root(), nil
}
