// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/golangee/bonsai/tree"
)

// MarkupOption configures a MarkupEncoder.
type MarkupOption func(e *MarkupEncoder)

// WithIndent sets the number of spaces per nesting level. The default is 4.
func WithIndent(n int) MarkupOption {
	return func(e *MarkupEncoder) {
		if n >= 0 {
			e.indentWidth = n
		}
	}
}

// MarkupEncoder writes a document back into the line oriented markup, which the
// parser reads into the same tree again. Values and attributes are written as they
// are, because the parser does not decode entities either.
type MarkupEncoder struct {
	writer      *bufio.Writer
	indentWidth int
	// indent is the current nesting level.
	indent int
}

func NewMarkupEncoder(w io.Writer, opts ...MarkupOption) *MarkupEncoder {
	e := &MarkupEncoder{
		writer:      bufio.NewWriter(w),
		indentWidth: 4,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Encode writes all declarations followed by the elements. Leaves become complete
// elements on a single line. The value of an element with children has no place in
// the format and is not written. In case of an error incomplete output may already
// have been written.
func (e *MarkupEncoder) Encode(doc *tree.Document) error {
	for _, decl := range doc.Declarations() {
		if err := e.writeString(fmt.Sprintf("<?%s%s?>\n", decl.Target, attributeString(decl.Attributes))); err != nil {
			return err
		}
	}

	c := doc.Root()
	for c.Valid() {
		if err := e.encodeNode(c); err != nil {
			return err
		}

		if !c.NextSibling() {
			break
		}
	}

	if err := e.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush written markup: %w", err)
	}

	return nil
}

func (e *MarkupEncoder) encodeNode(c *tree.Cursor) error {
	open := fmt.Sprintf("%s<%s%s>", e.indentString(), c.Tag(), attributeString(c.Attributes()))

	if c.ChildCount() == 0 {
		return e.writeString(fmt.Sprintf("%s%s</%s>\n", open, c.Value(), c.Tag()))
	}

	if err := e.writeString(open + "\n"); err != nil {
		return err
	}

	e.indent++

	for _, child := range c.Children() {
		if err := e.encodeNode(child); err != nil {
			return err
		}
	}

	e.indent--

	return e.writeString(fmt.Sprintf("%s</%s>\n", e.indentString(), c.Tag()))
}

// writeString is a convenience method to write strings to the underlying writer.
func (e *MarkupEncoder) writeString(s string) error {
	_, err := e.writer.WriteString(s)

	return err
}

// indentString returns a string with a number of spaces that matches the
// current indentation level.
func (e *MarkupEncoder) indentString() string {
	return strings.Repeat(" ", e.indent*e.indentWidth)
}

// attributeString renders attributes sorted by key, with a leading space.
func attributeString(attrs tree.Attributes) string {
	var sb strings.Builder
	for _, key := range attrs.Keys() {
		sb.WriteString(fmt.Sprintf(` %s="%s"`, key, attrs[key]))
	}

	return sb.String()
}
