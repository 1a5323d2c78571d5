// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder

import (
	"bufio"
	"io"
	"strings"

	"github.com/golangee/bonsai/tree"
)

// XMLOption configures an XMLEncoder.
type XMLOption func(e *XMLEncoder)

// WithRootTag sets the tag of the element wrapping all top level elements. An
// empty tag writes the top level elements without wrapper, which is only well
// formed XML for documents with a single root.
func WithRootTag(tag string) XMLOption {
	return func(e *XMLEncoder) {
		e.rootTag = tag
	}
}

// XMLEncoder writes a document as compact, escaped XML. Unlike the markup
// encoder the output is meant for regular XML tooling, so reserved characters in
// values and attributes are replaced by entities and an element keeps its value
// as text before its children.
type XMLEncoder struct {
	writer  *bufio.Writer
	rootTag string
}

// NewXMLEncoder creates an XMLEncoder writing to w. All top level elements are
// wrapped in <root>.
func NewXMLEncoder(w io.Writer, opts ...XMLOption) *XMLEncoder {
	e := &XMLEncoder{
		writer:  bufio.NewWriter(w),
		rootTag: "root",
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Encode writes the XML header, all non-xml declarations as processing
// instructions and then the elements.
func (e *XMLEncoder) Encode(doc *tree.Document) error {
	if err := e.writeString(`<?xml version="1.0" encoding="UTF-8"?>`); err != nil {
		return err
	}

	for _, decl := range doc.Declarations() {
		if strings.EqualFold(decl.Target, "xml") {
			continue
		}

		if err := e.writeString("<?" + decl.Target + escapedAttributes(decl.Attributes) + "?>"); err != nil {
			return err
		}
	}

	if e.rootTag != "" {
		if err := e.writeString("<" + e.rootTag + ">"); err != nil {
			return err
		}
	}

	root := doc.Root()
	for ok := root.Valid(); ok; ok = root.NextSibling() {
		if err := e.encodeNode(root); err != nil {
			return err
		}
	}

	if e.rootTag != "" {
		if err := e.writeString("</" + e.rootTag + ">"); err != nil {
			return err
		}
	}

	return e.writer.Flush()
}

func (e *XMLEncoder) encodeNode(c *tree.Cursor) error {
	if err := e.writeString("<" + c.Tag() + escapedAttributes(c.Attributes()) + ">" + escapeXMLSafe(c.Value())); err != nil {
		return err
	}

	for _, child := range c.Children() {
		if err := e.encodeNode(child); err != nil {
			return err
		}
	}

	return e.writeString("</" + c.Tag() + ">")
}

func (e *XMLEncoder) writeString(s string) error {
	_, err := e.writer.WriteString(s)

	return err
}

func escapedAttributes(attrs tree.Attributes) string {
	var sb strings.Builder
	for _, k := range attrs.Keys() {
		sb.WriteString(" " + k + `="` + escapeXMLSafe(attrs[k]) + `"`)
	}

	return sb.String()
}

// escapeXMLSafe replaces all occurrences of reserved characters in XML: <>&".
func escapeXMLSafe(s string) string {
	replacer := strings.NewReplacer("<", "&lt;", ">", "&gt;", "&", "&amp;", `"`, "&quot;")

	return replacer.Replace(s)
}
