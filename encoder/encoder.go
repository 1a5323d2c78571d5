// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/golangee/bonsai/tree"
	"gopkg.in/yaml.v3"
)

// Element is a plain data copy of a tree node, detached from the document.
type Element struct {
	Tag        string            `yaml:"tag" json:"tag"`
	Value      string            `yaml:"value,omitempty" json:"value,omitempty"`
	State      string            `yaml:"state" json:"state"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Children   []Element         `yaml:"children,omitempty" json:"children,omitempty"`
}

// Declaration is a plain data copy of a tree.Declaration.
type Declaration struct {
	Target     string            `yaml:"target" json:"target"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
}

// Dump is everything YAML and JSON output contains.
type Dump struct {
	Version      string        `yaml:"version,omitempty" json:"version,omitempty"`
	Declarations []Declaration `yaml:"declarations,omitempty" json:"declarations,omitempty"`
	Elements     []Element     `yaml:"elements" json:"elements"`
}

// Snapshot copies all top level elements and their descendants.
func Snapshot(doc *tree.Document) []Element {
	res := []Element{}

	c := doc.Root()
	for c.Valid() {
		res = append(res, snapshot(c))

		if !c.NextSibling() {
			break
		}
	}

	return res
}

func snapshot(c *tree.Cursor) Element {
	e := Element{
		Tag:   c.Tag(),
		Value: c.Value(),
		State: c.State().String(),
	}

	if attrs := c.Attributes(); attrs.Len() > 0 {
		e.Attributes = attrs
	}

	for _, child := range c.Children() {
		e.Children = append(e.Children, snapshot(child))
	}

	return e
}

// NewDump collects the version, the declarations and a Snapshot of doc.
func NewDump(doc *tree.Document) Dump {
	d := Dump{
		Version:  doc.Version(),
		Elements: Snapshot(doc),
	}

	for _, decl := range doc.Declarations() {
		d.Declarations = append(d.Declarations, Declaration{
			Target:     decl.Target,
			Attributes: decl.Attributes.Clone(),
		})
	}

	return d
}

// EncodeYAML writes the Dump of doc as YAML.
func EncodeYAML(w io.Writer, doc *tree.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(NewDump(doc)); err != nil {
		return fmt.Errorf("cannot encode yaml: %w", err)
	}

	return enc.Close()
}

// EncodeJSON writes the Dump of doc as indented JSON.
func EncodeJSON(w io.Writer, doc *tree.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(NewDump(doc)); err != nil {
		return fmt.Errorf("cannot encode json: %w", err)
	}

	return nil
}
