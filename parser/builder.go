// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/golangee/bonsai/token"
	"github.com/golangee/bonsai/tree"
)

const (
	// tagCutset removes brackets and quotes around a lone start tag.
	tagCutset = `[]"`
	// valueCutset removes quotes and escapes around attribute values.
	valueCutset = `\"]`
)

// builtKind tells the driver what a line turned into.
type builtKind int

const (
	builtNode builtKind = iota
	builtClosing
	builtSkip
)

// built is the outcome of buildNode. Only one of node or name is set, depending on kind.
type built struct {
	kind builtKind
	node *tree.Node
	// name is the tag a closing line refers to.
	name string
}

// buildNode turns a single tokenized line into a node, a closing signal or nothing.
// Lines with a single part are opening, closing or self-closing tags. Everything with
// more parts is a complete element like <Child>Child 1</Child>, which carries a value
// only if it has exactly three parts.
func buildNode(line token.Line) (built, *MalformedError) {
	switch len(line.Parts) {
	case 0:
		return built{kind: builtSkip}, nil
	case 1:
		return buildSingle(line.Parts[0])
	default:
		return buildComplete(line)
	}
}

func buildSingle(part string) (built, *MalformedError) {
	switch token.Classify(part) {
	case token.End:
		return built{kind: builtClosing, name: dropFirst(part)}, nil
	case token.Empty:
		return built{kind: builtSkip}, nil
	}

	words := strings.Fields(part)
	node := tree.NewNode("")

	if len(words) > 0 {
		node.SetTag(strings.Trim(words[0], tagCutset))
		setAttributes(node, words[1:])
	}

	return built{kind: builtNode, node: node}, nil
}

func buildComplete(line token.Line) (built, *MalformedError) {
	node := tree.NewNode("")

	if len(line.Parts) == 3 {
		node.SetValue(line.Parts[1])
	}

	words := strings.Fields(line.First())
	if len(words) > 0 {
		node.SetTag(words[0])
		setAttributes(node, words[1:])
	}

	endTag := dropFirst(line.Last())
	if endTag != node.Tag() {
		return built{}, newMalformedError(line.Pos, fmt.Sprintf("unexpected <%s>", line.Last())).
			withHint(fmt.Sprintf("expected </%s>", node.Tag()))
	}

	node.Close()

	return built{kind: builtNode, node: node}, nil
}

func setAttributes(node *tree.Node, words []string) {
	for key, value := range parseAttributes(words) {
		node.SetAttribute(key, value)
	}
}

// parseAttributes interprets each word as key=value. The value is the last piece
// after splitting on '=', cleaned from quotes. A word without '=' is its own value.
// Later duplicates overwrite earlier ones.
func parseAttributes(words []string) tree.Attributes {
	attrs := tree.NewAttributes()

	for _, word := range words {
		pieces := strings.Split(word, "=")
		value := strings.Trim(pieces[len(pieces)-1], valueCutset)

		key := pieces[0]
		if len(pieces) == 1 {
			key = value
		}

		attrs.Set(key, value)
	}

	return attrs
}

// dropFirst removes the first rune, which is the '/' of an end tag.
func dropFirst(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[size:]
}
