// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import "strings"

// A Line is a single non-blank line of the source, split around its angle brackets.
// For `<Child>Child 1</Child>` Parts is ["Child", "Child 1", "/Child"],
// for `<Parent name="John">` it is [`Parent name="John"`].
type Line struct {
	// Pos points to the first non-blank character of the line.
	Pos Pos
	// Parts are the fragments between the brackets.
	Parts []string
	// Raw is the trimmed source line.
	Raw string
}

// First returns the first part of the line or the empty string.
func (l Line) First() string {
	if len(l.Parts) == 0 {
		return ""
	}

	return l.Parts[0]
}

// Last returns the last part of the line or the empty string.
func (l Line) Last() string {
	if len(l.Parts) == 0 {
		return ""
	}

	return l.Parts[len(l.Parts)-1]
}

// Kind is the category of a raw tag token.
type Kind int

const (
	// Start is an opening tag like `Parent name="John"`.
	Start Kind = iota
	// End is a closing tag like `/Parent`.
	End
	// Empty is a self-closing tag like `br/`.
	Empty
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "START"
	case End:
		return "END"
	case Empty:
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}

// Classify returns the Kind of a raw tag token. It never fails, anything that
// is neither an end tag nor a self-closing tag is a start tag.
func Classify(tok string) Kind {
	switch {
	case strings.HasPrefix(tok, "/"):
		return End
	case strings.HasSuffix(tok, "/"):
		return Empty
	default:
		return Start
	}
}
