// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"
)

// A Pos describes a resolved position within a document.
// Line and Column are one-based, Offset is the zero-based byte offset.
type Pos = lexer.Position

// NewPos creates a position for the given file and coordinates.
func NewPos(filename string, offset, line, col int) Pos {
	return Pos{
		Filename: filename,
		Offset:   offset,
		Line:     line,
		Column:   col,
	}
}

// indent returns the number of leading whitespace bytes of s.
func indent(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
}
