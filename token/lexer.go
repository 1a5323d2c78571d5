// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import "strings"

// brackets separate the parts of a line.
const brackets = "<>"

// Tokenize splits text into Lines. Blank lines are dropped, every other line is trimmed
// and split on '<' and '>'. The first and the last fragment are the artifacts left of the
// opening and right of the closing bracket and are dropped as well, so a line without
// any bracket results in a Line without Parts.
// Tokenize does not interpret the parts, declarations and comments are passed through.
func Tokenize(filename, text string) []Line {
	var lines []Line

	offset := 0

	for i, raw := range strings.Split(text, "\n") {
		lineOffset := offset
		offset += len(raw) + 1

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		col := indent(raw)

		lines = append(lines, Line{
			Pos:   NewPos(filename, lineOffset+col, i+1, col+1),
			Parts: splitParts(trimmed),
			Raw:   trimmed,
		})
	}

	return lines
}

// splitParts splits s on any bracket, keeping empty fragments, and drops
// the first and the last fragment.
func splitParts(s string) []string {
	var fragments []string

	for {
		i := strings.IndexAny(s, brackets)
		if i < 0 {
			fragments = append(fragments, s)
			break
		}

		fragments = append(fragments, s[:i])
		s = s[i+1:]
	}

	if len(fragments) <= 2 {
		return nil
	}

	return fragments[1 : len(fragments)-1]
}
