// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the color scheme used when no style is given.
const DefaultStyle = "dracula"

// Highlight writes text colored for a 256 color terminal. The language is the
// output format ("markup", "xml", "yaml" or "json"), markup is colored like XML.
// Unknown styles fall back to the chroma default.
func Highlight(w io.Writer, text, language, style string) error {
	if language == "markup" {
		language = "xml"
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	lexer = chroma.Coalesce(lexer)

	chromaStyle := styles.Get(style)
	if chromaStyle == nil {
		chromaStyle = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("cannot tokenise %s: %w", language, err)
	}

	return formatters.TTY256.Format(w, chromaStyle, it)
}
