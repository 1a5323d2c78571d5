// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

var (
	utf8BOM = []byte("\xef\xbb\xbf")

	// regexDeclaredEncoding finds the encoding of an xml declaration in the first line.
	regexDeclaredEncoding = regexp.MustCompile(`^\s*<\?xml[^>\n]*\sencoding\s*=\s*["']([^"']+)["']`)
)

// Decode converts body into UTF-8. The encoding is taken from a byte order mark, the
// charset parameter of contentType or the encoding of the xml declaration, in that
// order. Without any of them valid UTF-8 is kept and everything else is read as
// windows-1252. Returns the text and the name of the encoding.
func Decode(body []byte, contentType string) (text string, name string, err error) {
	e, name, certain := charset.DetermineEncoding(body, contentType)

	if !certain {
		if label := declaredEncoding(body); label != "" {
			e, name = charset.Lookup(label)
			if e == nil {
				return "", "", fmt.Errorf("unsupported charset %q", label)
			}
		} else if utf8.Valid(body) {
			return string(bytes.TrimPrefix(body, utf8BOM)), "utf-8", nil
		}
	}

	buf, err := e.NewDecoder().Bytes(body)
	if err != nil {
		return "", "", fmt.Errorf("cannot decode %s: %w", name, err)
	}

	return string(bytes.TrimPrefix(buf, utf8BOM)), name, nil
}

func declaredEncoding(body []byte) string {
	if len(body) > 1024 {
		body = body[:1024]
	}

	m := regexDeclaredEncoding.FindSubmatch(body)
	if m == nil {
		return ""
	}

	return string(m[1])
}
