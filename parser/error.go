// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"

	"github.com/golangee/bonsai/token"
	"github.com/golangee/bonsai/tree"
)

// ErrMalformedDocument is the cause of every MalformedError, so callers can check
// with errors.Is without caring about positions.
var ErrMalformedDocument = errors.New("malformed document")

// MalformedError is returned when the nesting of tags is broken, e.g. when a closing
// tag does not match the innermost open element.
type MalformedError struct {
	*token.PosError
	// Partial is the tree built until the parse was aborted. It is not reliable and
	// only meant for diagnostics.
	Partial *tree.Document
}

func newMalformedError(pos token.Pos, msg string, details ...token.ErrDetail) *MalformedError {
	return &MalformedError{
		PosError: token.NewPosError(pos, msg, details...).SetCause(ErrMalformedDocument),
	}
}

// withHint sets a hint and can be used builder-style.
func (e *MalformedError) withHint(hint string) *MalformedError {
	e.SetHint(hint)
	return e
}
