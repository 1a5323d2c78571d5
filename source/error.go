// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable matches every UnavailableError.
var ErrSourceUnavailable = errors.New("source unavailable")

// UnavailableError is returned if a document cannot be read, fetched or decoded.
type UnavailableError struct {
	Location string
	Err      error
}

func newUnavailableError(location string, err error) *UnavailableError {
	return &UnavailableError{
		Location: location,
		Err:      err,
	}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Location, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
