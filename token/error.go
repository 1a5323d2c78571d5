// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrDetail is a message attached to a position.
type ErrDetail struct {
	Pos     Pos
	Message string
}

// NewErrDetail creates an ErrDetail.
func NewErrDetail(pos Pos, msg string) ErrDetail {
	return ErrDetail{
		Pos:     pos,
		Message: msg,
	}
}

// PosError represents a positional error with optional additional details. Use Explain
// to render it together with the offending source lines.
type PosError struct {
	Details []ErrDetail
	Cause   error
	Hint    string
}

// NewPosError creates a new PosError with the given message and optional details.
func NewPosError(pos Pos, msg string, details ...ErrDetail) *PosError {
	tmp := append([]ErrDetail{}, NewErrDetail(pos, msg))
	tmp = append(tmp, details...)

	return &PosError{
		Details: tmp,
	}
}

func (p *PosError) SetCause(err error) *PosError {
	p.Cause = err
	return p
}

func (p *PosError) SetHint(str string) *PosError {
	p.Hint = str
	return p
}

func (p *PosError) Unwrap() error {
	return p.Cause
}

// Pos returns the position of the first detail.
func (p *PosError) Pos() Pos {
	return p.firstDetail().Pos
}

func (p *PosError) firstDetail() ErrDetail {
	if len(p.Details) > 0 {
		return p.Details[0]
	}

	return ErrDetail{}
}

func (p *PosError) Error() string {
	first := p.firstDetail()
	msg := first.Pos.String() + ": " + first.Message

	if p.Cause == nil {
		return msg
	}

	return msg + ": " + p.Cause.Error()
}

// posLine returns the line from lines which fits to the given pos.
func posLine(lines []string, pos Pos) string {
	no := pos.Line - 1

	if no >= len(lines) {
		no = len(lines) - 1
	}

	ltext := ""
	if no < len(lines) && no >= 0 {
		ltext = strings.TrimRight(lines[no], "\r")
	}

	return ltext
}

// Explain returns a multi-line text suited to be printed into the console.
// src is the text the error positions refer to.
func (p *PosError) Explain(src string) string {
	lines := strings.Split(src, "\n")

	// grab the required indent for the line numbers
	indent := 0

	for _, detail := range p.Details {
		l := len(strconv.Itoa(detail.Pos.Line))
		if l > indent {
			indent = l
		}
	}

	sb := &strings.Builder{}

	for i, detail := range p.Details {
		line := posLine(lines, detail.Pos)

		if i == 0 || detail.Pos.Filename != p.Details[i-1].Pos.Filename {
			sb.WriteString(detail.Pos.String())
			sb.WriteString("\n")
		}

		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s |\n", ""))
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"d |", detail.Pos.Line))
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s |", ""))

		col := detail.Pos.Column
		if col < 1 {
			col = 1
		}

		width := len(strings.TrimSpace(line))
		if width <= 1 {
			sb.WriteString(strings.Repeat(" ", col-1))
			sb.WriteString("^~~~ ")
		} else {
			sb.WriteString(strings.Repeat(" ", col-1))
			sb.WriteString(strings.Repeat("^", width))
			sb.WriteRune(' ')
		}

		sb.WriteString(detail.Message)
		sb.WriteString("\n")

		if i < len(p.Details)-1 {
			sb.WriteString(strings.Repeat(" ", indent))
			sb.WriteString("...")
			sb.WriteByte('\n')
		}
	}

	if p.Hint != "" {
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s |\n", ""))
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"s = hint: %s\n", "", p.Hint))
	}

	return sb.String()
}
