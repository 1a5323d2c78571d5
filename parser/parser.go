// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/golangee/bonsai/token"
	"github.com/golangee/bonsai/tree"
	"github.com/rs/zerolog"
	"golang.org/x/mod/semver"
)

// Option configures a Parser.
type Option func(p *Parser)

// WithStrict turns unclosed elements at the end of the input and unsupported
// declaration versions into errors. Without it both are tolerated.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithLogger sets the logger for debug output. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser builds a tree.Document from line oriented markup. A Parser only holds its
// options, so a single instance may be used for concurrent parses.
type Parser struct {
	strict bool
	logger zerolog.Logger
}

// New creates a Parser with the given options applied.
func New(opts ...Option) *Parser {
	p := &Parser{
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse is a shortcut for New(opts...).Parse("", text).
func Parse(text string, opts ...Option) (*tree.Document, error) {
	return New(opts...).Parse("", text)
}

// ParseReader reads everything from r and parses it.
func (p *Parser) ParseReader(filename string, r io.Reader) (*tree.Document, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filename, err)
	}

	return p.Parse(filename, string(buf))
}

// Parse builds the document in a single pass over the lines of text. The filename is
// only used for error positions. If the document is malformed, the returned error is
// a *MalformedError and the document is nil.
func (p *Parser) Parse(filename string, text string) (*tree.Document, error) {
	r := &run{
		p:   p,
		doc: tree.New(),
		log: p.logger.With().Str("file", filename).Logger(),
	}

	for _, line := range token.Tokenize(filename, text) {
		if err := r.line(line); err != nil {
			err.Partial = r.doc
			return nil, err
		}
	}

	if err := r.finish(); err != nil {
		err.Partial = r.doc
		return nil, err
	}

	return r.doc, nil
}

// frame is an open element on the stack.
type frame struct {
	node *tree.Node
	pos  token.Pos
}

// run holds the state of a single Parse call.
type run struct {
	p     *Parser
	doc   *tree.Document
	stack []frame
	log   zerolog.Logger
}

func (r *run) top() (frame, bool) {
	if len(r.stack) == 0 {
		return frame{}, false
	}

	return r.stack[len(r.stack)-1], true
}

// target is the node new elements are attached to, nil for the sentinel.
func (r *run) target() *tree.Node {
	if top, ok := r.top(); ok {
		return top.node
	}

	return nil
}

func (r *run) line(line token.Line) *MalformedError {
	first := line.First()

	switch {
	case strings.HasPrefix(first, "?"):
		return r.declaration(line)
	case strings.HasPrefix(first, "!"):
		r.log.Debug().Str("pos", line.Pos.String()).Msg("skipping comment")
		return nil
	}

	b, err := buildNode(line)
	if err != nil {
		return err
	}

	switch b.kind {
	case builtSkip:
		if len(line.Parts) > 0 {
			r.log.Debug().Str("pos", line.Pos.String()).Str("tag", first).Msg("skipping self-closing tag")
		}
	case builtClosing:
		return r.closing(line, b.name)
	case builtNode:
		r.doc.Append(r.target(), b.node)

		if b.node.State() == tree.Open {
			r.stack = append(r.stack, frame{node: b.node, pos: line.Pos})
		}
	}

	return nil
}

func (r *run) closing(line token.Line, name string) *MalformedError {
	top, ok := r.top()
	if !ok {
		r.log.Debug().Str("pos", line.Pos.String()).Str("tag", name).Msg("ignoring unmatched closing tag")
		return nil
	}

	if top.node.Tag() != name {
		return newMalformedError(line.Pos, fmt.Sprintf("unexpected </%s>", name),
			token.NewErrDetail(top.pos, fmt.Sprintf("<%s> opened here", top.node.Tag()))).
			withHint(fmt.Sprintf("expected </%s>", top.node.Tag()))
	}

	top.node.Close()
	r.stack = r.stack[:len(r.stack)-1]

	return nil
}

func (r *run) declaration(line token.Line) *MalformedError {
	decl, ok := parseDeclaration(line.First())
	if !ok {
		return nil
	}

	r.log.Debug().Str("pos", line.Pos.String()).Str("target", decl.Target).Msg("recording declaration")
	r.doc.AddDeclaration(decl)

	if !r.p.strict || decl.Target != "xml" {
		return nil
	}

	v, ok := decl.Attributes.Get("version")
	if !ok {
		return nil
	}

	canonical := tree.CanonicalVersion(v)
	if canonical == "" {
		return newMalformedError(line.Pos, fmt.Sprintf("invalid version %q", v)).
			withHint("use a version like 1.0")
	}

	if semver.Major(canonical) != "v1" {
		return newMalformedError(line.Pos, fmt.Sprintf("unsupported version %s", v)).
			withHint("only version 1.x is supported")
	}

	return nil
}

// finish checks the stack after the last line.
func (r *run) finish() *MalformedError {
	top, ok := r.top()
	if !ok {
		return nil
	}

	if !r.p.strict {
		r.log.Debug().Int("open", len(r.stack)).Str("tag", top.node.Tag()).Msg("input ended with unclosed elements")
		return nil
	}

	return newMalformedError(top.pos, fmt.Sprintf("<%s> is never closed", top.node.Tag())).
		withHint(fmt.Sprintf("add </%s>", top.node.Tag()))
}

// parseDeclaration reads `?target key="value" ...?`.
func parseDeclaration(part string) (tree.Declaration, bool) {
	body := strings.TrimSuffix(strings.TrimPrefix(part, "?"), "?")

	words := strings.Fields(body)
	if len(words) == 0 {
		return tree.Declaration{}, false
	}

	return tree.Declaration{
		Target:     words[0],
		Attributes: parseAttributes(words[1:]),
	}, true
}
