// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package source acquires the text of a document from a file, a URL or a reader and
// decodes it into UTF-8.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultMaxBytes  = 16 << 20
	DefaultUserAgent = "bonsai/1.0"
)

// Document is the decoded text of a location.
type Document struct {
	// Location is the final URL after redirects or the path which was read.
	Location    string
	Text        string
	ContentType string
	// Charset is the name of the encoding the text was decoded from.
	Charset string
}

// Option configures a Loader.
type Option func(l *Loader)

// WithTimeout sets the timeout of HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// WithMaxBytes limits the size of a document. Zero or less means no limit.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) {
		l.maxBytes = n
	}
}

// WithBaseDir resolves relative paths against dir.
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithHTTPClient replaces the default client. The timeout option does not apply to it.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithStdin sets the reader used for the location "-".
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

// Loader fetches documents. It is safe for concurrent use.
type Loader struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
	baseDir   string
	stdin     io.Reader
	logger    zerolog.Logger
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
		stdin:     os.Stdin,
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		// the jar keeps session cookies across redirects
		jar, err := cookiejar.New(&cookiejar.Options{
			PublicSuffixList: publicsuffix.List,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}

		l.client = &http.Client{
			Jar:     jar,
			Timeout: l.timeout,
		}
	}

	return l, nil
}

// Load reads the document at location, which is an http or https URL, a file URL,
// a path or "-" for stdin. Relative paths are resolved against the base dir.
func (l *Loader) Load(ctx context.Context, location string) (*Document, error) {
	if location == "-" {
		return l.LoadReader(ctx, location, l.stdin, "")
	}

	u, err := url.Parse(location)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l.fetch(ctx, location)
		case "file":
			return l.loadFile(ctx, u.Path)
		}
	}

	return l.loadFile(ctx, location)
}

// LoadReader reads and decodes everything from r. The contentType may be empty.
func (l *Loader) LoadReader(ctx context.Context, name string, r io.Reader, contentType string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, newUnavailableError(name, err)
	}

	start := time.Now()

	body, err := l.readAll(r)
	if err != nil {
		return nil, newUnavailableError(name, err)
	}

	return l.decode(name, body, contentType, start)
}

func (l *Loader) loadFile(ctx context.Context, path string) (*Document, error) {
	path = l.resolve(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, newUnavailableError(path, err)
	}

	defer f.Close()

	return l.LoadReader(ctx, path, f, "")
}

// resolve joins relative paths with the base dir.
func (l *Loader) resolve(path string) string {
	if !filepath.IsAbs(path) && l.baseDir != "" {
		return filepath.Join(l.baseDir, path)
	}

	return path
}

func (l *Loader) fetch(ctx context.Context, location string) (*Document, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, newUnavailableError(location, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/xml, text/xml, */*")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, newUnavailableError(location, fmt.Errorf("request failed: %w", err))
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newUnavailableError(location, fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := l.readAll(resp.Body)
	if err != nil {
		return nil, newUnavailableError(location, err)
	}

	if resp.Request != nil && resp.Request.URL != nil {
		location = resp.Request.URL.String()
	}

	return l.decode(location, body, resp.Header.Get("Content-Type"), start)
}

// readAll reads at most maxBytes and fails if there is more.
func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	if l.maxBytes <= 0 {
		return io.ReadAll(r)
	}

	body, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, err
	}

	if int64(len(body)) > l.maxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", l.maxBytes)
	}

	return body, nil
}

func (l *Loader) decode(location string, body []byte, contentType string, start time.Time) (*Document, error) {
	text, name, err := Decode(body, contentType)
	if err != nil {
		return nil, newUnavailableError(location, err)
	}

	l.logger.Debug().
		Str("location", location).
		Int("bytes", len(body)).
		Str("charset", name).
		Dur("took", time.Since(start)).
		Msg("loaded document")

	return &Document{
		Location:    location,
		Text:        text,
		ContentType: contentType,
		Charset:     name,
	}, nil
}
