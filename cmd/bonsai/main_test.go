// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golangee/bonsai/config"
	"github.com/golangee/bonsai/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `<?xml version="1.0"?>
<Parent name="John">
<Child>Child 1</Child>
<Child>Child 2</Child>
</Parent>`

// execute runs the command line with a fresh home directory, so no user
// configuration is picked up.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "bonsai dev\n", stdout)
}

func TestParseMarkup(t *testing.T) {
	path := writeFile(t, "doc.xml", document)

	stdout, _, err := execute(t, "", "parse", path, "--indent", "2")
	require.NoError(t, err)

	want := `<?xml version="1.0"?>
<Parent name="John">
  <Child>Child 1</Child>
  <Child>Child 2</Child>
</Parent>
`
	assert.Equal(t, want, stdout)
}

func TestParseJSONFromStdin(t *testing.T) {
	stdout, _, err := execute(t, document, "parse", "-", "--format", "json")
	require.NoError(t, err)

	var dump struct {
		Version  string `json:"version"`
		Elements []struct {
			Tag      string `json:"tag"`
			Children []struct {
				Value string `json:"value"`
			} `json:"children"`
		} `json:"elements"`
	}

	require.NoError(t, json.Unmarshal([]byte(stdout), &dump))
	assert.Equal(t, "v1.0.0", dump.Version)
	require.Len(t, dump.Elements, 1)
	assert.Equal(t, "Parent", dump.Elements[0].Tag)
	require.Len(t, dump.Elements[0].Children, 2)
	assert.Equal(t, "Child 2", dump.Elements[0].Children[1].Value)
}

func TestParseYAMLFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write([]byte(document))
	}))
	defer server.Close()

	stdout, _, err := execute(t, "", "parse", server.URL+"/doc.xml", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tag: Parent")
	assert.Contains(t, stdout, "value: Child 1")
}

func TestParseXML(t *testing.T) {
	path := writeFile(t, "doc.xml", document)

	stdout, _, err := execute(t, "", "parse", path, "--format", "xml")
	require.NoError(t, err)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><root><Parent name="John"><Child>Child 1</Child><Child>Child 2</Child></Parent></root>`, stdout)
}

func TestParseHighlight(t *testing.T) {
	path := writeFile(t, "doc.xml", document)

	stdout, _, err := execute(t, "", "parse", path, "--format", "json", "--highlight")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\x1b[")

	plain, _, err := execute(t, "", "parse", path, "--format", "json")
	require.NoError(t, err)
	assert.NotContains(t, plain, "\x1b[")
}

func TestParseWatchRejectsStdin(t *testing.T) {
	_, _, err := execute(t, document, "parse", "-", "--watch")
	assert.ErrorContains(t, err, "--watch needs a local file")
}

func TestParseInvalidFormat(t *testing.T) {
	path := writeFile(t, "doc.xml", document)

	_, _, err := execute(t, "", "parse", path, "--format", "toml")
	assert.ErrorContains(t, err, "invalid output format")
}

func TestParseMalformed(t *testing.T) {
	path := writeFile(t, "broken.xml", "<A>\n</B>")

	_, stderr, err := execute(t, "", "parse", path)
	require.ErrorIs(t, err, parser.ErrMalformedDocument)
	assert.Contains(t, stderr, "2 |</B>")
	assert.Contains(t, stderr, "unexpected </B>")
}

func TestParseStrict(t *testing.T) {
	path := writeFile(t, "open.xml", "<A>\n<B>1</B>")

	_, _, err := execute(t, "", "parse", path)
	require.NoError(t, err)

	_, stderr, err := execute(t, "", "--strict", "parse", path)
	require.ErrorIs(t, err, parser.ErrMalformedDocument)
	assert.Contains(t, stderr, "<A> is never closed")
}

func TestParseStrictFromConfig(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "parser:\n  strict: true\n")
	path := writeFile(t, "open.xml", "<A>\n<B>1</B>")

	_, _, err := execute(t, "", "--config", cfgPath, "parse", path)
	require.ErrorIs(t, err, parser.ErrMalformedDocument)

	_, _, err = execute(t, "", "--config", cfgPath, "--strict=false", "parse", path)
	require.NoError(t, err)
}

func TestParseVerboseLogs(t *testing.T) {
	path := writeFile(t, "doc.xml", document)

	_, stderr, err := execute(t, "", "-v", "parse", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "parsed document")
}

func TestParseMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	path := writeFile(t, "doc.xml", document)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{name: "second child", args: []string{"Child[2]"}, want: "Child 2\n"},
		{name: "first child", args: []string{"Child"}, want: "Child 1\n"},
		{name: "root attribute", args: []string{"", "--attr", "name"}, want: "John\n"},
		{name: "missing element", args: []string{"Child[3]"}, wantErr: "no element at"},
		{name: "missing attribute", args: []string{"Child", "--attr", "id"}, wantErr: "has no attribute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "", append([]string{"get", path}, tt.args...)...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bonsai", "config.yaml")

	stdout, _, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	_, _, err = execute(t, "", "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = execute(t, "", "config", "init", path, "--force")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	stdout, _, err = execute(t, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "format: markup")
	assert.Contains(t, stdout, "timeout_sec: 30")
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("BONSAI_OUTPUT_FORMAT", "json")

	stdout, _, err := execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "format: json")
}
