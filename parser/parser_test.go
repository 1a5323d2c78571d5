// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/golangee/bonsai/tree"
	"github.com/r3labs/diff/v2"
	"github.com/rs/zerolog"
)

// element is a plain copy of a tree node, which diff can compare.
type element struct {
	Tag        string
	Value      string
	State      string
	Attributes map[string]string
	Children   []*element
}

// el creates an expected element, which is Closed unless open is called.
func el(tag string) *element {
	return &element{
		Tag:        tag,
		State:      tree.Closed.String(),
		Attributes: map[string]string{},
	}
}

// val sets the value and can be used builder-style.
func (e *element) val(v string) *element {
	e.Value = v
	return e
}

// attr adds an attribute and can be used builder-style.
func (e *element) attr(key, value string) *element {
	e.Attributes[key] = value
	return e
}

// open marks the element as never closed.
func (e *element) open() *element {
	e.State = tree.Open.String()
	return e
}

// add appends children and can be used builder-style.
func (e *element) add(children ...*element) *element {
	e.Children = append(e.Children, children...)
	return e
}

func snapshot(doc *tree.Document) []*element {
	var res []*element

	c := doc.Root()
	if !c.Valid() {
		return res
	}

	for {
		res = append(res, snapshotCursor(c))
		if !c.NextSibling() {
			break
		}
	}

	return res
}

func snapshotCursor(c *tree.Cursor) *element {
	e := &element{
		Tag:        c.Tag(),
		Value:      c.Value(),
		State:      c.State().String(),
		Attributes: map[string]string(c.Attributes()),
	}

	for _, child := range c.Children() {
		e.Children = append(e.Children, snapshotCursor(child))
	}

	return e
}

func TestParser(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		strict  bool
		want    []*element
		wantErr bool
	}{
		{
			name: "empty",
			text: "",
		},
		{
			name: "only blank lines",
			text: "\n   \n\t\n",
		},
		{
			name: "flat complete elements",
			text: "<A>1</A>\n<B>2</B>\n<C>3</C>",
			want: []*element{
				el("A").val("1"),
				el("B").val("2"),
				el("C").val("3"),
			},
		},
		{
			name: "nesting",
			text: "<Parent name=\"John\">\n<Child>Child 1</Child>\n<Child>Child 2</Child>\n</Parent>",
			want: []*element{
				el("Parent").attr("name", "John").add(
					el("Child").val("Child 1"),
					el("Child").val("Child 2"),
				),
			},
		},
		{
			name: "indented deep nesting",
			text: `<?xml version="1.0" encoding="UTF-8"?>
<!-- a comment -->
<Library>
    <Shelf id="1">
        <Book lang="en">Dune</Book>
        <Book lang="de">Momo</Book>
    </Shelf>
    <Shelf id="2">
    </Shelf>
</Library>`,
			want: []*element{
				el("Library").add(
					el("Shelf").attr("id", "1").add(
						el("Book").attr("lang", "en").val("Dune"),
						el("Book").attr("lang", "de").val("Momo"),
					),
					el("Shelf").attr("id", "2"),
				),
			},
		},
		{
			name: "attribute overwrite",
			text: `<A id="1" id="2">x</A>`,
			want: []*element{
				el("A").attr("id", "2").val("x"),
			},
		},
		{
			name: "attribute without value",
			text: "<input disabled>\n</input>",
			want: []*element{
				el("input").attr("disabled", "disabled"),
			},
		},
		{
			name: "empty complete element",
			text: "<A></A>",
			want: []*element{
				el("A"),
			},
		},
		{
			name: "unmatched closing tag on top level",
			text: "</X>",
		},
		{
			name: "unmatched closing tag after root",
			text: "<A>1</A>\n</X>\n<B>2</B>",
			want: []*element{
				el("A").val("1"),
				el("B").val("2"),
			},
		},
		{
			name: "self closing tags",
			text: "<A>\n<br/>\n<B>1</B>\n</A>",
			want: []*element{
				el("A").add(el("B").val("1")),
			},
		},
		{
			name: "unclosed at end is tolerated",
			text: "<A>\n<B>\n<C>1</C>",
			want: []*element{
				el("A").open().add(
					el("B").open().add(
						el("C").val("1"),
					),
				),
			},
		},
		{
			name:    "unclosed at end in strict mode",
			text:    "<A>\n<B>\n<C>1</C>",
			strict:  true,
			wantErr: true,
		},
		{
			name:    "mismatch",
			text:    "<A>\n</B>",
			wantErr: true,
		},
		{
			name:    "complete element mismatch",
			text:    "<A>1</B>",
			wantErr: true,
		},
		{
			name:    "two parts",
			text:    "<A>x<B",
			wantErr: true,
		},
		{
			name: "more than three parts without value",
			text: "<A>x</A><A>y</A>",
			want: []*element{
				el("A"),
			},
		},
		{
			name:   "strict accepts version 1.0",
			text:   "<?xml version=\"1.0\"?>\n<A>1</A>",
			strict: true,
			want: []*element{
				el("A").val("1"),
			},
		},
		{
			name:    "strict rejects version 2.0",
			text:    "<?xml version=\"2.0\"?>\n<A>1</A>",
			strict:  true,
			wantErr: true,
		},
		{
			name:    "strict rejects invalid version",
			text:    "<?xml version=\"abc\"?>\n<A>1</A>",
			strict:  true,
			wantErr: true,
		},
		{
			name: "lenient ignores version",
			text: "<?xml version=\"2.0\"?>\n<A>1</A>",
			want: []*element{
				el("A").val("1"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := New(WithStrict(tt.strict)).Parse("parser_test.bonsai", tt.text)

			if !tt.wantErr && err != nil {
				t.Error(err)
				return
			}

			if tt.wantErr && err == nil {
				t.Errorf("expected error, but did not get one")
				return
			}

			if tt.wantErr {
				if !errors.Is(err, ErrMalformedDocument) {
					t.Errorf("expected a malformed document, got %v", err)
				}

				if doc != nil {
					t.Errorf("an aborted parse must not return a document")
				}

				return
			}

			differences, err := diff.Diff(tt.want, snapshot(doc), diff.SliceOrdering(true))
			if err != nil {
				t.Error(err)
				return
			}

			// These descriptions map the type of a change to a more readable format.
			changeTypeDescription := map[string]string{
				"create": "was added",
				"update": "is different",
				"delete": "is missing",
			}

			for _, d := range differences {
				t.Errorf("property '%s' %s, expected %s but got %s",
					strings.Join(d.Path, "."),
					changeTypeDescription[d.Type],
					PrettyValue(d.From), PrettyValue(d.To))
			}
		})
	}
}

// PrettyValue transforms values into a human readable form.
func PrettyValue(v interface{}) string {
	if s, ok := v.(*string); ok {
		return fmt.Sprintf("%#v", *s)
	}

	return fmt.Sprintf("%#v", v)
}

func TestDocumentOrder(t *testing.T) {
	var sb strings.Builder

	var want []string

	sb.WriteString("<Root>\n")

	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "<Group n=\"%d\">\n", i)

		for j := 0; j < 5; j++ {
			fmt.Fprintf(&sb, "<Item>%d.%d</Item>\n", i, j)
			want = append(want, fmt.Sprintf("%d.%d", i, j))
		}

		sb.WriteString("</Group>\n")
	}

	sb.WriteString("</Root>\n")

	doc, err := Parse(sb.String())
	if err != nil {
		t.Fatal(err)
	}

	var got []string

	doc.Walk(func(depth int, c *tree.Cursor) bool {
		if c.Tag() == "Item" {
			got = append(got, c.Value())
		}

		return true
	})

	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("document order not preserved")
	}

	if doc.Len() != 1+50+50*5 {
		t.Fatalf("unexpected node count %d", doc.Len())
	}
}

func TestMalformedPartial(t *testing.T) {
	_, err := Parse("<A>\n</B>")

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedError, got %T", err)
	}

	root := malformed.Partial.Root()
	if root.Tag() != "A" || root.State() != tree.Open {
		t.Fatalf("expected open A in partial tree, got %s %s", root.Tag(), root.State())
	}

	if pos := malformed.Pos(); pos.Line != 2 || pos.Column != 1 {
		t.Fatalf("unexpected position %s", pos)
	}

	if len(malformed.Details) != 2 || malformed.Details[1].Pos.Line != 1 {
		t.Fatalf("expected a detail pointing to the opening tag")
	}

	if malformed.Hint != "expected </A>" {
		t.Fatalf("unexpected hint %q", malformed.Hint)
	}

	want := "2:1: unexpected </B>: malformed document"
	if err.Error() != want {
		t.Fatalf("expected %q but got %q", want, err.Error())
	}
}

func TestStrictUnclosedPosition(t *testing.T) {
	_, err := New(WithStrict(true)).Parse("doc.bonsai", "<A>\n  <B>\n")

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedError, got %v", err)
	}

	pos := malformed.Pos()
	if pos.Filename != "doc.bonsai" || pos.Line != 2 || pos.Column != 3 {
		t.Fatalf("expected innermost element position, got %s", pos)
	}
}

func TestDeclarations(t *testing.T) {
	doc, err := Parse("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<?xml-stylesheet href=\"style.css\"?>\n<!DOCTYPE note>\n<A>1</A>")
	if err != nil {
		t.Fatal(err)
	}

	decls := doc.Declarations()
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(decls))
	}

	if enc, _ := decls[0].Attributes.Get("encoding"); decls[0].Target != "xml" || enc != "UTF-8" {
		t.Fatalf("unexpected declaration %#v", decls[0])
	}

	if href, _ := decls[1].Attributes.Get("href"); href != "style.css" {
		t.Fatalf("unexpected href %q", href)
	}

	if doc.Version() != "v1.0.0" {
		t.Fatalf("unexpected version %q", doc.Version())
	}
}

func TestNavigationIsIdempotent(t *testing.T) {
	doc, err := Parse("<A>\n<B>1</B>\n<C>2</C>\n</A>")
	if err != nil {
		t.Fatal(err)
	}

	c := doc.Root()
	if c.Parent() || c.Tag() != "A" {
		t.Fatal("moving to the parent of the root must be a no-op")
	}

	c.FirstChild()
	c.NextSibling()

	if c.NextSibling() || c.Tag() != "C" {
		t.Fatal("moving past the last sibling must be a no-op")
	}
}

func TestLoggerReceivesDebugMessages(t *testing.T) {
	var buf bytes.Buffer

	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := New(WithLogger(logger)).Parse("log.bonsai", "</X>\n<br/>\n<A>")
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, msg := range []string{"ignoring unmatched closing tag", "skipping self-closing tag", "input ended with unclosed elements"} {
		if !strings.Contains(out, msg) {
			t.Errorf("expected log message %q in %s", msg, out)
		}
	}
}

func TestConcurrentParse(t *testing.T) {
	p := New()

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			text := fmt.Sprintf("<A n=\"%d\">\n<B>%d</B>\n</A>", i, i)

			doc, err := p.Parse("", text)
			if err != nil {
				t.Error(err)
				return
			}

			if n, _ := doc.Root().Attribute("n"); n != fmt.Sprint(i) {
				t.Errorf("parses interfered, got n=%s", n)
			}
		}(i)
	}

	wg.Wait()
}
