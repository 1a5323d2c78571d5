// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package bonsai

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/golangee/bonsai/parser"
	"github.com/golangee/bonsai/tree"
)

// Unmarshal parses text and binds the document root into the struct pointed to by into.
// As this uses go's reflect package, only exported fields are set. Fields without
// a matching element or attribute keep their value.
// You can set struct tags to influence the unmarshalling process.
// All tags have the form `bonsai:"..."` and are a list of comma separated identifiers.
//
// The first identifier renames the field, so that an element with that tag is used
// instead of the name of the struct field.
//
//	// This snippet...
//	<Library>
//	    <Book>Dune</Book>
//	</Library>
//	// could be unmarshalled into this go struct.
//	type Library struct {
//	    Title string `bonsai:"Book"`
//	}
//
// The second identifier tells what is read. Without it, the field is read from the
// child element with the given tag. With attr an attribute of the element is read,
// with value the inline value of the element itself.
//
//	// This snippet...
//	<Book id="7" lang="en">Dune</Book>
//	// could be unmarshalled into this go struct.
//	type Book struct {
//	    ID    int    `bonsai:"id,attr"`
//	    Lang  string `bonsai:"lang,attr"`
//	    Title string `bonsai:",value"`
//	}
//
// Values and attributes can be parsed into string, bool and the integer (signed and
// unsigned) and float types. Should the value not be valid for the target type, e.g.
// an integer that is too large or a negative value for an uint, an error is returned
// describing the issue. Slice fields collect all children with the matching tag.
func Unmarshal(text string, into any, opts ...parser.Option) error {
	if into == nil {
		return fmt.Errorf("cannot unmarshal into nil")
	}

	value := reflect.ValueOf(into)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("cannot unmarshal into non-pointer %T", into)
	}

	doc, err := parser.Parse(text, opts...)
	if err != nil {
		return err
	}

	root := doc.Root()
	if !root.Valid() {
		return NewUnmarshalError("", "document is empty", nil)
	}

	return unmarshaler{}.node(root, value)
}

// unmarshaler is a helper struct for easier managing the unmarshalling process.
type unmarshaler struct{}

// While unmarshalling we need to decide where a field is read from.
type unmarshalType int

const (
	unmarshalChild unmarshalType = iota
	unmarshalAttribute
	unmarshalValue
)

// UnmarshalError is an error that occurred during unmarshalling.
// It contains the tag of the offending element, a string with details and an underlying error (if any).
type UnmarshalError struct {
	Tag      string
	Detail   string
	wrapping error
}

func NewUnmarshalError(tag string, detail string, wrapping error) *UnmarshalError {
	return &UnmarshalError{
		Tag:      tag,
		Detail:   detail,
		wrapping: wrapping,
	}
}

func (u *UnmarshalError) Error() string {
	if u.wrapping != nil {
		return fmt.Sprintf("cannot unmarshal into '%s', %s: %s", u.Tag, u.Detail, u.wrapping.Error())
	}

	return fmt.Sprintf("cannot unmarshal into '%s', %s", u.Tag, u.Detail)
}

func (u *UnmarshalError) Unwrap() error {
	return u.wrapping
}

// node places the contents of the element under the cursor inside the given value.
func (u unmarshaler) node(c *tree.Cursor, value reflect.Value) error {
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			value.Set(reflect.New(value.Type().Elem()))
		}

		return u.node(c, value.Elem())
	case reflect.Struct:
		return u.structFields(c, value)
	case reflect.Slice:
		// a slice reached directly holds all children
		for _, child := range c.Children() {
			element := reflect.New(value.Type().Elem()).Elem()
			if err := u.node(child, element); err != nil {
				return NewUnmarshalError(c.Tag(), fmt.Sprintf("cannot read slice children for '%s'", c.Tag()), err)
			}

			value.Set(reflect.Append(value, element))
		}

		return nil
	case reflect.Array:
		return NewUnmarshalError(c.Tag(), "arrays not supported, use a slice instead", nil)
	default:
		if err := setPrimitive(value, c.Value()); err != nil {
			return NewUnmarshalError(c.Tag(), "invalid value", err)
		}

		return nil
	}
}

func (u unmarshaler) structFields(c *tree.Cursor, value reflect.Value) error {
	for i := 0; i < value.NumField(); i++ {
		fieldType := value.Type().Field(i)
		field := value.Field(i)

		if !fieldType.IsExported() {
			continue
		}

		fieldName := fieldType.Name
		unmarshalAs := unmarshalChild

		// Some tags will change the behavior of how this field will be processed.
		if structTag, ok := fieldType.Tag.Lookup("bonsai"); ok {
			tags := strings.Split(structTag, ",")

			if structTag == "-" {
				continue
			}

			// The first tag will rename the field
			if rename := tags[0]; len(rename) > 0 {
				fieldName = rename
			}

			// The second tag indicates what we are reading
			if len(tags) > 1 {
				switch as := tags[1]; as {
				case "attr":
					unmarshalAs = unmarshalAttribute
				case "value":
					unmarshalAs = unmarshalValue
				case "":
					unmarshalAs = unmarshalChild
				default:
					return NewUnmarshalError(c.Tag(), fmt.Sprintf("field type '%s' invalid", as), nil)
				}
			}
		}

		switch unmarshalAs {
		case unmarshalChild:
			if err := u.children(c, fieldName, field); err != nil {
				return NewUnmarshalError(c.Tag(), fmt.Sprintf("while processing field '%s'", fieldType.Name), err)
			}
		case unmarshalAttribute:
			attr, ok := c.Attribute(fieldName)
			if !ok {
				continue
			}

			if err := setPrimitive(field, attr); err != nil {
				return NewUnmarshalError(c.Tag(), fmt.Sprintf("attribute '%s' requires primitive type", fieldName), err)
			}
		case unmarshalValue:
			if err := setPrimitive(field, c.Value()); err != nil {
				return NewUnmarshalError(c.Tag(), fmt.Sprintf("value for '%s' invalid", fieldType.Name), err)
			}
		}
	}

	return nil
}

// children reads the children with the given tag into field. A slice gets all of
// them, anything else only the first one.
func (u unmarshaler) children(c *tree.Cursor, tag string, field reflect.Value) error {
	var matching []*tree.Cursor

	for _, child := range c.Children() {
		if child.Tag() == tag {
			matching = append(matching, child)
		}
	}

	if len(matching) == 0 {
		return nil
	}

	if field.Kind() != reflect.Slice {
		return u.node(matching[0], field)
	}

	for _, child := range matching {
		element := reflect.New(field.Type().Elem()).Elem()
		if err := u.node(child, element); err != nil {
			return err
		}

		field.Set(reflect.Append(field, element))
	}

	return nil
}

var errUnsupportedType = errors.New("unsupported type")

// setPrimitive parses text into value, which is a primitive or a pointer to one.
func setPrimitive(value reflect.Value, text string) error {
	valueType := value.Type()

	switch value.Kind() {
	case reflect.String:
		value.SetString(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return fmt.Errorf("'%s' is not a valid integer: %w", text, err)
		}

		if value.OverflowInt(i) {
			return fmt.Errorf("value for '%s' out of bounds", valueType.Name())
		}

		value.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return fmt.Errorf("'%s' is not a valid unsigned integer: %w", text, err)
		}

		if value.OverflowUint(i) {
			return fmt.Errorf("value for '%s' out of bounds", valueType.Name())
		}

		value.SetUint(i)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("'%s' is not a valid boolean: %w", text, err)
		}

		value.SetBool(b)
	case reflect.Float64, reflect.Float32:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), valueType.Bits())
		if err != nil {
			return fmt.Errorf("'%s' is not a valid float: %w", text, err)
		}

		value.SetFloat(f)
	case reflect.Ptr:
		if value.IsNil() {
			value.Set(reflect.New(valueType.Elem()))
		}

		return setPrimitive(value.Elem(), text)
	default:
		return fmt.Errorf("%w '%s'", errUnsupportedType, valueType)
	}

	return nil
}
