package xmlapi

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// MissingError reports a structurally required node or attribute that is absent
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required node %q", e.Path)
}

// Parse reads a response document; declared non UTF-8 charsets are decoded
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(bytes.TrimSpace(data)); err != nil {
		return nil, errors.Wrap(err, "failed to parse xml")
	}
	if doc.Root() == nil {
		return nil, errors.New("empty xml document")
	}
	return doc, nil
}

// Find returns the first element matching the slash separated path relative to root, or nil
func Find(root *etree.Element, path string) *etree.Element {
	if found := find(root, splitPath(path), 1); len(found) > 0 {
		return found[0]
	}
	return nil
}

// FindAll returns all elements matching the slash separated path relative to root in document order
func FindAll(root *etree.Element, path string) []*etree.Element {
	return find(root, splitPath(path), -1)
}

// Text returns the text of a required element
func Text(root *etree.Element, path string) (string, error) {
	e := Find(root, path)
	if e == nil {
		return "", &MissingError{Path: path}
	}
	return e.Text(), nil
}

// OptionalText returns the text of an element and whether it is present
func OptionalText(root *etree.Element, path string) (string, bool) {
	e := Find(root, path)
	if e == nil {
		return "", false
	}
	return e.Text(), true
}

// Attr returns a required attribute of e
func Attr(e *etree.Element, name string) (string, error) {
	a := e.SelectAttr(name)
	if a == nil {
		return "", &MissingError{Path: e.Tag + "/@" + name}
	}
	return a.Value, nil
}

// Bool reads a required boolean element
func Bool(root *etree.Element, path string) (bool, error) {
	v, err := Text(root, path)
	if err != nil {
		return false, err
	}
	return ParseBool(path, v)
}

// OptionalBool reads a boolean element if present
func OptionalBool(root *etree.Element, path string) (*bool, error) {
	v, ok := OptionalText(root, path)
	if !ok {
		return nil, nil
	}
	b, err := ParseBool(path, v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Int64 reads a required integer element
func Int64(root *etree.Element, path string) (int64, error) {
	v, err := Text(root, path)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid integer in %q", path)
	}
	return i, nil
}

// Time reads a required date element with the given layout
func Time(root *etree.Element, path, layout string) (time.Time, error) {
	v, err := Text(root, path)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid date in %q", path)
	}
	return t, nil
}

// ParseBool accepts true and false in any case
func ParseBool(path, v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errors.Errorf("invalid boolean %q in %q", v, path)
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// find walks the tree depth first; limit < 0 collects every match
func find(e *etree.Element, segments []string, limit int) []*etree.Element {
	if e == nil || len(segments) == 0 {
		return nil
	}
	var found []*etree.Element
	for _, child := range e.ChildElements() {
		if child.Tag != segments[0] {
			continue
		}
		if len(segments) == 1 {
			found = append(found, child)
		} else {
			remaining := -1
			if limit > 0 {
				remaining = limit - len(found)
			}
			found = append(found, find(child, segments[1:], remaining)...)
		}
		if limit > 0 && len(found) >= limit {
			return found[:limit]
		}
	}
	return found
}
