// Package xmlapi builds request documents and reads response documents of the xml api.
package xmlapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

const (
	// RequestDateLayout is the layout for dates sent to the api (MM/dd/yyyy HH:mm:ss)
	RequestDateLayout = "01/02/2006 15:04:05"
	// ResponseDateLayout is the layout for dates returned by the api (M/d/yy h:mm a)
	ResponseDateLayout = "1/2/06 3:04 PM"

	cdataTerminator = "]]>"
)

// Builder appends elements to a request document and tracks the element added last.
// A builder belongs to a single request; do not share it between goroutines.
type Builder struct {
	doc     *etree.Document
	current *etree.Element
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// NewBuilder returns a builder for an empty document
func NewBuilder() *Builder {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return &Builder{doc: doc}
}

// NewMethodBuilder returns a builder whose root element is named after the api method
func NewMethodBuilder(method string) *Builder {
	b := NewBuilder()
	b.Add(nil, method)
	return b
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Add appends a new element as the last child of parent and makes it the current element.
// A nil parent sets the element as document root, replacing any previous root.
func (b *Builder) Add(parent *etree.Element, name string) *etree.Element {
	var e *etree.Element
	if parent == nil {
		e = etree.NewElement(name)
		b.doc.SetRoot(e)
	} else {
		e = parent.CreateElement(name)
	}
	b.current = e
	return e
}

// AddText appends an element holding escaped text
func (b *Builder) AddText(parent *etree.Element, name, value string) *etree.Element {
	e := b.Add(parent, name)
	e.SetText(value)
	return e
}

// AddCData appends an element holding its value as CDATA
func (b *Builder) AddCData(parent *etree.Element, name, value string) *etree.Element {
	e := b.Add(parent, name)
	SetCData(e, value)
	return e
}

// AddInt appends an element holding a decimal integer
func (b *Builder) AddInt(parent *etree.Element, name string, value int64) *etree.Element {
	return b.AddText(parent, name, strconv.FormatInt(value, 10))
}

// AddBool appends an element holding "true" or "false"
func (b *Builder) AddBool(parent *etree.Element, name string, value bool) *etree.Element {
	return b.AddText(parent, name, strconv.FormatBool(value))
}

// AddFlag appends an empty element; its presence is the value
func (b *Builder) AddFlag(parent *etree.Element, name string) *etree.Element {
	return b.Add(parent, name)
}

// AddTime appends an element holding t in RequestDateLayout
func (b *Builder) AddTime(parent *etree.Element, name string, t time.Time) *etree.Element {
	return b.AddText(parent, name, t.Format(RequestDateLayout))
}

// Root returns the document root or nil
func (b *Builder) Root() *etree.Element {
	return b.doc.Root()
}

// Current returns the element added last
func (b *Builder) Current() *etree.Element {
	return b.current
}

// XML serializes the document
func (b *Builder) XML() (string, error) {
	return b.doc.WriteToString()
}

// SetCData replaces the text of e with CDATA sections holding value.
// "]]>" can not appear inside a section, so the value is split right after "]]".
func SetCData(e *etree.Element, value string) {
	e.SetText("")
	if !strings.Contains(value, cdataTerminator) {
		e.CreateCData(value)
		return
	}
	for {
		i := strings.Index(value, cdataTerminator)
		if i < 0 {
			e.CreateCData(value)
			return
		}
		e.CreateCData(value[:i+2])
		value = value[i+2:]
	}
}
