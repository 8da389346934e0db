// Package dom provides the document substrate used by the l5x accessors.
//
// # Overview
//
// A Document is an arena of element nodes. Every node is addressed by a
// stable Handle and never moves in the arena; an Element is a lightweight
// (document, handle) pair, so accessors can hold on to elements while other
// parts of the tree are rewritten without dangling references.
//
// Each element has a name, an ordered list of string attributes, an ordered
// list of children and optional direct text.  Elements removed from the tree
// are detached rather than freed: their handles remain valid and Live
// reports false.
//
// # Free text
//
// Descriptions and comments are stored as CDATA sections in L5X files.
// The tree represents such a section as a child element named CDATA whose
// text is the verbatim payload.  Parse translates CDATA sections into these
// placeholders and Encode writes them back as CDATA sections.
package dom

import (
	"slices"
	"strings"
)

// Handle addresses a node in a Document arena.
type Handle int32

// NoHandle is the parent handle of roots and detached elements.
const NoHandle Handle = -1

type Attr struct {
	Name  string
	Value string
}

type node struct {
	name     string
	attrs    []Attr
	text     string
	parent   Handle
	children []Handle
}

type Document struct {
	nodes []node
	root  Handle

	// Header is the XML declaration written ahead of the root element.
	Header string
}

const DefaultHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// New creates a document with a single root element.
func New(rootName string, attrs ...Attr) *Document {
	d := &Document{root: NoHandle, Header: DefaultHeader}
	d.root = d.alloc(rootName, attrs)
	return d
}

func (d *Document) alloc(name string, attrs []Attr) Handle {
	h := Handle(len(d.nodes))
	d.nodes = append(d.nodes, node{
		name:   name,
		attrs:  slices.Clone(attrs),
		parent: NoHandle,
	})
	return h
}

func (d *Document) Root() Element {
	return Element{doc: d, h: d.root}
}

// NewElement allocates a detached element.
func (d *Document) NewElement(name string, attrs ...Attr) Element {
	return Element{doc: d, h: d.alloc(name, attrs)}
}

// Element returns the element addressed by h.
func (d *Document) Element(h Handle) Element {
	return Element{doc: d, h: h}
}

// Element is a handle to a node of a Document.  The zero Element is not
// part of any document; read accessors on it return zero values.
type Element struct {
	doc *Document
	h   Handle
}

func (e Element) IsZero() bool { return e.doc == nil }

func (e Element) Doc() *Document { return e.doc }

func (e Element) Handle() Handle { return e.h }

func (e Element) n() *node { return &e.doc.nodes[e.h] }

func (e Element) Name() string {
	if e.IsZero() {
		return ""
	}
	return e.n().name
}

func (e Element) Attr(name string) (string, bool) {
	if e.IsZero() {
		return "", false
	}
	for _, a := range e.n().attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets an attribute, appending it if it is not yet present.
func (e Element) SetAttr(name, value string) {
	n := e.n()
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

func (e Element) RemoveAttr(name string) bool {
	n := e.n()
	i := slices.IndexFunc(n.attrs, func(a Attr) bool { return a.Name == name })
	if i == -1 {
		return false
	}
	n.attrs = slices.Delete(n.attrs, i, i+1)
	return true
}

func (e Element) Attrs() []Attr {
	if e.IsZero() {
		return nil
	}
	return slices.Clone(e.n().attrs)
}

func (e Element) Text() string {
	if e.IsZero() {
		return ""
	}
	return e.n().text
}

func (e Element) SetText(text string) {
	e.n().text = text
}

func (e Element) Parent() (Element, bool) {
	if e.IsZero() {
		return Element{}, false
	}
	p := e.n().parent
	if p == NoHandle {
		return Element{}, false
	}
	return Element{doc: e.doc, h: p}, true
}

// Live reports whether the element is reachable from the document root.
func (e Element) Live() bool {
	if e.IsZero() {
		return false
	}
	h := e.h
	for {
		if h == e.doc.root {
			return true
		}
		h = e.doc.nodes[h].parent
		if h == NoHandle {
			return false
		}
	}
}

func (e Element) Children() []Element {
	if e.IsZero() {
		return nil
	}
	hs := e.n().children
	res := make([]Element, len(hs))
	for i, h := range hs {
		res[i] = Element{doc: e.doc, h: h}
	}
	return res
}

func (e Element) ChildCount() int {
	if e.IsZero() {
		return 0
	}
	return len(e.n().children)
}

func (e Element) ChildAt(i int) Element {
	return Element{doc: e.doc, h: e.n().children[i]}
}

// Child returns the first direct child with the given name.
func (e Element) Child(name string) (Element, bool) {
	return e.FindChild(func(c Element) bool { return c.Name() == name })
}

// FindChild returns the first direct child satisfying match.
func (e Element) FindChild(match func(Element) bool) (Element, bool) {
	if e.IsZero() {
		return Element{}, false
	}
	for _, h := range e.n().children {
		c := Element{doc: e.doc, h: h}
		if match(c) {
			return c, true
		}
	}
	return Element{}, false
}

func (e Element) ChildrenNamed(name string) []Element {
	var res []Element
	for _, c := range e.Children() {
		if c.Name() == name {
			res = append(res, c)
		}
	}
	return res
}

// Index returns the position of e among its parent's children, or -1 if
// it is detached.
func (e Element) Index() int {
	p, ok := e.Parent()
	if !ok {
		return -1
	}
	return slices.Index(p.n().children, e.h)
}

func (e Element) Append(name string, attrs ...Attr) Element {
	return e.Insert(e.ChildCount(), name, attrs...)
}

// Insert creates a child at position i.
func (e Element) Insert(i int, name string, attrs ...Attr) Element {
	c := e.doc.NewElement(name, attrs...)
	e.InsertElement(i, c)
	return c
}

// InsertElement attaches c as the i'th child of e, detaching it from its
// current parent first.  i is clamped to the valid range.
func (e Element) InsertElement(i int, c Element) {
	c.Remove()
	n := e.n()
	i = max(0, min(i, len(n.children)))
	n.children = slices.Insert(n.children, i, c.h)
	c.n().parent = e.h
}

// Remove detaches e from its parent.
func (e Element) Remove() {
	p, ok := e.Parent()
	if !ok {
		return
	}
	pn := p.n()
	if i := slices.Index(pn.children, e.h); i != -1 {
		pn.children = slices.Delete(pn.children, i, i+1)
	}
	e.n().parent = NoHandle
}

// RemoveChildren detaches every direct child satisfying match and returns
// how many were removed.
func (e Element) RemoveChildren(match func(Element) bool) int {
	count := 0
	for _, c := range e.Children() {
		if match(c) {
			c.Remove()
			count++
		}
	}
	return count
}

// Clone returns a detached deep copy of e.
func (e Element) Clone() Element {
	// copy out before allocating, the arena may grow
	n := *e.n()
	c := e.doc.NewElement(n.name, n.attrs...)
	c.n().text = n.text
	for _, h := range slices.Clone(n.children) {
		c.InsertElement(c.ChildCount(), Element{doc: e.doc, h: h}.Clone())
	}
	return c
}

// Ident names the element for error messages: its Name attribute, or
// Id(Type), or Id, or the element name.
func (e Element) Ident() string {
	if name, ok := e.Attr("Name"); ok {
		return name
	}
	id, hasID := e.Attr("Id")
	typ, hasType := e.Attr("Type")
	switch {
	case hasID && hasType:
		return id + "(" + typ + ")"
	case hasID:
		return id
	}
	return e.Name()
}

// String renders a short element description such as Tag[Name=foo].
func (e Element) String() string {
	if e.IsZero() {
		return "<nil>"
	}
	b := &strings.Builder{}
	b.WriteString(e.Name())
	attrs := e.n().attrs
	if len(attrs) == 0 {
		return b.String()
	}
	b.WriteByte('[')
	for i, a := range attrs {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.Name + "=" + a.Value)
	}
	b.WriteByte(']')
	return b.String()
}
