// Package tag implements typed access to tag values.
//
// A Tag wraps a Tag element.  Its decorated data, the Data child with
// Format="Decorated", is exposed as a tree of Data nodes:
//
//	t, _ := scope.Get("timer")
//	pre, _ := t.Get("PRE")
//	pre.SetValue(1500)
//
// Every successful value write removes the raw copies of the data that
// exports carry alongside the decorated form, so the two never disagree.
package tag

import (
	"github.com/signadot/l5x/debug"
	"github.com/signadot/l5x/dict"
	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
	"github.com/signadot/l5x/field"
	"github.com/signadot/l5x/lang"
)

const (
	Base     = "Base"
	Alias    = "Alias"
	Produced = "Produced"
	Consumed = "Consumed"

	// DecoratedFormat marks the typed copy of a tag's data.
	DecoratedFormat = "Decorated"
	// L5KFormat marks a raw copy in controller text form.
	L5KFormat = "L5K"
)

var (
	nameField     = field.String("Name", true)
	dataTypeField = field.String("DataType", false)
	tagTypeField  = field.String("TagType", false)
	constant      = field.Bool("Constant")
	aliasFor      = field.String("AliasFor", true)
	producer      = field.String("Producer", false)
	remoteTag     = field.NonEmpty("RemoteTag")
)

type Tag struct {
	elem dom.Element
	lang lang.Context
}

func New(elem dom.Element, ctx lang.Context) *Tag {
	return &Tag{elem: elem, lang: ctx}
}

func (t *Tag) Element() dom.Element { return t.elem }

func (t *Tag) Name() string {
	n, _, _ := nameField.Get(t.elem)
	return n
}

func (t *Tag) DataType() string {
	d, _, _ := dataTypeField.Get(t.elem)
	return d
}

// TagType is Base unless the tag says otherwise.
func (t *Tag) TagType() string {
	if tt, ok, _ := tagTypeField.Get(t.elem); ok {
		return tt
	}
	return Base
}

func (t *Tag) Language() lang.Context { return t.lang }

// WithLanguage returns a copy of t whose texts are accessed in ctx.
func (t *Tag) WithLanguage(ctx lang.Context) *Tag {
	return &Tag{elem: t.elem, lang: ctx}
}

func (t *Tag) Description() (string, bool) {
	return lang.Description(t.elem).Get(t.lang)
}

func (t *Tag) SetDescription(text string) {
	lang.Description(t.elem).Set(t.lang, text)
}

func (t *Tag) DeleteDescription() {
	lang.Description(t.elem).Delete(t.lang)
}

// Comment returns the comment of an operand below the tag, such as
// ".PRE" or "[3].1".
func (t *Tag) Comment(operand string) (string, bool) {
	return lang.Comment(t.elem, operand).Get(t.lang)
}

func (t *Tag) Constant() (bool, error) {
	v, _, err := constant.Get(t.elem)
	return v, err
}

func (t *Tag) SetConstant(v bool) error {
	return constant.Set(t.elem, v)
}

// AliasFor is the operand an alias tag refers to.
func (t *Tag) AliasFor() (string, error) {
	if t.TagType() != Alias {
		return "", errs.Capability(t.Name(), "%s tag %s is not an alias", t.TagType(), t.Name())
	}
	v, _, err := aliasFor.Get(t.elem)
	return v, err
}

func (t *Tag) SetAliasFor(operand string) error {
	if t.TagType() != Alias {
		return errs.Capability(t.Name(), "%s tag %s is not an alias", t.TagType(), t.Name())
	}
	return aliasFor.Set(t.elem, operand)
}

// consumeInfo returns the ConsumeInfo child, inserting it first among
// the children when create is set.  Without create a missing child is
// reported as !ok.
func (t *Tag) consumeInfo(create bool) (ci dom.Element, ok bool, err error) {
	if t.TagType() != Consumed {
		return dom.Element{}, false, errs.Capability(t.Name(), "%s tag %s is not consumed", t.TagType(), t.Name())
	}
	if c, found := t.elem.Child("ConsumeInfo"); found {
		return c, true, nil
	}
	if !create {
		return dom.Element{}, false, nil
	}
	return t.elem.Insert(0, "ConsumeInfo"), true, nil
}

// Producer names the controller producing a consumed tag.  It is empty
// when the tag has no ConsumeInfo yet.
func (t *Tag) Producer() (string, error) {
	ci, ok, err := t.consumeInfo(false)
	if err != nil || !ok {
		return "", err
	}
	v, _, err := producer.Get(ci)
	return v, err
}

func (t *Tag) SetProducer(name string) error {
	ci, _, err := t.consumeInfo(true)
	if err != nil {
		return err
	}
	return producer.Set(ci, name)
}

// RemoteTag names the produced tag a consumed tag reads.
func (t *Tag) RemoteTag() (string, error) {
	ci, ok, err := t.consumeInfo(false)
	if err != nil || !ok {
		return "", err
	}
	v, _, err := remoteTag.Get(ci)
	return v, err
}

func (t *Tag) SetRemoteTag(name string) error {
	ci, _, err := t.consumeInfo(true)
	if err != nil {
		return err
	}
	return remoteTag.Set(ci, name)
}

func isDecorated(e dom.Element) bool {
	f, _ := e.Attr("Format")
	return e.Name() == "Data" && f == DecoratedFormat
}

func isRaw(e dom.Element) bool {
	if e.Name() != "Data" {
		return false
	}
	f, ok := e.Attr("Format")
	return !ok || f == L5KFormat
}

// HasRawData reports whether the tag still carries undecorated data.
func (t *Tag) HasRawData() bool {
	_, ok := t.elem.FindChild(isRaw)
	return ok
}

func (t *Tag) removeRaw() {
	n := t.elem.RemoveChildren(isRaw)
	if n != 0 && debug.Data() {
		debug.Logf("removed %d raw data elements from %s\n", n, t.Name())
	}
}

// Data returns the top-level node of the decorated data.
func (t *Tag) Data() (Data, error) {
	dec, ok := t.elem.FindChild(isDecorated)
	if !ok || dec.ChildCount() == 0 {
		return nil, errs.Capability(t.Name(), "tag %s has no decorated data", t.Name())
	}
	return newData(dec.ChildAt(0), t.DataType(), Decimal, t, nil)
}

func (t *Tag) Value() (any, error) {
	d, err := t.Data()
	if err != nil {
		return nil, err
	}
	return d.Value()
}

func (t *Tag) SetValue(v any) error {
	d, err := t.Data()
	if err != nil {
		return err
	}
	return d.SetValue(v)
}

func (t *Tag) array() (*Array, error) {
	d, err := t.Data()
	if err != nil {
		return nil, err
	}
	a, ok := d.(*Array)
	if !ok {
		return nil, errs.Capability(t.Name(), "tag %s is not an array", t.Name())
	}
	return a, nil
}

func (t *Tag) Shape() ([]int, error) {
	a, err := t.array()
	if err != nil {
		return nil, err
	}
	return a.Shape()
}

func (t *Tag) SetShape(shape []int) error {
	a, err := t.array()
	if err != nil {
		return err
	}
	return a.SetShape(shape)
}

// Get navigates from the top-level value through keys: member names,
// array indices and bit numbers.
func (t *Tag) Get(keys ...any) (Data, error) {
	d, err := t.Data()
	if err != nil {
		return nil, err
	}
	for _, k := range keys {
		ix, ok := d.(Indexer)
		if !ok {
			return nil, errs.Capability(d.Operand(), "%s cannot be indexed", d.Element().Name())
		}
		d, err = ix.Index(k)
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Scope is the set of tags in a controller or program, keyed by name.
type Scope struct {
	*dict.Dict[string, *Tag]
}

// NewScope reads the Tags child of parent.  A parent without one has an
// empty scope.
func NewScope(parent dom.Element, ctx lang.Context) Scope {
	tags, _ := parent.Child("Tags")
	return Scope{dict.New(tags, "Name", func(e dom.Element) (*Tag, error) {
		return New(e, ctx), nil
	})}
}

// Lookup resolves a full operand such as "timer.PRE" or "arr[2,1].3".
func (s Scope) Lookup(operand string) (*Tag, Data, error) {
	name, keys, err := ParseOperand(operand)
	if err != nil {
		return nil, nil, err
	}
	t, err := s.Get(name)
	if err != nil {
		return nil, nil, err
	}
	d, err := t.Get(keys...)
	if err != nil {
		return nil, nil, err
	}
	return t, d, nil
}
