package tag

import (
	"strings"

	"github.com/signadot/l5x/debug"
	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
	"github.com/signadot/l5x/lang"
)

// Data is a node of a tag's decorated value tree: an *Integer, *Bit,
// *Float, *Array, *Dim or *Structure.
type Data interface {
	// Element is the backing element.  Bits and dimension views share
	// the element of the node they view.
	Element() dom.Element
	// Operand is the path from the tag to the node, such as
	// ".TIMER.PRE", "[4][2]" or ".CTRL.3".  The tag's top-level value has
	// the empty operand.
	Operand() string

	Value() (any, error)
	// SetValue validates v completely before writing anything, then
	// removes the tag's raw data.
	SetValue(v any) error

	Description() (string, bool, error)
	SetDescription(text string) error
	DeleteDescription() error

	owner() *Tag
	prepare(v any) (commit func(), err error)
}

// Indexer is implemented by nodes with addressable children: arrays and
// dimension views take integer indices, structures member names and
// integers bit numbers.
type Indexer interface {
	Index(key any) (Data, error)
}

type base struct {
	elem   dom.Element
	tag    *Tag
	parent Data
}

func (b *base) Element() dom.Element { return b.elem }

func (b *base) owner() *Tag { return b.tag }

func (b *base) Operand() string {
	own := ""
	if name, ok := b.elem.Attr("Name"); ok {
		own = "." + strings.ToUpper(name)
	} else if idx, ok := b.elem.Attr("Index"); ok {
		own = idx
	}
	if b.parent == nil {
		return own
	}
	return b.parent.Operand() + own
}

func (b *base) Description() (string, bool, error) {
	return describe(b.tag, b.Operand(), b.elem).get()
}

func (b *base) SetDescription(text string) error {
	return describe(b.tag, b.Operand(), b.elem).set(text)
}

func (b *base) DeleteDescription() error {
	return describe(b.tag, b.Operand(), b.elem).delete()
}

// description resolves a node's text: the tag description for the
// top-level value and an operand comment for everything below it.
type description struct {
	text lang.Text
	ctx  lang.Context
	err  error
}

func describe(t *Tag, operand string, e dom.Element) description {
	if t == nil {
		return description{err: errs.Capability(operand, "%s is not part of a tag", e.Name())}
	}
	if operand == "" {
		return description{text: lang.Description(t.elem), ctx: t.lang}
	}
	return description{text: lang.Comment(t.elem, operand), ctx: t.lang}
}

func (d description) get() (string, bool, error) {
	if d.err != nil {
		return "", false, d.err
	}
	s, ok := d.text.Get(d.ctx)
	return s, ok, nil
}

func (d description) set(text string) error {
	if d.err != nil {
		return d.err
	}
	d.text.Set(d.ctx, text)
	return nil
}

func (d description) delete() error {
	if d.err != nil {
		return d.err
	}
	d.text.Delete(d.ctx)
	return nil
}

// set is the common value write path.
func set(d Data, v any) error {
	commit, err := d.prepare(v)
	if err != nil {
		return err
	}
	commit()
	if debug.Data() {
		debug.Logf("set %s%s = %v\n", tagName(d.owner()), d.Operand(), v)
	}
	if t := d.owner(); t != nil {
		t.removeRaw()
	}
	return nil
}

func tagName(t *Tag) string {
	if t == nil {
		return ""
	}
	return t.Name()
}

var intWidths = map[string]int{
	"BOOL": 1,
	"SINT": 8,
	"INT":  16,
	"DINT": 32,
}

// newData selects the node variant from the element name, its
// attributes and the data type, which elements inherit from their
// enclosing array when they carry none.
func newData(elem dom.Element, dataType string, radix Radix, t *Tag, parent Data) (Data, error) {
	if dt, ok := elem.Attr("DataType"); ok {
		dataType = dt
	}
	if r, ok := elem.Attr("Radix"); ok {
		radix = Radix(r)
	}
	b := base{elem: elem, tag: t, parent: parent}
	switch elem.Name() {
	case "Array":
		return &Array{base: b, dataType: dataType, radix: radix}, nil
	case "ArrayMember":
		return &Array{base: b, dataType: dataType, radix: radix, member: true}, nil
	case "Structure", "StructureMember":
		return &Structure{base: b, dataType: dataType, body: elem}, nil
	case "Element":
		if elem.HasAttr("Value") {
			break
		}
		if body, ok := elem.Child("Structure"); ok {
			if dt, ok := body.Attr("DataType"); ok {
				dataType = dt
			}
			return &Structure{base: b, dataType: dataType, body: body}, nil
		}
	}
	if w, ok := intWidths[dataType]; ok {
		return &Integer{base: b, dataType: dataType, width: w, radix: radix}, nil
	}
	if dataType == "REAL" {
		return &Float{base: b, radix: radix}, nil
	}
	return nil, errs.Capability(b.Operand(), "%s of data type %q is not supported", elem.Name(), dataType)
}
