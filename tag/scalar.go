package tag

import (
	"math"
	"strconv"

	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
)

// Integer is a SINT, INT or DINT in two's complement, or a one bit
// unsigned BOOL.
type Integer struct {
	base
	dataType string
	width    int
	radix    Radix
}

func (i *Integer) DataType() string { return i.dataType }

// Len is the width in bits.
func (i *Integer) Len() int { return i.width }

func (i *Integer) signed() bool { return i.width > 1 }

func (i *Integer) bounds() (lo, hi int64) {
	if !i.signed() {
		return 0, 1<<uint(i.width) - 1
	}
	return -(1 << uint(i.width-1)), 1<<uint(i.width-1) - 1
}

func (i *Integer) Int() (int64, error) {
	raw, ok := i.elem.Attr("Value")
	if !ok {
		return 0, errs.Value(i.Operand(), "%s has no value", i.elem.Name())
	}
	v, err := parseInt(raw, i.width, i.signed())
	if err != nil {
		return 0, errs.Value(i.Operand(), "%v", err)
	}
	return v, nil
}

func (i *Integer) Value() (any, error) {
	v, err := i.Int()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (i *Integer) SetValue(v any) error { return set(i, v) }

func (i *Integer) prepare(v any) (func(), error) {
	n, err := asInt(v, i.Operand())
	if err != nil {
		return nil, err
	}
	if lo, hi := i.bounds(); n < lo || n > hi {
		return nil, errs.Value(i.Operand(), "%d out of %s range [%d, %d]", n, i.dataType, lo, hi)
	}
	return i.commitInt(n), nil
}

func (i *Integer) commitInt(n int64) func() {
	text := formatInt(n, i.radix, i.width)
	return func() { i.elem.SetAttr("Value", text) }
}

// Bit returns a view of bit n, counted from the least significant bit.
func (i *Integer) Bit(n int) (*Bit, error) {
	if i.width == 1 {
		return nil, errs.Capability(i.Operand(), "%s has no addressable bits", i.dataType)
	}
	if n < 0 || n >= i.width {
		return nil, errs.Index(i.Operand(), "bit %d out of range [0, %d)", n, i.width)
	}
	return &Bit{word: i, n: n}, nil
}

func (i *Integer) Index(key any) (Data, error) {
	n, err := asIndex(key, i.Operand())
	if err != nil {
		return nil, err
	}
	b, err := i.Bit(n)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Bit is a single bit of an Integer.  Its value is 0 or 1.
type Bit struct {
	word *Integer
	n    int
}

func (b *Bit) Element() dom.Element { return b.word.elem }

func (b *Bit) owner() *Tag { return b.word.tag }

func (b *Bit) Operand() string {
	return b.word.Operand() + "." + strconv.Itoa(b.n)
}

func (b *Bit) Value() (any, error) {
	v, err := b.word.Int()
	if err != nil {
		return nil, err
	}
	return int64(uint64(v) >> uint(b.n) & 1), nil
}

func (b *Bit) SetValue(v any) error { return set(b, v) }

func (b *Bit) prepare(v any) (func(), error) {
	x, err := asInt(v, b.Operand())
	if err != nil {
		return nil, err
	}
	if x != 0 && x != 1 {
		return nil, errs.Value(b.Operand(), "bit value %d is not 0 or 1", x)
	}
	cur, err := b.word.Int()
	if err != nil {
		return nil, err
	}
	w := b.word.width
	mask := uint64(1) << uint(b.n)
	u := uint64(cur) & widthMask(w) &^ mask
	if x == 1 {
		u |= mask
	}
	return b.word.commitInt(signExtend(u, w, b.word.signed())), nil
}

func (b *Bit) Description() (string, bool, error) {
	return describe(b.word.tag, b.Operand(), b.word.elem).get()
}

func (b *Bit) SetDescription(text string) error {
	return describe(b.word.tag, b.Operand(), b.word.elem).set(text)
}

func (b *Bit) DeleteDescription() error {
	return describe(b.word.tag, b.Operand(), b.word.elem).delete()
}

// Float is a REAL, held as a float64.  Values are always finite.
type Float struct {
	base
	radix Radix
}

func (f *Float) Float64() (float64, error) {
	raw, ok := f.elem.Attr("Value")
	if !ok {
		return 0, errs.Value(f.Operand(), "%s has no value", f.elem.Name())
	}
	v, err := parseFloat(raw)
	if err != nil {
		return 0, errs.Value(f.Operand(), "%v", err)
	}
	return v, nil
}

func (f *Float) Value() (any, error) {
	v, err := f.Float64()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (f *Float) SetValue(v any) error { return set(f, v) }

func (f *Float) prepare(v any) (func(), error) {
	x, err := asFloat(v, f.Operand())
	if err != nil {
		return nil, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, errs.Value(f.Operand(), "%v is not finite", x)
	}
	text := formatFloat(x, f.radix)
	return func() { f.elem.SetAttr("Value", text) }, nil
}
