package tag

import (
	"slices"
	"strconv"
	"strings"

	"github.com/signadot/l5x/debug"
	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
)

// MaxDims bounds the rank of an array.
const MaxDims = 3

// Array is an array of scalars or structures.  A top-level Array can be
// resized; an ArrayMember nested in a structure cannot.
//
// Dimensions are kept in two orders.  The document lists them most
// significant first, both in the Dimensions attributes and in each
// element's Index attribute.  Shape reports the same dimensions reversed,
// least significant first.  Navigation with At and the nesting of Value
// follow document order.
type Array struct {
	base
	dataType string
	radix    Radix
	member   bool
}

func (a *Array) DataType() string { return a.dataType }

// Member reports whether the array is a structure member.
func (a *Array) Member() bool { return a.member }

func (a *Array) dims() ([]int, error) {
	raw, ok := a.elem.Attr("Dimensions")
	if !ok {
		return nil, errs.Value(a.Operand(), "%s has no Dimensions", a.elem.Name())
	}
	return parseDims(raw, ",", a.Operand())
}

func parseDims(raw, sep, operand string) ([]int, error) {
	var res []int
	for _, f := range strings.Split(raw, sep) {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return nil, errs.Value(operand, "bad dimension %q in %q", f, raw)
		}
		res = append(res, n)
	}
	if len(res) == 0 || len(res) > MaxDims {
		return nil, errs.Value(operand, "bad dimensions %q", raw)
	}
	return res, nil
}

// Shape returns a fresh copy of the dimensions, least significant first.
func (a *Array) Shape() ([]int, error) {
	d, err := a.dims()
	if err != nil {
		return nil, err
	}
	slices.Reverse(d)
	return d, nil
}

// Len is the number of elements.
func (a *Array) Len() (int, error) {
	d, err := a.dims()
	if err != nil {
		return 0, err
	}
	n := 1
	for _, x := range d {
		n *= x
	}
	return n, nil
}

// At returns the element at index i of the most significant remaining
// dimension: the element data for one dimensional arrays, a *Dim view
// otherwise.
func (a *Array) At(i int) (Data, error) {
	return a.at([]int{i})
}

func (a *Array) Index(key any) (Data, error) {
	i, err := asIndex(key, a.Operand())
	if err != nil {
		return nil, err
	}
	return a.At(i)
}

func (a *Array) at(prefix []int) (Data, error) {
	d, err := a.dims()
	if err != nil {
		return nil, err
	}
	k := len(prefix) - 1
	if i := prefix[k]; i < 0 || i >= d[k] {
		return nil, errs.Index(a.Operand(), "index %d out of range [0, %d)", i, d[k])
	}
	if len(prefix) < len(d) {
		return &Dim{arr: a, prefix: prefix}, nil
	}
	e, err := a.element(prefix, d)
	if err != nil {
		return nil, err
	}
	return newData(e, a.dataType, a.radix, a.tag, a)
}

func formatIndex(idx []int) string {
	parts := make([]string, len(idx))
	for i, x := range idx {
		parts[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// element finds the Element child for a full index.  Elements are
// normally stored in index order, so the computed position is tried
// first.
func (a *Array) element(idx, d []int) (dom.Element, error) {
	want := formatIndex(idx)
	pos := 0
	for k, x := range idx {
		pos = pos*d[k] + x
	}
	if pos < a.elem.ChildCount() {
		e := a.elem.ChildAt(pos)
		if got, _ := e.Attr("Index"); got == want {
			return e, nil
		}
	}
	e, ok := a.elem.FindChild(func(c dom.Element) bool {
		got, _ := c.Attr("Index")
		return got == want
	})
	if !ok {
		return dom.Element{}, errs.Value(a.Operand(), "no element %s", want)
	}
	return e, nil
}

func (a *Array) Value() (any, error) {
	return a.valueAt(nil)
}

func (a *Array) valueAt(prefix []int) (any, error) {
	d, err := a.dims()
	if err != nil {
		return nil, err
	}
	k := len(prefix)
	res := make([]any, d[k])
	for i := range res {
		idx := append(slices.Clone(prefix), i)
		var v any
		if k+1 < len(d) {
			v, err = a.valueAt(idx)
		} else {
			var e Data
			e, err = a.at(idx)
			if err == nil {
				v, err = e.Value()
			}
		}
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func (a *Array) SetValue(v any) error { return set(a, v) }

func (a *Array) prepare(v any) (func(), error) {
	return a.prepareAt(nil, v)
}

// prepareAt validates a list for the dimension below prefix.  A shorter
// list assigns a prefix of the dimension; a longer one is an index error.
func (a *Array) prepareAt(prefix []int, v any) (func(), error) {
	op := a.Operand() + partialIndex(prefix)
	list, err := asList(v, op)
	if err != nil {
		return nil, err
	}
	d, err := a.dims()
	if err != nil {
		return nil, err
	}
	k := len(prefix)
	if len(list) > d[k] {
		return nil, errs.Index(op, "%d values for dimension of %d", len(list), d[k])
	}
	commits := make([]func(), 0, len(list))
	for i, x := range list {
		idx := append(slices.Clone(prefix), i)
		var c func()
		if k+1 < len(d) {
			c, err = a.prepareAt(idx, x)
		} else {
			var e Data
			e, err = a.at(idx)
			if err == nil {
				c, err = e.prepare(x)
			}
		}
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return func() {
		for _, c := range commits {
			c()
		}
	}, nil
}

func partialIndex(prefix []int) string {
	if len(prefix) == 0 {
		return ""
	}
	return formatIndex(prefix)
}

// SetShape resizes a top-level array.  shape is given least significant
// dimension first, as returned by Shape.  Raw data is removed and the
// elements are regenerated in index order as zeroed copies of the first
// existing element; existing values are not preserved.
func (a *Array) SetShape(shape []int) error {
	if a.member {
		return errs.ReadOnly(a.Operand(), "member arrays cannot be resized")
	}
	if len(shape) < 1 || len(shape) > MaxDims {
		return errs.Value(a.Operand(), "%d dimensions, want 1 to %d", len(shape), MaxDims)
	}
	for _, x := range shape {
		if x < 1 {
			return errs.Value(a.Operand(), "dimension %d is less than 1", x)
		}
	}
	tmpl, err := a.template()
	if err != nil {
		return err
	}
	d := slices.Clone(shape)
	slices.Reverse(d)
	if debug.Resize() {
		debug.Logf("resize %s%s from %s to %v\n", tagName(a.tag), a.Operand(), a.attr("Dimensions"), d)
	}
	if a.tag != nil {
		a.tag.removeRaw()
		a.tag.elem.SetAttr("Dimensions", joinDims(d, " "))
	}
	a.elem.SetAttr("Dimensions", joinDims(d, ","))
	a.elem.RemoveChildren(func(c dom.Element) bool { return c.Name() == "Element" })
	for _, idx := range indices(d) {
		e := tmpl.Clone()
		e.SetAttr("Index", formatIndex(idx))
		a.elem.InsertElement(a.elem.ChildCount(), e)
	}
	return nil
}

func (a *Array) attr(name string) string {
	v, _ := a.elem.Attr(name)
	return v
}

// template returns a detached, zeroed copy of the first element.
func (a *Array) template() (dom.Element, error) {
	first, ok := a.elem.Child("Element")
	if !ok {
		if _, scalar := intWidths[a.dataType]; !scalar && a.dataType != "REAL" {
			return dom.Element{}, errs.Value(a.Operand(), "no element to copy for %s", a.dataType)
		}
		first = a.elem.Doc().NewElement("Element", dom.Attr{Name: "Index", Value: "[0]"}, dom.Attr{Name: "Value", Value: ""})
	}
	tmpl := first.Clone()
	zero(tmpl, a.dataType, a.radix)
	return tmpl, nil
}

// zero resets every Value attribute below e, honouring each element's
// own data type and radix.
func zero(e dom.Element, dataType string, radix Radix) {
	if dt, ok := e.Attr("DataType"); ok {
		dataType = dt
	}
	if r, ok := e.Attr("Radix"); ok {
		radix = Radix(r)
	}
	if e.HasAttr("Value") {
		switch w, ok := intWidths[dataType]; {
		case ok:
			e.SetAttr("Value", formatInt(0, radix, w))
		case dataType == "REAL":
			e.SetAttr("Value", formatFloat(0, radix))
		}
	}
	for _, c := range e.Children() {
		zero(c, dataType, radix)
	}
}

func joinDims(d []int, sep string) string {
	parts := make([]string, len(d))
	for i, x := range d {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, sep)
}

// indices enumerates every index tuple of dims in ascending order of the
// tuple, first component most significant.
func indices(dims []int) [][]int {
	n := 1
	for _, x := range dims {
		n *= x
	}
	res := make([][]int, 0, n)
	cur := make([]int, len(dims))
	for range n {
		res = append(res, slices.Clone(cur))
		for k := len(dims) - 1; k >= 0; k-- {
			cur[k]++
			if cur[k] < dims[k] {
				break
			}
			cur[k] = 0
		}
	}
	return res
}

// Dim is a view of one slice of a multi-dimensional array, addressed by
// the leading indices already applied.  Dimension views have no
// descriptions.
type Dim struct {
	arr    *Array
	prefix []int
}

func (d *Dim) Element() dom.Element { return d.arr.elem }

func (d *Dim) owner() *Tag { return d.arr.tag }

func (d *Dim) Operand() string { return d.arr.Operand() + formatIndex(d.prefix) }

func (d *Dim) At(i int) (Data, error) {
	return d.arr.at(append(slices.Clone(d.prefix), i))
}

func (d *Dim) Index(key any) (Data, error) {
	i, err := asIndex(key, d.Operand())
	if err != nil {
		return nil, err
	}
	return d.At(i)
}

func (d *Dim) Value() (any, error) { return d.arr.valueAt(d.prefix) }

func (d *Dim) SetValue(v any) error { return set(d, v) }

func (d *Dim) prepare(v any) (func(), error) { return d.arr.prepareAt(d.prefix, v) }

func (d *Dim) Description() (string, bool, error) {
	return "", false, d.noDescription()
}

func (d *Dim) SetDescription(string) error { return d.noDescription() }

func (d *Dim) DeleteDescription() error { return d.noDescription() }

func (d *Dim) noDescription() error {
	return errs.Capability(d.Operand(), "array dimensions have no descriptions")
}
