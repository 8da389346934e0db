// Package dict provides keyed, read-only views over an element's direct
// children.
//
// A Dict identifies each child by a key attribute and wraps a matched child
// in a value built by a constructor.  Only direct children take part in
// lookups; grandchildren carrying the same key attribute are never seen.
// The membership of a Dict cannot be changed through it, while the values
// it produces remain independently mutable.
package dict

import (
	"iter"
	"strconv"

	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
)

// Ctor builds a value around a matched child.  Extra construction
// arguments are bound in the closure and so reach every produced value.
type Ctor[V any] func(child dom.Element) (V, error)

// KeyFunc converts key attribute text into a key.
type KeyFunc[K comparable] func(raw string) (K, error)

type Dict[K comparable, V any] struct {
	parent   dom.Element
	keyAttr  string
	parseKey KeyFunc[K]
	ctor     Ctor[V]
}

// New builds a string keyed Dict.
func New[V any](parent dom.Element, keyAttr string, ctor Ctor[V]) *Dict[string, V] {
	return NewKeyed(parent, keyAttr, StringKey, ctor)
}

// NewKeyed builds a Dict whose keys are converted by parseKey.
func NewKeyed[K comparable, V any](parent dom.Element, keyAttr string, parseKey KeyFunc[K], ctor Ctor[V]) *Dict[K, V] {
	return &Dict[K, V]{
		parent:   parent,
		keyAttr:  keyAttr,
		parseKey: parseKey,
		ctor:     ctor,
	}
}

func StringKey(raw string) (string, error) {
	return raw, nil
}

func IntKey(raw string) (int, error) {
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Value("", "key %q is not an integer", raw)
	}
	return i, nil
}

// ByAttr selects the constructor from a discriminant attribute of the
// matched child.  A missing or unregistered discriminant is a configuration
// error.
func ByAttr[V any](attr string, types map[string]Ctor[V]) Ctor[V] {
	return func(child dom.Element) (V, error) {
		var zero V
		disc, ok := child.Attr(attr)
		if !ok {
			return zero, errs.Config(child.Ident(), "%s has no %s attribute", child.Name(), attr)
		}
		ctor, ok := types[disc]
		if !ok {
			return zero, errs.Config(child.Ident(), "no value type registered for %s %q", attr, disc)
		}
		return ctor(child)
	}
}

func (d *Dict[K, V]) Parent() dom.Element {
	return d.parent
}

// Get returns the value for the first direct child whose key attribute
// converts to key.
func (d *Dict[K, V]) Get(key K) (V, error) {
	child, ok := d.find(key)
	if !ok {
		var zero V
		return zero, errs.NotFound(d.parent.Ident(), "no %s %v", d.keyAttr, key)
	}
	return d.ctor(child)
}

// Has reports whether a direct child carries key.
func (d *Dict[K, V]) Has(key K) bool {
	_, ok := d.find(key)
	return ok
}

func (d *Dict[K, V]) find(key K) (dom.Element, bool) {
	return d.parent.FindChild(func(c dom.Element) bool {
		raw, ok := c.Attr(d.keyAttr)
		if !ok {
			return false
		}
		k, err := d.parseKey(raw)
		return err == nil && k == key
	})
}

// Names returns the keys of all direct children carrying the key attribute,
// in document order.  The slice is a fresh copy.
func (d *Dict[K, V]) Names() ([]K, error) {
	var res []K
	for _, c := range d.parent.Children() {
		raw, ok := c.Attr(d.keyAttr)
		if !ok {
			continue
		}
		k, err := d.parseKey(raw)
		if err != nil {
			return nil, err
		}
		res = append(res, k)
	}
	return res, nil
}

// Len counts the direct children carrying the key attribute.
func (d *Dict[K, V]) Len() int {
	n := 0
	for _, c := range d.parent.Children() {
		if c.HasAttr(d.keyAttr) {
			n++
		}
	}
	return n
}

// All iterates keys and values in document order.  Iteration stops at the
// first key or construction error; use Each to observe it.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		d.each(func(k K, v V, err error) bool {
			if err != nil {
				return false
			}
			return yield(k, v)
		})
	}
}

// Each calls f for every entry in document order and returns the first
// error encountered.
func (d *Dict[K, V]) Each(f func(K, V) error) error {
	var ferr error
	d.each(func(k K, v V, err error) bool {
		if err == nil {
			err = f(k, v)
		}
		ferr = err
		return err == nil
	})
	return ferr
}

func (d *Dict[K, V]) each(f func(K, V, error) bool) {
	for _, c := range d.parent.Children() {
		raw, ok := c.Attr(d.keyAttr)
		if !ok {
			continue
		}
		k, err := d.parseKey(raw)
		if err != nil {
			var v V
			f(k, v, err)
			return
		}
		v, err := d.ctor(c)
		if !f(k, v, err) {
			return
		}
	}
}
