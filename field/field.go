// Package field provides typed accessors for element attributes.
//
// A Field binds one attribute name to a pair of conversion hooks: Parse
// turns the attribute string into a typed value and Format validates a
// typed value and renders it back.  Specialised fields (booleans, NAT
// addresses, safety network numbers) are ordinary Field values with their
// own hooks.
package field

import (
	"fmt"
	"strconv"

	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
)

type Field[T any] struct {
	Name     string
	Required bool

	// Parse converts the attribute text.  When nil the text is used as is,
	// which only works for string fields.
	Parse func(raw string) (T, error)
	// Format validates v and renders the attribute text.  When nil v is
	// rendered with fmt.Sprint.
	Format func(owner dom.Element, v T) (string, error)
	// Check is a precondition on the owner run before every write.
	Check func(owner dom.Element) error
	// Permanent fields cannot be cleared.
	Permanent bool
}

// Get reads the attribute.  A missing optional attribute yields ok == false;
// a missing required attribute is a capability error.
func (f Field[T]) Get(e dom.Element) (v T, ok bool, err error) {
	raw, present := e.Attr(f.Name)
	if !present {
		if f.Required {
			return v, false, f.unsupported(e)
		}
		return v, false, nil
	}
	if f.Parse == nil {
		s, isT := any(raw).(T)
		if !isT {
			return v, false, errs.Config(e.Ident(), "field %s has no parser for %T", f.Name, v)
		}
		return s, true, nil
	}
	v, err = f.Parse(raw)
	if err != nil {
		return v, false, err
	}
	return v, true, nil
}

// Set validates v and writes it, creating the attribute if needed.  Nothing
// is written when validation fails.
func (f Field[T]) Set(e dom.Element, v T) error {
	if f.Check != nil {
		if err := f.Check(e); err != nil {
			return err
		}
	}
	var raw string
	if f.Format == nil {
		raw = fmt.Sprint(v)
	} else {
		var err error
		raw, err = f.Format(e, v)
		if err != nil {
			return err
		}
	}
	e.SetAttr(f.Name, raw)
	return nil
}

// Clear removes the attribute.
func (f Field[T]) Clear(e dom.Element) error {
	if f.Permanent {
		return errs.Type(e.Ident(), "%s %s cannot be removed", e.Name(), f.Name)
	}
	if f.Required {
		return f.unsupported(e)
	}
	e.RemoveAttr(f.Name)
	return nil
}

func (f Field[T]) unsupported(e dom.Element) error {
	return errs.Capability(e.Ident(), "%s %s does not support %s", e.Name(), e.Ident(), f.Name)
}

func String(name string, required bool) Field[string] {
	return Field[string]{Name: name, Required: required}
}

// NonEmpty is an optional string field rejecting the empty string.
func NonEmpty(name string) Field[string] {
	return Field[string]{
		Name: name,
		Format: func(owner dom.Element, v string) (string, error) {
			if v == "" {
				return "", errs.Value(owner.Ident(), "%s must not be empty", name)
			}
			return v, nil
		},
	}
}

func Int(name string, required bool) Field[int] {
	return Field[int]{
		Name:     name,
		Required: required,
		Parse: func(raw string) (int, error) {
			i, err := strconv.Atoi(raw)
			if err != nil {
				return 0, errs.Value("", "%s: %q is not an integer", name, raw)
			}
			return i, nil
		},
		Format: func(_ dom.Element, v int) (string, error) {
			return strconv.Itoa(v), nil
		},
	}
}

// Bool converts between bool and the lower case tokens "true" and "false".
// Any text other than "true" reads as false.
func Bool(name string) Field[bool] {
	return Field[bool]{
		Name: name,
		Parse: func(raw string) (bool, error) {
			return raw == "true", nil
		},
		Format: func(_ dom.Element, v bool) (string, error) {
			return strconv.FormatBool(v), nil
		},
	}
}

// NATAddress accesses a port's NAT address.  The port must already be
// configured for NAT, that is carry the attribute, and the address cannot
// be removed.
func NATAddress(name string) Field[string] {
	return Field[string]{
		Name:      name,
		Permanent: true,
		Check: func(port dom.Element) error {
			if !port.HasAttr(name) {
				return errs.Type(port.Ident(), "port %s is not configured for NAT", port.Ident())
			}
			return nil
		},
	}
}
