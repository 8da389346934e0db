package tag

import (
	"slices"

	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
)

// Structure is a user-defined or built-in structured value.  Its members
// are fixed by the document and addressed by name.
type Structure struct {
	base
	dataType string
	// body holds the member elements.  It differs from elem for array
	// elements, which wrap their Structure.
	body dom.Element
}

func (s *Structure) DataType() string { return s.dataType }

func (s *Structure) members() []dom.Element {
	var res []dom.Element
	for _, c := range s.body.Children() {
		if c.HasAttr("Name") {
			res = append(res, c)
		}
	}
	return res
}

// Names returns the member names in document order.
func (s *Structure) Names() []string {
	ms := s.members()
	res := make([]string, len(ms))
	for i, m := range ms {
		res[i], _ = m.Attr("Name")
	}
	return res
}

func (s *Structure) Member(name string) (Data, error) {
	m, ok := s.body.FindChild(func(c dom.Element) bool {
		n, _ := c.Attr("Name")
		return n == name
	})
	if !ok {
		return nil, errs.NotFound(s.Operand(), "%s has no member %q", s.dataType, name)
	}
	return newData(m, "", "", s.tag, s)
}

func (s *Structure) Index(key any) (Data, error) {
	name, ok := key.(string)
	if !ok {
		return nil, errs.Type(s.Operand(), "member key %v (%T) is not a string", key, key)
	}
	return s.Member(name)
}

func (s *Structure) Value() (any, error) {
	res := map[string]any{}
	for _, name := range s.Names() {
		m, err := s.Member(name)
		if err != nil {
			return nil, err
		}
		v, err := m.Value()
		if err != nil {
			return nil, err
		}
		res[name] = v
	}
	return res, nil
}

func (s *Structure) SetValue(v any) error { return set(s, v) }

// prepare accepts any string keyed map.  Members missing from the map
// keep their values; unknown members are an error.
func (s *Structure) prepare(v any) (func(), error) {
	m, err := asMap(v, s.Operand())
	if err != nil {
		return nil, err
	}
	names := s.Names()
	keys := make([]string, 0, len(m))
	for k := range m {
		if !slices.Contains(names, k) {
			return nil, errs.NotFound(s.Operand(), "%s has no member %q", s.dataType, k)
		}
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return slices.Index(names, a) - slices.Index(names, b)
	})
	commits := make([]func(), 0, len(keys))
	for _, k := range keys {
		d, err := s.Member(k)
		if err != nil {
			return nil, err
		}
		c, err := d.prepare(m[k])
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
