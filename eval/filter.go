// Package eval selects tags with expressions and patches tag values.
package eval

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/signadot/l5x/errs"
	"github.com/signadot/l5x/tag"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is what a filter expression sees of one tag.
type Env struct {
	Name        string
	DataType    string
	TagType     string
	Description string
	Dims        []int
	Constant    bool

	t *tag.Tag
}

// Value returns the tag's decorated value, or nil when it has none.
func (e Env) Value() any {
	v, err := e.t.Value()
	if err != nil {
		return nil
	}
	return v
}

// EnvOf collects the filter environment of t.  Tags without decorated
// array data have no Dims.
func EnvOf(t *tag.Tag) (Env, error) {
	env := Env{
		Name:     t.Name(),
		DataType: t.DataType(),
		TagType:  t.TagType(),
		t:        t,
	}
	env.Description, _ = t.Description()
	c, err := t.Constant()
	if err != nil {
		return env, err
	}
	env.Constant = c
	shape, err := t.Shape()
	switch {
	case err == nil:
		slices.Reverse(shape)
		env.Dims = shape
	case errors.Is(err, errs.ErrCapability):
	default:
		return env, err
	}
	return env, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

type Filter struct {
	src     string
	program *vm.Program
}

// Compile checks src as a boolean expression over Env.
func Compile(src string) (*Filter, error) {
	program, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", src, err)
	}
	return &Filter{src: src, program: program}, nil
}

func (f *Filter) String() string { return f.src }

func (f *Filter) Match(t *tag.Tag) (bool, error) {
	env, err := EnvOf(t)
	if err != nil {
		return false, err
	}
	res, err := vm.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("error evaluating %q on %s: %w", f.src, t.Name(), err)
	}
	return res.(bool), nil
}

// Select returns the tags of s matching f in document order.  A nil
// filter selects every tag.
func Select(s tag.Scope, f *Filter) ([]*tag.Tag, error) {
	var res []*tag.Tag
	err := s.Each(func(_ string, t *tag.Tag) error {
		if f != nil {
			ok, err := f.Match(t)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		res = append(res, t)
		return nil
	})
	return res, err
}
