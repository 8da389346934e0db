// Package encode renders tag values as JSON, YAML or operand-per-line
// text, and decodes values given on the command line.
package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

type EncState struct {
	format Format
	prefix string
	indent string
	Color  func(Kind, ColorAttr, string) string
}

type EncodeOption func(*EncState)

func EncodeFormat(f Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// EncodePrefix sets the operand text prepended to every line in text
// format, normally the tag name.
func EncodePrefix(p string) EncodeOption {
	return func(es *EncState) { es.prefix = p }
}

func EncodeIndent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

func FormatFromOpts(opts ...EncodeOption) Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// Encode writes v, a value as returned by tag data: int64, float64,
// bool, string, []any or map[string]any, nested arbitrarily.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: "  ", Color: noColor}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case JSONFormat:
		d, err := json.MarshalIndent(v, "", es.indent)
		if err != nil {
			return err
		}
		d = append(d, '\n')
		_, err = w.Write(d)
		return err
	case YAMLFormat:
		d, err := yaml.MarshalWithOptions(v, yaml.Indent(len(es.indent)))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	case TextFormat:
		buf := &bytes.Buffer{}
		es.text(buf, es.prefix, nil, v)
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("%w: %d", ErrBadFormat, es.format)
	}
}

func noColor(_ Kind, _ ColorAttr, s string) string { return s }

// text writes one "operand = value" line per leaf.  Directly nested
// lists are the dimensions of one array, so their indices are joined
// into a single subscript.
func (es *EncState) text(w *bytes.Buffer, path string, idx []int, v any) {
	switch x := v.(type) {
	case []any:
		if len(x) == 0 {
			es.leaf(w, path, idx, ListKind, "[]")
			return
		}
		for i, e := range x {
			es.text(w, path, append(idx[:len(idx):len(idx)], i), e)
		}
	case map[string]any:
		if len(x) == 0 {
			es.leaf(w, path, idx, MapKind, "{}")
			return
		}
		p := path + es.subscript(idx)
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			f := es.Color(MapKind, FieldColor, k)
			if p != "" {
				f = p + es.Color(MapKind, SepColor, ".") + f
			}
			es.text(w, f, nil, x[k])
		}
	default:
		es.leaf(w, path, idx, kindOf(v), scalar(v))
	}
}

func (es *EncState) subscript(idx []int) string {
	if len(idx) == 0 {
		return ""
	}
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = es.Color(ListKind, IndexColor, strconv.Itoa(n))
	}
	sep := es.Color(ListKind, SepColor, ",")
	return es.Color(ListKind, SepColor, "[") + strings.Join(parts, sep) + es.Color(ListKind, SepColor, "]")
}

func (es *EncState) leaf(w *bytes.Buffer, path string, idx []int, k Kind, s string) {
	p := path + es.subscript(idx)
	if p != "" {
		w.WriteString(p)
		w.WriteString(es.Color(k, SepColor, " = "))
	}
	w.WriteString(es.Color(k, ValueColor, s))
	w.WriteByte('\n')
}

func scalar(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case string:
		return strconv.Quote(x)
	case nil:
		return "null"
	}
	return fmt.Sprint(v)
}

// Decode parses a JSON or YAML value.  JSON numbers are kept as
// json.Number so integers beyond float precision survive.
func Decode(d []byte, f Format) (any, error) {
	var res any
	switch f {
	case JSONFormat:
		dec := json.NewDecoder(bytes.NewReader(d))
		dec.UseNumber()
		if err := dec.Decode(&res); err != nil {
			return nil, err
		}
		if dec.More() {
			return nil, fmt.Errorf("trailing data after JSON value")
		}
	case YAMLFormat, TextFormat:
		if err := yaml.Unmarshal(d, &res); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, f)
	}
	return res, nil
}
