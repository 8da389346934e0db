package encode

import (
	"strings"

	"github.com/fatih/color"
)

// Kind classifies the values produced by tag data.
type Kind int

const (
	IntKind Kind = iota
	FloatKind
	BoolKind
	StringKind
	ListKind
	MapKind
)

func kindOf(v any) Kind {
	switch v.(type) {
	case int64, int, int32, int16, int8, uint64, uint32, uint16, uint8:
		return IntKind
	case float64, float32:
		return FloatKind
	case bool:
		return BoolKind
	case []any:
		return ListKind
	case map[string]any:
		return MapKind
	}
	return StringKind
}

type Colorable struct {
	Kind Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	ValueColor ColorAttr = iota
	FieldColor
	IndexColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range []Kind{IntKind, FloatKind, BoolKind, StringKind, ListKind, MapKind} {
		colors.Map[Colorable{Kind: k, Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = IntKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = FloatKind
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()

	able.Kind = BoolKind
	colors.Map[able] = color.CyanString

	able.Kind = StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Kind = MapKind
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()

	able.Kind = ListKind
	able.Attr = IndexColor
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
