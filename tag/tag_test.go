package tag

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
	"github.com/signadot/l5x/lang"
)

const fixture = `<Controller Name="plc">
<Tags>
<Tag Name="sint" TagType="Base" DataType="SINT" Radix="Decimal">
<Data>00</Data>
<Data Format="L5K"><![CDATA[0]]></Data>
<Data Format="Decorated"><DataValue DataType="SINT" Radix="Decimal" Value="0"/></Data>
</Tag>
<Tag Name="int" TagType="Base" DataType="INT" Radix="Hex">
<Data Format="Decorated"><DataValue DataType="INT" Radix="Hex" Value="16#0000"/></Data>
</Tag>
<Tag Name="dint" TagType="Base" DataType="DINT" Radix="Decimal">
<Data>00 00 00 00</Data>
<Data Format="Decorated"><DataValue DataType="DINT" Radix="Decimal" Value="0"/></Data>
</Tag>
<Tag Name="bool" TagType="Base" DataType="BOOL" Radix="Decimal">
<Data Format="Decorated"><DataValue DataType="BOOL" Radix="Decimal" Value="0"/></Data>
</Tag>
<Tag Name="real" TagType="Base" DataType="REAL" Radix="Float">
<Data>00 00 00 00</Data>
<Data Format="Decorated"><DataValue DataType="REAL" Radix="Float" Value="0.0"/></Data>
</Tag>
<Tag Name="array1" TagType="Base" DataType="DINT" Dimensions="10" Radix="Decimal">
<Data>00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00</Data>
<Data Format="L5K"><![CDATA[[0,0,0,0,0,0,0,0,0,0]]]></Data>
<Data Format="Decorated">
<Array DataType="DINT" Dimensions="10" Radix="Decimal">
<Element Index="[0]" Value="0"/>
<Element Index="[1]" Value="1"/>
<Element Index="[2]" Value="2"/>
<Element Index="[3]" Value="3"/>
<Element Index="[4]" Value="4"/>
<Element Index="[5]" Value="5"/>
<Element Index="[6]" Value="6"/>
<Element Index="[7]" Value="7"/>
<Element Index="[8]" Value="8"/>
<Element Index="[9]" Value="9"/>
</Array>
</Data>
</Tag>
<Tag Name="timer" TagType="Base" DataType="TIMER">
<Data>00 00 00 00 00 00 00 00 00 00 00 00</Data>
<Data Format="Decorated">
<Structure DataType="TIMER">
<DataValueMember Name="PRE" DataType="DINT" Radix="Decimal" Value="0"/>
<DataValueMember Name="ACC" DataType="DINT" Radix="Decimal" Value="0"/>
<DataValueMember Name="EN" DataType="BOOL" Value="0"/>
<DataValueMember Name="TT" DataType="BOOL" Value="0"/>
<DataValueMember Name="DN" DataType="BOOL" Value="0"/>
</Structure>
</Data>
</Tag>
<Tag Name="udt" TagType="Base" DataType="my_udt" Dimensions="2">
<Data Format="Decorated">
<Array DataType="my_udt" Dimensions="2">
<Element Index="[0]">
<Structure DataType="my_udt">
<ArrayMember Name="dint_array" DataType="DINT" Dimensions="3" Radix="Decimal">
<Element Index="[0]" Value="0"/>
<Element Index="[1]" Value="0"/>
<Element Index="[2]" Value="0"/>
</ArrayMember>
<StructureMember Name="timer" DataType="TIMER">
<DataValueMember Name="PRE" DataType="DINT" Radix="Decimal" Value="0"/>
<DataValueMember Name="DN" DataType="BOOL" Value="0"/>
</StructureMember>
<DataValueMember Name="real" DataType="REAL" Radix="Float" Value="0.0"/>
</Structure>
</Element>
<Element Index="[1]">
<Structure DataType="my_udt">
<ArrayMember Name="dint_array" DataType="DINT" Dimensions="3" Radix="Decimal">
<Element Index="[0]" Value="0"/>
<Element Index="[1]" Value="0"/>
<Element Index="[2]" Value="0"/>
</ArrayMember>
<StructureMember Name="timer" DataType="TIMER">
<DataValueMember Name="PRE" DataType="DINT" Radix="Decimal" Value="0"/>
<DataValueMember Name="DN" DataType="BOOL" Value="0"/>
</StructureMember>
<DataValueMember Name="real" DataType="REAL" Radix="Float" Value="0.0"/>
</Structure>
</Element>
</Array>
</Data>
</Tag>
<Tag Name="consumed" TagType="Consumed" DataType="DINT">
<ConsumeInfo Producer="remote_plc" RemoteTag="shared"/>
<Data Format="Decorated"><DataValue DataType="DINT" Radix="Decimal" Value="0"/></Data>
</Tag>
<Tag Name="alias" TagType="Alias" AliasFor="dint.3"/>
</Tags>
</Controller>`

func scope(t *testing.T) Scope {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatal(err)
	}
	return NewScope(doc.Root(), lang.Single())
}

func get(t *testing.T, s Scope, name string) *Tag {
	t.Helper()
	tg, err := s.Get(name)
	if err != nil {
		t.Fatal(err)
	}
	return tg
}

func data(t *testing.T, tg *Tag, keys ...any) Data {
	t.Helper()
	d, err := tg.Get(keys...)
	if err != nil {
		t.Fatalf("%s %v: %v", tg.Name(), keys, err)
	}
	return d
}

func value(t *testing.T, d Data) any {
	t.Helper()
	v, err := d.Value()
	if err != nil {
		t.Fatalf("%s: %v", d.Operand(), err)
	}
	return v
}

func TestScope(t *testing.T) {
	s := scope(t)
	names, err := s.Names()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"sint", "int", "dint", "bool", "real", "array1", "timer", "udt", "consumed", "alias"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	if _, err := s.Get("nope"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
	empty := NewScope(dom.New("Program").Root(), lang.Single())
	if empty.Len() != 0 {
		t.Errorf("scope without Tags has %d tags", empty.Len())
	}
}

func TestIntegerRange(t *testing.T) {
	tests := []struct {
		name   string
		bits   int
		lo, hi int64
	}{
		{"sint", 8, math.MinInt8, math.MaxInt8},
		{"int", 16, math.MinInt16, math.MaxInt16},
		{"dint", 32, math.MinInt32, math.MaxInt32},
		{"bool", 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := get(t, scope(t), tt.name)
			d := data(t, tg).(*Integer)
			if d.Len() != tt.bits {
				t.Errorf("len %d", d.Len())
			}
			if d.DataType() != strings.ToUpper(tt.name) {
				t.Errorf("data type %s", d.DataType())
			}
			for _, v := range []int64{0, tt.lo, tt.hi} {
				if err := tg.SetValue(v); err != nil {
					t.Fatalf("set %d: %v", v, err)
				}
				if got := value(t, d); got != v {
					t.Errorf("set %d, got %v", v, got)
				}
			}
			for _, v := range []int64{tt.lo - 1, tt.hi + 1} {
				if err := tg.SetValue(v); !errors.Is(err, errs.ErrValue) {
					t.Errorf("set %d: got %v, want value error", v, err)
				}
			}
			if err := tg.SetValue("not an int"); !errors.Is(err, errs.ErrType) {
				t.Errorf("got %v, want type error", err)
			}
			if err := tg.SetValue(1.5); !errors.Is(err, errs.ErrType) {
				t.Errorf("float: got %v, want type error", err)
			}
		})
	}
}

func TestSINTAllValues(t *testing.T) {
	d := data(t, get(t, scope(t), "sint"))
	for v := math.MinInt8; v <= math.MaxInt8; v++ {
		if err := d.SetValue(v); err != nil {
			t.Fatal(err)
		}
		if got := value(t, d); got != int64(v) {
			t.Fatalf("set %d, got %v", v, got)
		}
	}
}

func TestIntegerKinds(t *testing.T) {
	d := data(t, get(t, scope(t), "dint"))
	for _, v := range []any{int8(-3), uint16(7), int32(-9), uint(11), int64(13)} {
		if err := d.SetValue(v); err != nil {
			t.Errorf("%T: %v", v, err)
		}
	}
	if err := d.SetValue(uint64(math.MaxUint64)); !errors.Is(err, errs.ErrValue) {
		t.Errorf("got %v, want value error", err)
	}
}

func TestHexRadix(t *testing.T) {
	tg := get(t, scope(t), "int")
	if err := tg.SetValue(-2); err != nil {
		t.Fatal(err)
	}
	dv := data(t, tg).Element()
	if raw, _ := dv.Attr("Value"); raw != "16#fffe" {
		t.Errorf("raw %q", raw)
	}
	if got := value(t, data(t, tg)); got != int64(-2) {
		t.Errorf("got %v", got)
	}
}

func TestBits(t *testing.T) {
	for _, name := range []string{"sint", "int", "dint"} {
		t.Run(name, func(t *testing.T) {
			tg := get(t, scope(t), name)
			word := data(t, tg).(*Integer)
			if err := word.SetValue(0); err != nil {
				t.Fatal(err)
			}
			w := word.Len()
			for i := range w {
				bit := data(t, tg, i)
				if got := value(t, bit); got != int64(0) {
					t.Fatalf("bit %d starts at %v", i, got)
				}
				for _, b := range []int64{1, 0} {
					if err := bit.SetValue(b); err != nil {
						t.Fatal(err)
					}
					if got := value(t, bit); got != b {
						t.Errorf("bit %d = %v, want %d", i, got, b)
					}
					want := signExtend(uint64(b)<<uint(i), w, true)
					if got := value(t, word); got != want {
						t.Errorf("bit %d = %d: word %v, want %d", i, b, got, want)
					}
				}
			}
			if _, err := tg.Get(-1); !errors.Is(err, errs.ErrIndex) {
				t.Errorf("bit -1: got %v", err)
			}
			if _, err := tg.Get(w); !errors.Is(err, errs.ErrIndex) {
				t.Errorf("bit %d: got %v", w, err)
			}
			if _, err := tg.Get("foo"); !errors.Is(err, errs.ErrType) {
				t.Errorf("bit foo: got %v", err)
			}
			if err := data(t, tg, 0).SetValue(2); !errors.Is(err, errs.ErrValue) {
				t.Errorf("bit value 2: got %v", err)
			}
		})
	}
}

func TestSignBit(t *testing.T) {
	tg := get(t, scope(t), "dint")
	if err := tg.SetValue(-1); err != nil {
		t.Fatal(err)
	}
	if err := data(t, tg, 31).SetValue(0); err != nil {
		t.Fatal(err)
	}
	if got := value(t, data(t, tg)); got != int64(math.MaxInt32) {
		t.Errorf("got %v", got)
	}
}

func TestBoolHasNoBits(t *testing.T) {
	tg := get(t, scope(t), "bool")
	if _, err := tg.Get(0); !errors.Is(err, errs.ErrCapability) {
		t.Errorf("got %v, want capability error", err)
	}
}

func TestBitDescription(t *testing.T) {
	tg := get(t, scope(t), "dint")
	for i := range 32 {
		b := data(t, tg, i)
		want := "dint " + strconv.Itoa(i) + " description"
		if err := b.SetDescription(want); err != nil {
			t.Fatal(err)
		}
		got, ok, err := b.Description()
		if err != nil || !ok || got != want {
			t.Errorf("bit %d: got %q %v %v", i, got, ok, err)
		}
	}
	if got, _ := tg.Comment(".31"); got != "dint 31 description" {
		t.Errorf("comment .31 = %q", got)
	}
}

func TestFloat(t *testing.T) {
	tg := get(t, scope(t), "real")
	for _, v := range []float64{0, -1.5, 3.25, math.Pi, math.E} {
		if err := tg.SetValue(v); err != nil {
			t.Fatal(err)
		}
		if got := value(t, data(t, tg)); got != v {
			t.Errorf("set %v, got %v", v, got)
		}
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := tg.SetValue(v); !errors.Is(err, errs.ErrValue) {
			t.Errorf("set %v: got %v, want value error", v, err)
		}
	}
	if err := tg.SetValue("not a float"); !errors.Is(err, errs.ErrType) {
		t.Errorf("got %v, want type error", err)
	}
	if err := tg.SetValue(2); err != nil {
		t.Errorf("integer: %v", err)
	}
}

func TestRawDataRemoved(t *testing.T) {
	tests := []struct {
		name string
		keys []any
		v    any
	}{
		{"sint", nil, 1},
		{"sint", []any{0}, 1},
		{"dint", []any{3}, 1},
		{"real", nil, 1.0},
		{"array1", []any{0}, 7},
		{"timer", []any{"PRE"}, 7},
		{"timer", nil, map[string]any{"DN": 1}},
	}
	for _, tt := range tests {
		tg := get(t, scope(t), tt.name)
		if !tg.HasRawData() {
			t.Fatalf("%s has no raw data", tt.name)
		}
		if err := data(t, tg, tt.keys...).SetValue(tt.v); err != nil {
			t.Fatal(err)
		}
		if tg.HasRawData() {
			t.Errorf("%s %v: raw data kept", tt.name, tt.keys)
		}
		if _, ok := tg.Element().FindChild(isDecorated); !ok {
			t.Errorf("%s: decorated data removed", tt.name)
		}
	}
}

func TestFailedWriteKeepsRawData(t *testing.T) {
	tg := get(t, scope(t), "sint")
	if err := tg.SetValue(1000); err == nil {
		t.Fatal("no error")
	}
	if !tg.HasRawData() {
		t.Errorf("raw data removed by a failed write")
	}
}

func TestArray1(t *testing.T) {
	tg := get(t, scope(t), "array1")
	shape, err := tg.Shape()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{10}, shape); diff != "" {
		t.Errorf("shape (-want +got):\n%s", diff)
	}
	shape[0] = 3
	if again, _ := tg.Shape(); again[0] != 10 {
		t.Errorf("shape shares storage")
	}
	want := []any{int64(0), int64(1), int64(2), int64(3), int64(4), int64(5), int64(6), int64(7), int64(8), int64(9)}
	got, err := tg.Value()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("value (-want +got):\n%s", diff)
	}
	for _, i := range []any{-1, 10} {
		if _, err := tg.Get(i); !errors.Is(err, errs.ErrIndex) {
			t.Errorf("index %v: got %v", i, err)
		}
	}
	if _, err := tg.Get("not an int"); !errors.Is(err, errs.ErrType) {
		t.Errorf("got %v, want type error", err)
	}
	if err := tg.SetValue("not a list"); !errors.Is(err, errs.ErrType) {
		t.Errorf("got %v, want type error", err)
	}
	if err := tg.SetValue(make([]int, 11)); !errors.Is(err, errs.ErrIndex) {
		t.Errorf("oversize: got %v, want index error", err)
	}
	if err := tg.SetValue([]int{9, 8, 7}); err != nil {
		t.Fatal(err)
	}
	got, _ = tg.Value()
	want[0], want[1], want[2] = int64(9), int64(8), int64(7)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("prefix assignment (-want +got):\n%s", diff)
	}
	if op := data(t, tg, 4).Operand(); op != "[4]" {
		t.Errorf("operand %q", op)
	}
}

func TestArrayValidatesBeforeWrite(t *testing.T) {
	tg := get(t, scope(t), "array1")
	err := tg.SetValue([]any{100, 101, "x"})
	if !errors.Is(err, errs.ErrType) {
		t.Fatalf("got %v, want type error", err)
	}
	if got := value(t, data(t, tg, 0)); got != int64(0) {
		t.Errorf("element 0 written: %v", got)
	}
	if !tg.HasRawData() {
		t.Errorf("raw data removed by a failed write")
	}
}

func TestArrayElementDescription(t *testing.T) {
	tg := get(t, scope(t), "array1")
	for i := range 10 {
		e := data(t, tg, i)
		want := "element " + strconv.Itoa(i)
		if err := e.SetDescription(want); err != nil {
			t.Fatal(err)
		}
		if got, _, _ := e.Description(); got != want {
			t.Errorf("got %q", got)
		}
	}
	if got, _ := tg.Comment("[3]"); got != "element 3" {
		t.Errorf("comment [3] = %q", got)
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name  string
		shape []int
	}{
		{"array1", []int{5}},
		{"array1", []int{2, 3, 4}},
		{"array1", []int{5, 6, 7}},
		{"udt", []int{3, 2}},
	}
	for _, tt := range tests {
		tg := get(t, scope(t), tt.name)
		if err := tg.SetShape(tt.shape); err != nil {
			t.Fatal(err)
		}
		got, _ := tg.Shape()
		if diff := cmp.Diff(tt.shape, got); diff != "" {
			t.Errorf("shape (-want +got):\n%s", diff)
		}
		rev := slices.Clone(tt.shape)
		slices.Reverse(rev)
		var space, comma []string
		for _, x := range rev {
			space = append(space, strconv.Itoa(x))
			comma = append(comma, strconv.Itoa(x))
		}
		if attr, _ := tg.Element().Attr("Dimensions"); attr != strings.Join(space, " ") {
			t.Errorf("tag dimensions %q", attr)
		}
		arr := data(t, tg).Element()
		if attr, _ := arr.Attr("Dimensions"); attr != strings.Join(comma, ",") {
			t.Errorf("array dimensions %q", attr)
		}
		if tg.HasRawData() {
			t.Errorf("raw data kept")
		}

		var idx [][]int
		seen := map[string]bool{}
		for _, e := range arr.Children() {
			raw, _ := e.Attr("Index")
			if seen[raw] {
				t.Errorf("duplicate index %s", raw)
			}
			seen[raw] = true
			var tuple []int
			for _, f := range strings.Split(raw[1:len(raw)-1], ",") {
				n, _ := strconv.Atoi(f)
				tuple = append(tuple, n)
			}
			if len(tuple) != len(tt.shape) {
				t.Fatalf("index %s has %d components", raw, len(tuple))
			}
			slices.Reverse(tuple)
			for k, x := range tuple {
				if x < 0 || x >= tt.shape[k] {
					t.Errorf("index %s out of shape %v", raw, tt.shape)
				}
			}
			slices.Reverse(tuple)
			idx = append(idx, tuple)
		}
		n := 1
		for _, x := range tt.shape {
			n *= x
		}
		if len(idx) != n {
			t.Errorf("%d elements, want %d", len(idx), n)
		}
		if !slices.IsSortedFunc(idx, slices.Compare[[]int]) {
			t.Errorf("indices not sorted")
		}
	}
}

func TestResizeZeroes(t *testing.T) {
	tg := get(t, scope(t), "array1")
	if err := tg.SetShape([]int{3}); err != nil {
		t.Fatal(err)
	}
	got, _ := tg.Value()
	if diff := cmp.Diff([]any{int64(0), int64(0), int64(0)}, got); diff != "" {
		t.Errorf("value (-want +got):\n%s", diff)
	}
}

func TestResizeErrors(t *testing.T) {
	tg := get(t, scope(t), "array1")
	for _, shape := range [][]int{nil, {1, 2, 3, 4}, {0}, {2, -1}} {
		if err := tg.SetShape(shape); !errors.Is(err, errs.ErrValue) {
			t.Errorf("%v: got %v, want value error", shape, err)
		}
	}
	if err := get(t, scope(t), "dint").SetShape([]int{2}); !errors.Is(err, errs.ErrCapability) {
		t.Errorf("scalar: got %v, want capability error", err)
	}
	member := data(t, get(t, scope(t), "udt"), 0, "dint_array").(*Array)
	if err := member.SetShape([]int{1}); !errors.Is(err, errs.ErrReadOnly) {
		t.Errorf("member: got %v, want read only error", err)
	}
}

func TestArray3(t *testing.T) {
	tg := get(t, scope(t), "array1")
	if err := tg.SetShape([]int{2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	// document dimensions are 4,3,2: the first key selects among 4
	v, err := tg.Value()
	if err != nil {
		t.Fatal(err)
	}
	l0 := v.([]any)
	l1 := l0[0].([]any)
	l2 := l1[0].([]any)
	if len(l0) != 4 || len(l1) != 3 || len(l2) != 2 {
		t.Errorf("nesting %d %d %d", len(l0), len(l1), len(l2))
	}
	e := data(t, tg, 3, 2, 1)
	if op := e.Operand(); op != "[3,2,1]" {
		t.Errorf("operand %q", op)
	}
	if err := e.SetValue(42); err != nil {
		t.Fatal(err)
	}
	v, _ = tg.Value()
	if got := v.([]any)[3].([]any)[2].([]any)[1]; got != int64(42) {
		t.Errorf("got %v", got)
	}
	dim := data(t, tg, 0)
	for range 2 {
		if _, _, err := dim.Description(); !errors.Is(err, errs.ErrType) {
			t.Errorf("dimension description: got %v", err)
		}
		if err := dim.SetDescription("test"); !errors.Is(err, errs.ErrType) {
			t.Errorf("dimension set description: got %v", err)
		}
		dim = data(t, tg, 0, 0)
	}
	if _, err := tg.Get(0, 3); !errors.Is(err, errs.ErrIndex) {
		t.Errorf("got %v, want index error", err)
	}
}

func TestStructure(t *testing.T) {
	tg := get(t, scope(t), "timer")
	s := data(t, tg).(*Structure)
	if diff := cmp.Diff([]string{"PRE", "ACC", "EN", "TT", "DN"}, s.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	x := map[string]any{"PRE": 42, "ACC": 142, "EN": 1, "TT": 0, "DN": 1}
	if err := tg.SetValue(x); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"PRE": int64(42), "ACC": int64(142), "EN": int64(1), "TT": int64(0), "DN": int64(1)}
	got, err := tg.Value()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("value (-want +got):\n%s", diff)
	}
	if err := tg.SetValue("not a dict"); !errors.Is(err, errs.ErrType) {
		t.Errorf("got %v, want type error", err)
	}
	if _, err := tg.Get(0); !errors.Is(err, errs.ErrType) {
		t.Errorf("got %v, want type error", err)
	}
	if _, err := tg.Get("foo"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
	if err := tg.SetValue(map[string]int{"PRE": 1, "nope": 2}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("unknown member: got %v", err)
	}
	if got := value(t, data(t, tg, "PRE")); got != int64(42) {
		t.Errorf("PRE written by a failed write: %v", got)
	}
	for _, m := range s.Names() {
		for x := range 2 {
			d := data(t, tg, m)
			if err := d.SetValue(x); err != nil {
				t.Fatal(err)
			}
			if got := value(t, d); got != int64(x) {
				t.Errorf("%s = %v, want %d", m, got, x)
			}
		}
	}
}

func TestComplex(t *testing.T) {
	tg := get(t, scope(t), "udt")
	v, err := tg.Value()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.([]any); !ok {
		t.Fatalf("value is %T", v)
	}
	if _, ok := value(t, data(t, tg, 0, "dint_array")).([]any); !ok {
		t.Errorf("member array value is not a list")
	}
	if _, ok := value(t, data(t, tg, 0, "timer")).(map[string]any); !ok {
		t.Errorf("member structure value is not a map")
	}
	in := []any{
		map[string]any{
			"dint_array": []any{1, 2, 3},
			"timer":      map[string]any{"PRE": 1000, "DN": 1},
			"real":       0.5,
		},
	}
	if err := tg.SetValue(in); err != nil {
		t.Fatal(err)
	}
	got := value(t, data(t, tg, 0))
	want := map[string]any{
		"dint_array": []any{int64(1), int64(2), int64(3)},
		"timer":      map[string]any{"PRE": int64(1000), "DN": int64(1)},
		"real":       0.5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("value (-want +got):\n%s", diff)
	}
	if op := data(t, tg, 1, "timer", "PRE", 3).Operand(); op != "[1].TIMER.PRE.3" {
		t.Errorf("operand %q", op)
	}
	if op := data(t, tg, 1, "dint_array", 2).Operand(); op != "[1].DINT_ARRAY[2]" {
		t.Errorf("operand %q", op)
	}
}

func TestOperand(t *testing.T) {
	doc := dom.New("Structure", dom.Attr{Name: "DataType", Value: "udt"})
	foo := doc.Root().Append("StructureMember", dom.Attr{Name: "Name", Value: "foo"}, dom.Attr{Name: "DataType", Value: "x"})
	foo.Append("DataValueMember", dom.Attr{Name: "Name", Value: "bar"}, dom.Attr{Name: "DataType", Value: "DINT"}, dom.Attr{Name: "Value", Value: "0"})
	root, err := newData(doc.Root(), "", "", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	m, _ := root.(*Structure).Member("foo")
	sub, _ := m.(*Structure).Member("bar")
	if op := sub.Operand(); op != ".FOO.BAR" {
		t.Errorf("operand %q", op)
	}
	if _, _, err := sub.Description(); !errors.Is(err, errs.ErrCapability) {
		t.Errorf("description without a tag: got %v", err)
	}
}

func TestDispatch(t *testing.T) {
	doc := dom.New("root")
	tests := []struct {
		elem dom.Element
		typ  string
		want string
	}{
		{doc.NewElement("Array", dom.Attr{Name: "Dimensions", Value: "1"}), "DINT", "*tag.Array"},
		{doc.NewElement("ArrayMember", dom.Attr{Name: "Dimensions", Value: "1"}), "DINT", "*tag.Array"},
		{doc.NewElement("DataValue", dom.Attr{Name: "Value", Value: "0"}), "INT", "*tag.Integer"},
		{doc.NewElement("DataValue", dom.Attr{Name: "Value", Value: "0"}), "REAL", "*tag.Float"},
		{doc.NewElement("Structure"), "TIMER", "*tag.Structure"},
	}
	for _, tt := range tests {
		d, err := newData(tt.elem, tt.typ, "", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := typeName(d); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.elem, got, tt.want)
		}
	}
	if a, _ := newData(tests[1].elem, "DINT", "", nil, nil); !a.(*Array).Member() {
		t.Errorf("ArrayMember not flagged")
	}
	_, err := newData(doc.NewElement("DataValue", dom.Attr{Name: "Value", Value: "0"}), "LREAL", "", nil, nil)
	if !errors.Is(err, errs.ErrCapability) {
		t.Errorf("got %v, want capability error", err)
	}
}

func typeName(d Data) string {
	switch d.(type) {
	case *Array:
		return "*tag.Array"
	case *Integer:
		return "*tag.Integer"
	case *Float:
		return "*tag.Float"
	case *Structure:
		return "*tag.Structure"
	}
	return "?"
}

func TestTagDescription(t *testing.T) {
	tg := get(t, scope(t), "dint")
	tg.SetDescription("description")
	if got, ok := tg.Description(); !ok || got != "description" {
		t.Errorf("got %q %v", got, ok)
	}
	if tg.Element().ChildAt(0).Name() != "Description" {
		t.Errorf("description is not the first child")
	}
	if got, _, _ := data(t, tg).Description(); got != "description" {
		t.Errorf("top-level data description %q", got)
	}
	tg.DeleteDescription()
	if _, ok := tg.Description(); ok {
		t.Errorf("description not deleted")
	}
	multi := tg.WithLanguage(lang.Multi("en-US"))
	multi.SetDescription("english")
	if _, ok := tg.Description(); ok {
		t.Errorf("localized description visible in single-language mode")
	}
	if got, _ := multi.Description(); got != "english" {
		t.Errorf("got %q", got)
	}
}

func TestConsumed(t *testing.T) {
	tg := get(t, scope(t), "consumed")
	if p, err := tg.Producer(); err != nil || p != "remote_plc" {
		t.Errorf("producer %q %v", p, err)
	}
	if err := tg.SetProducer("spam"); err != nil {
		t.Fatal(err)
	}
	ci, _ := tg.Element().Child("ConsumeInfo")
	if v, _ := ci.Attr("Producer"); v != "spam" {
		t.Errorf("producer attribute %q", v)
	}
	if err := tg.SetRemoteTag("eggs"); err != nil {
		t.Fatal(err)
	}
	if r, _ := tg.RemoteTag(); r != "eggs" {
		t.Errorf("remote tag %q", r)
	}
	if err := tg.SetRemoteTag(""); !errors.Is(err, errs.ErrValue) {
		t.Errorf("got %v, want value error", err)
	}
	tg.SetDescription("description")
	if tg.Element().ChildAt(0).Name() != "ConsumeInfo" {
		t.Errorf("ConsumeInfo is not the first child")
	}
	if tg.Element().ChildAt(1).Name() != "Description" {
		t.Errorf("Description does not follow ConsumeInfo")
	}
}

func TestNotConsumed(t *testing.T) {
	tg := get(t, scope(t), "dint")
	if _, err := tg.Producer(); !errors.Is(err, errs.ErrType) {
		t.Errorf("producer: got %v, want type error", err)
	}
	if err := tg.SetRemoteTag("x"); !errors.Is(err, errs.ErrType) {
		t.Errorf("remote tag: got %v, want type error", err)
	}
}

func TestConsumedWithoutInfo(t *testing.T) {
	doc := dom.New("Tags")
	e := doc.Root().Append("Tag", dom.Attr{Name: "Name", Value: "c"}, dom.Attr{Name: "TagType", Value: "Consumed"})
	tg := New(e, lang.Single())
	if p, err := tg.Producer(); err != nil || p != "" {
		t.Errorf("producer %q %v", p, err)
	}
	if r, err := tg.RemoteTag(); err != nil || r != "" {
		t.Errorf("remote tag %q %v", r, err)
	}
	if n := e.ChildCount(); n != 0 {
		t.Fatalf("reads added %d children", n)
	}
	if err := tg.SetProducer("plc2"); err != nil {
		t.Fatal(err)
	}
	if e.ChildCount() != 1 || e.ChildAt(0).Name() != "ConsumeInfo" {
		t.Errorf("ConsumeInfo not created on write")
	}
	if p, _ := tg.Producer(); p != "plc2" {
		t.Errorf("producer %q", p)
	}
}

func TestIndexKeys(t *testing.T) {
	tg := get(t, scope(t), "array1")
	tests := []struct {
		key  any
		kind error
	}{
		{"x", errs.ErrType},
		{1.5, errs.ErrType},
		{uint64(1 << 63), errs.ErrIndex},
		{uint8(10), errs.ErrIndex},
		{-1, errs.ErrIndex},
	}
	for _, tt := range tests {
		if _, err := tg.Get(tt.key); !errors.Is(err, tt.kind) {
			t.Errorf("Get(%#v): got %v, want %v", tt.key, err, tt.kind)
		}
	}
	if d, err := tg.Get(uint8(9)); err != nil || value(t, d) != int64(9) {
		t.Errorf("Get(uint8(9)) = %v", err)
	}
}

func TestAlias(t *testing.T) {
	s := scope(t)
	a := get(t, s, "alias")
	if v, err := a.AliasFor(); err != nil || v != "dint.3" {
		t.Errorf("alias for %q %v", v, err)
	}
	if _, err := get(t, s, "dint").AliasFor(); !errors.Is(err, errs.ErrCapability) {
		t.Errorf("got %v, want capability error", err)
	}
	if _, err := a.Data(); !errors.Is(err, errs.ErrCapability) {
		t.Errorf("alias data: got %v", err)
	}
}

func TestLookup(t *testing.T) {
	s := scope(t)
	tg, d, err := s.Lookup("udt[1].timer.PRE")
	if err != nil {
		t.Fatal(err)
	}
	if tg.Name() != "udt" || d.Operand() != "[1].TIMER.PRE" {
		t.Errorf("got %s %s", tg.Name(), d.Operand())
	}
	if _, _, err := s.Lookup("dint.40"); !errors.Is(err, errs.ErrIndex) {
		t.Errorf("got %v, want index error", err)
	}
}
