package tag

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"

	"github.com/signadot/l5x/errs"
)

// asInt converts any Go integer kind, or an integral json.Number, to
// int64.
func asInt(v any, operand string) (int64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, errs.Value(operand, "%d out of range", u)
		}
		return int64(u), nil
	}
	if n, ok := v.(json.Number); ok {
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return 0, errs.Type(operand, "%s is not an integer", n)
		}
		return i, nil
	}
	return 0, errs.Type(operand, "%T is not an integer", v)
}

func asFloat(v any, operand string) (float64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	}
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return 0, errs.Type(operand, "%s is not a number", n)
		}
		return f, nil
	}
	return 0, errs.Type(operand, "%T is not a number", v)
}

// asList unpacks any slice or array.
func asList(v any, operand string) ([]any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, errs.Type(operand, "%T is not a list", v)
	}
	res := make([]any, rv.Len())
	for i := range res {
		res[i] = rv.Index(i).Interface()
	}
	return res, nil
}

// asMap unpacks any map with string keys.
func asMap(v any, operand string) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, errs.Type(operand, "%T is not a map of member names", v)
	}
	res := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		res[it.Key().String()] = it.Value().Interface()
	}
	return res, nil
}

// asIndex converts a navigation key to an integer index.
func asIndex(key any, operand string) (int, error) {
	i, err := asInt(key, operand)
	switch {
	case errors.Is(err, errs.ErrType):
		return 0, errs.Type(operand, "index %v (%T) is not an integer", key, key)
	case err != nil:
		return 0, errs.Index(operand, "index %v out of range", key)
	}
	return int(i), nil
}
