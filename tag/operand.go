package tag

import (
	"strconv"
	"strings"

	"github.com/signadot/l5x/errs"
)

// ParseOperand splits a full operand into the tag name and the keys
// leading to the addressed value.  Members are strings; indices and bit
// numbers are ints, with each component of a multi-dimensional index a
// separate key.
//
//	ParseOperand("udt[1].timer.PRE")  // "udt", [1 "timer" "PRE"]
//	ParseOperand("a3[0,2,1].5")       // "a3", [0 2 1 5]
func ParseOperand(operand string) (string, []any, error) {
	end := strings.IndexAny(operand, ".[")
	if end == -1 {
		end = len(operand)
	}
	name := operand[:end]
	if name == "" {
		return "", nil, errs.Value(operand, "operand has no tag name")
	}
	var keys []any
	rest := operand[end:]
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			n := strings.IndexAny(rest, ".[")
			if n == -1 {
				n = len(rest)
			}
			part := rest[:n]
			rest = rest[n:]
			if part == "" {
				return "", nil, errs.Value(operand, "empty member name")
			}
			if bit, err := strconv.Atoi(part); err == nil {
				keys = append(keys, bit)
				continue
			}
			keys = append(keys, part)
		case '[':
			n := strings.IndexByte(rest, ']')
			if n == -1 {
				return "", nil, errs.Value(operand, "unterminated index")
			}
			for _, f := range strings.Split(rest[1:n], ",") {
				i, err := strconv.Atoi(strings.TrimSpace(f))
				if err != nil {
					return "", nil, errs.Value(operand, "bad index %q", f)
				}
				keys = append(keys, i)
			}
			rest = rest[n+1:]
		default:
			return "", nil, errs.Value(operand, "unexpected %q", rest[0])
		}
	}
	return name, keys, nil
}
