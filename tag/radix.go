package tag

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Radix is the display radix of a decorated value, carried in its Radix
// attribute.
type Radix string

const (
	Decimal     Radix = "Decimal"
	Hex         Radix = "Hex"
	Binary      Radix = "Binary"
	Octal       Radix = "Octal"
	FloatRadix  Radix = "Float"
	Exponential Radix = "Exponential"
	ASCII       Radix = "ASCII"
)

func (r Radix) base() (base, group int, prefix string) {
	switch r {
	case Hex:
		return 16, 4, "16#"
	case Binary:
		return 2, 4, "2#"
	case Octal:
		return 8, 3, "8#"
	}
	return 10, 0, ""
}

// parseInt reads integer text in any radix form, "-12", "16#ff_ff",
// "2#0000_0001" or "8#777", into a value of the given width.  Prefixed
// forms are two's complement images and are sign extended when signed.
func parseInt(text string, width int, signed bool) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), "_", "")
	base := 10
	if i := strings.IndexByte(s, '#'); i != -1 {
		b, err := strconv.Atoi(s[:i])
		if err != nil || (b != 2 && b != 8 && b != 10 && b != 16) {
			return 0, fmt.Errorf("bad radix in %q", text)
		}
		base, s = b, s[i+1:]
	}
	if base == 10 {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", text)
		}
		return v, nil
	}
	u, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", text)
	}
	if width < 64 && u>>uint(width) != 0 {
		return 0, fmt.Errorf("%q exceeds %d bits", text, width)
	}
	return signExtend(u, width, signed), nil
}

// formatInt renders v in radix r.  Prefixed forms write the width limited
// two's complement image, zero padded to the full width and grouped with
// underscores.
func formatInt(v int64, r Radix, width int) string {
	base, group, prefix := r.base()
	if base == 10 {
		return strconv.FormatInt(v, 10)
	}
	digits := strconv.FormatUint(uint64(v)&widthMask(width), base)
	n := digitsFor(width, base)
	if len(digits) < n {
		digits = strings.Repeat("0", n-len(digits)) + digits
	}
	return prefix + grouped(digits, group)
}

func digitsFor(width, base int) int {
	bits := map[int]int{2: 1, 8: 3, 16: 4}[base]
	return (width + bits - 1) / bits
}

func grouped(digits string, n int) string {
	if len(digits) <= n {
		return digits
	}
	b := &strings.Builder{}
	head := len(digits) % n
	if head != 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += n {
		if b.Len() != 0 {
			b.WriteByte('_')
		}
		b.WriteString(digits[i : i+n])
	}
	return b.String()
}

func widthMask(width int) uint64 {
	if width >= 64 {
		return math.MaxUint64
	}
	return 1<<uint(width) - 1
}

func signExtend(u uint64, width int, signed bool) int64 {
	u &= widthMask(width)
	if signed && width < 64 && u&(1<<uint(width-1)) != 0 {
		return int64(u | ^widthMask(width))
	}
	return int64(u)
}

func parseFloat(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	return v, nil
}

// formatFloat renders v the way exports do: always with a fraction, and
// for the Exponential radix with eight fraction digits and a three digit
// exponent.
func formatFloat(v float64, r Radix) string {
	if r == Exponential {
		mant, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', 8, 64), "e")
		sign := exp[0]
		n, _ := strconv.Atoi(exp[1:])
		return fmt.Sprintf("%se%c%03d", mant, sign, n)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
