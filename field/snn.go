package field

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
)

const (
	SafetyNetworkAttr   = "SafetyNetwork"
	SafetyNetworkPrefix = "16#0000"

	snnDigits = 12
)

// SafetyNetwork accesses a safety network number.  Values are read and
// written as 12 hex digits; the attribute holds them as
// 16#0000_XXXX_XXXX_XXXX.  Only elements already carrying the attribute
// support it.
var SafetyNetwork = Field[string]{
	Name:     SafetyNetworkAttr,
	Required: true,
	Parse: func(raw string) (string, error) {
		return strings.ReplaceAll(strings.TrimPrefix(raw, SafetyNetworkPrefix), "_", ""), nil
	},
	Format: formatSNN,
	Check: func(e dom.Element) error {
		if !e.HasAttr(SafetyNetworkAttr) {
			return errs.Capability(e.Ident(), "%s %s does not support a safety network number", e.Name(), e.Ident())
		}
		return nil
	},
}

func formatSNN(owner dom.Element, v string) (string, error) {
	digits := strings.ReplaceAll(v, "_", "")
	x, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return "", errs.Value(owner.Ident(), "safety network number %q must be %d hex characters", v, snnDigits)
		}
		return "", errs.Value(owner.Ident(), "safety network number %q must be a hex string", v)
	}
	padded := fmt.Sprintf("%0*X", snnDigits, x)
	if len(padded) != snnDigits {
		return "", errs.Value(owner.Ident(), "safety network number %q must be %d hex characters", v, snnDigits)
	}
	fields := []string{SafetyNetworkPrefix}
	for i := 0; i < snnDigits; i += 4 {
		fields = append(fields, padded[i:i+4])
	}
	return strings.Join(fields, "_"), nil
}
