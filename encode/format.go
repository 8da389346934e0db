package encode

import (
	"errors"
	"fmt"
	"strings"
)

// Format selects how values are rendered: as operand lines, YAML or JSON.
type Format int

const (
	TextFormat Format = iota
	YAMLFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

// formatNames lists each format's canonical name first, then its aliases.
var formatNames = [...][]string{
	TextFormat: {"text", "t", "txt", "operands"},
	YAMLFormat: {"yaml", "y", "yml"},
	JSONFormat: {"json", "j"},
}

// ParseFormat accepts a canonical format name or alias, ignoring case.
func ParseFormat(v string) (Format, error) {
	lv := strings.ToLower(v)
	for f, names := range formatNames {
		for _, n := range names {
			if n == lv {
				return Format(f), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q (want one of %s)", ErrBadFormat, v, FormatUsage())
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f][0]
}

// FormatUsage describes the accepted names, e.g. for option help.
func FormatUsage() string {
	parts := make([]string, len(formatNames))
	for i, names := range formatNames {
		parts[i] = strings.Join(names, "/")
	}
	return strings.Join(parts, ", ")
}
