package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	DOM    bool
	Data   bool
	Lang   bool
	Resize bool
}

var d *debug

func init() {
	d = &debug{}
	d.DOM = boolEnv("L5X_DEBUG_DOM")
	d.Data = boolEnv("L5X_DEBUG_DATA")
	d.Lang = boolEnv("L5X_DEBUG_LANG")
	d.Resize = boolEnv("L5X_DEBUG_RESIZE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func DOM() bool {
	return d.DOM
}
func Data() bool {
	return d.Data
}
func Lang() bool {
	return d.Lang
}
func Resize() bool {
	return d.Resize
}

// Logf writes to stderr, rendering maps and slices as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		switch args[i].(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(args[i], "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", args[i])
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
