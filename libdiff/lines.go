// Package libdiff computes line diffs between encoded documents.
package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

type Line struct {
	Op   Op
	Text string
}

// Lines diffs from and to line by line.  Line texts exclude the
// terminating newline.
func Lines(from, to string) []Line {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)
	var res []Line
	for _, d := range diffs {
		var op Op
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range splitLines(d.Text) {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Changed reports whether any line differs.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != Equal {
			return true
		}
	}
	return false
}

type WriteOption func(*writeState)

type writeState struct {
	context int
	colors  bool
}

// Context sets the number of unchanged lines kept around each change.
// A negative value keeps all of them.
func Context(n int) WriteOption {
	return func(ws *writeState) { ws.context = n }
}

func Colors(v bool) WriteOption {
	return func(ws *writeState) { ws.colors = v }
}

// Write prints lines with a one character op prefix.  Runs of unchanged
// lines farther than the context from any change collapse into "@@"
// markers naming the line they resume at.
func Write(w io.Writer, lines []Line, opts ...WriteOption) error {
	ws := &writeState{context: 3}
	for _, opt := range opts {
		opt(ws)
	}
	keep := make([]bool, len(lines))
	for i, ln := range lines {
		if ln.Op == Equal && ws.context >= 0 {
			continue
		}
		lo, hi := i-ws.context, i+ws.context
		if ws.context < 0 {
			lo, hi = i, i
		}
		for j := max(lo, 0); j <= min(hi, len(lines)-1); j++ {
			keep[j] = true
		}
	}
	add, del, at := color.GreenString, color.RedString, color.CyanString
	if !ws.colors {
		add, del, at = plain, plain, plain
	}
	toLine := 0
	skipped := false
	for i, ln := range lines {
		if ln.Op != Delete {
			toLine++
		}
		if !keep[i] {
			skipped = true
			continue
		}
		if skipped {
			if _, err := fmt.Fprintln(w, at("@@ %d @@", toLine)); err != nil {
				return err
			}
			skipped = false
		}
		var s string
		switch ln.Op {
		case Insert:
			s = add("+%s", ln.Text)
		case Delete:
			s = del("-%s", ln.Text)
		default:
			s = " " + ln.Text
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

func plain(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
