// Package lang implements language scoped free text: element descriptions
// and per-operand comments.
//
// A project is either single-language, storing text directly under its
// container element, or multi-language, storing one localized child per
// language tag.  The mode is never read from the node; callers pass a
// Context on every access.
//
//	<Description><![CDATA[text]]></Description>
//
//	<Description>
//	  <LocalizedDescription Lang="en-US"><![CDATA[text]]></LocalizedDescription>
//	</Description>
//
// Text itself lives in a dom.CDATA placeholder child.
package lang

import (
	"strings"

	"github.com/signadot/l5x/debug"
	"github.com/signadot/l5x/dom"
)

const LangAttr = "Lang"

// Context selects the language scope of text accesses.  The zero Context
// is single-language.
type Context struct {
	Lang string
}

func Single() Context { return Context{} }

func Multi(lang string) Context { return Context{Lang: lang} }

func (c Context) IsMulti() bool { return c.Lang != "" }

func (c Context) String() string {
	if c.Lang == "" {
		return "single-language"
	}
	return c.Lang
}

// Step selects a child by name and, when Attr is set, by the value of one
// of its attributes.
type Step struct {
	Name  string
	Attr  string
	Value string
	// Fold compares Value case-insensitively.
	Fold bool
}

func (s Step) match(e dom.Element) bool {
	if e.Name() != s.Name {
		return false
	}
	if s.Attr == "" {
		return true
	}
	v, ok := e.Attr(s.Attr)
	if !ok {
		return false
	}
	if s.Fold {
		return strings.EqualFold(v, s.Value)
	}
	return v == s.Value
}

func (s Step) attrs() []dom.Attr {
	if s.Attr == "" {
		return nil
	}
	return []dom.Attr{{Name: s.Attr, Value: s.Value}}
}

// Text is a scoped path from an owner element to a text entry.
type Text struct {
	Owner dom.Element
	// Steps lead from the owner to the single-language entry.
	Steps []Step
	// Localized names the per-language child of the last step.
	Localized string
	// After lists owner children that must precede a newly created first
	// step element.
	After []string
}

func (t Text) path(ctx Context) []Step {
	if !ctx.IsMulti() {
		return t.Steps
	}
	steps := make([]Step, len(t.Steps), len(t.Steps)+1)
	copy(steps, t.Steps)
	return append(steps, Step{Name: t.Localized, Attr: LangAttr, Value: ctx.Lang})
}

func (t Text) find(ctx Context) (dom.Element, bool) {
	cur := t.Owner
	for _, s := range t.path(ctx) {
		next, ok := cur.FindChild(s.match)
		if !ok {
			return dom.Element{}, false
		}
		cur = next
	}
	return cur, true
}

// Get returns the entry text in the context's scope.  Entries of other
// languages are invisible.
func (t Text) Get(ctx Context) (string, bool) {
	leaf, ok := t.find(ctx)
	if !ok {
		return "", false
	}
	return content(leaf)
}

func content(e dom.Element) (string, bool) {
	var (
		b     strings.Builder
		found bool
	)
	for _, c := range e.ChildrenNamed(dom.CDATA) {
		b.WriteString(c.Text())
		found = true
	}
	if found {
		return b.String(), true
	}
	if txt := e.Text(); txt != "" {
		return txt, true
	}
	return "", false
}

// Set creates or overwrites the entry in the context's scope, leaving the
// entries of other languages alone.
func (t Text) Set(ctx Context, text string) {
	if debug.Lang() {
		debug.Logf("set text %v in %s under %s\n", t.path(ctx), ctx, t.Owner)
	}
	cur := t.Owner
	for i, s := range t.path(ctx) {
		next, ok := cur.FindChild(s.match)
		if !ok {
			pos := cur.ChildCount()
			if i == 0 {
				pos = t.insertPos()
			}
			next = cur.Insert(pos, s.Name, s.attrs()...)
		}
		cur = next
	}
	cur.RemoveChildren(func(c dom.Element) bool { return c.Name() == dom.CDATA })
	cur.SetText("")
	cur.Append(dom.CDATA).SetText(text)
}

func (t Text) insertPos() int {
	pos := 0
	for i, c := range t.Owner.Children() {
		for _, name := range t.After {
			if c.Name() == name {
				pos = i + 1
			}
		}
	}
	return pos
}

// Delete removes the entry in the context's scope along with any container
// left empty.  Deleting a missing entry does nothing.
func (t Text) Delete(ctx Context) {
	leaf, ok := t.find(ctx)
	if !ok {
		return
	}
	if debug.Lang() {
		debug.Logf("delete text %v in %s under %s\n", t.path(ctx), ctx, t.Owner)
	}
	parent, _ := leaf.Parent()
	leaf.Remove()
	for parent != t.Owner && parent.ChildCount() == 0 {
		next, ok := parent.Parent()
		parent.Remove()
		if !ok {
			return
		}
		parent = next
	}
}

// Description is the text of an element's Description child.  New
// descriptions come first among the owner's children, after consumed or
// produced tag metadata.
func Description(owner dom.Element) Text {
	return Text{
		Owner:     owner,
		Steps:     []Step{{Name: "Description"}},
		Localized: "LocalizedDescription",
		After:     []string{"ConsumeInfo", "ProduceInfo"},
	}
}

// Comment is the text of one operand's comment in an element's Comments
// container.  Operands compare case-insensitively.
func Comment(owner dom.Element, operand string) Text {
	return Text{
		Owner: owner,
		Steps: []Step{
			{Name: "Comments"},
			{Name: "Comment", Attr: "Operand", Value: operand, Fold: true},
		},
		Localized: "LocalizedComment",
		After:     []string{"ConsumeInfo", "ProduceInfo", "Description"},
	}
}
