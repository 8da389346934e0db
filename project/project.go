// Package project opens L5X exports and exposes their controller,
// programs, tags and modules.
package project

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/l5x/dict"
	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/errs"
	"github.com/signadot/l5x/field"
	"github.com/signadot/l5x/lang"
	"github.com/signadot/l5x/module"
	"github.com/signadot/l5x/tag"
)

const RootName = "RSLogix5000Content"

var (
	currentLanguage = field.String("CurrentLanguage", false)
	commPath        = field.NonEmpty("CommPath")
)

type Project struct {
	doc  *dom.Document
	lang lang.Context
}

// Parse reads an export.  The language context is taken from the root
// CurrentLanguage attribute: projects without one are single-language.
func Parse(r io.Reader) (*Project, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root.Name() != RootName {
		return nil, fmt.Errorf("%w: root element is %s, not %s", dom.ErrParse, root.Name(), RootName)
	}
	p := &Project{doc: doc}
	if cur, ok, _ := currentLanguage.Get(root); ok && cur != "" {
		p.lang = lang.Multi(cur)
	}
	return p, nil
}

func Load(path string) (*Project, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Parse(bytes.NewReader(d))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (p *Project) Encode(w io.Writer) error {
	return p.doc.Encode(w)
}

// Save writes the project to path, replacing any existing file only
// once the whole document is written.
func (p *Project) Save(path string) error {
	buf := &bytes.Buffer{}
	if err := p.Encode(buf); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (p *Project) Document() *dom.Document { return p.doc }

func (p *Project) Language() lang.Context { return p.lang }

// SetLanguage overrides the language of subsequently created accessors.
func (p *Project) SetLanguage(ctx lang.Context) { p.lang = ctx }

func (p *Project) Controller() (*Controller, error) {
	c, ok := p.doc.Root().Child("Controller")
	if !ok {
		return nil, errs.NotFound(RootName, "no Controller")
	}
	return &Controller{elem: c, lang: p.lang}, nil
}

type Controller struct {
	elem dom.Element
	lang lang.Context
}

func (c *Controller) Element() dom.Element { return c.elem }

func (c *Controller) Name() string {
	n, _ := c.elem.Attr("Name")
	return n
}

// CommPath is the communication path used to reach the controller.
func (c *Controller) CommPath() (string, bool) {
	v, ok, _ := commPath.Get(c.elem)
	return v, ok
}

func (c *Controller) SetCommPath(path string) error {
	return commPath.Set(c.elem, path)
}

func (c *Controller) ClearCommPath() error {
	return commPath.Clear(c.elem)
}

// SafetyNetwork is the controller's safety network number, present on
// safety controllers only.
func (c *Controller) SafetyNetwork() (string, error) {
	v, _, err := field.SafetyNetwork.Get(c.elem)
	return v, err
}

func (c *Controller) SetSafetyNetwork(hex string) error {
	return field.SafetyNetwork.Set(c.elem, hex)
}

func (c *Controller) Tags() tag.Scope {
	return tag.NewScope(c.elem, c.lang)
}

func (c *Controller) Modules() *dict.Dict[string, *module.Module] {
	return module.Modules(c.elem)
}

func (c *Controller) Programs() *dict.Dict[string, *Program] {
	progs, _ := c.elem.Child("Programs")
	return dict.New(progs, "Name", func(e dom.Element) (*Program, error) {
		return &Program{elem: e, lang: c.lang}, nil
	})
}

type Program struct {
	elem dom.Element
	lang lang.Context
}

func (p *Program) Element() dom.Element { return p.elem }

func (p *Program) Name() string {
	n, _ := p.elem.Attr("Name")
	return n
}

func (p *Program) Description() (string, bool) {
	return lang.Description(p.elem).Get(p.lang)
}

func (p *Program) SetDescription(text string) {
	lang.Description(p.elem).Set(p.lang, text)
}

func (p *Program) Tags() tag.Scope {
	return tag.NewScope(p.elem, p.lang)
}
