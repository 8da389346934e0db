// Package module provides accessors for I/O modules and their ports.
package module

import (
	"github.com/signadot/l5x/dict"
	"github.com/signadot/l5x/dom"
	"github.com/signadot/l5x/field"
)

var (
	inhibited  = field.Bool("Inhibited")
	majorFault = field.Bool("MajorFault")
	address    = field.String("Address", false)
	natAddress = field.NATAddress("NATActualAddress")
	portType   = field.String("Type", true)
)

type Module struct {
	elem dom.Element
}

func New(elem dom.Element) *Module {
	return &Module{elem: elem}
}

// Modules returns the modules under a controller's Modules element,
// keyed by name.
func Modules(controller dom.Element) *dict.Dict[string, *Module] {
	mods, _ := controller.Child("Modules")
	return dict.New(mods, "Name", func(e dom.Element) (*Module, error) {
		return New(e), nil
	})
}

func (m *Module) Element() dom.Element { return m.elem }

func (m *Module) Name() string {
	n, _ := m.elem.Attr("Name")
	return n
}

func (m *Module) CatalogNumber() string {
	n, _ := m.elem.Attr("CatalogNumber")
	return n
}

func (m *Module) Inhibited() (bool, error) {
	v, _, err := inhibited.Get(m.elem)
	return v, err
}

func (m *Module) SetInhibited(v bool) error {
	return inhibited.Set(m.elem, v)
}

func (m *Module) MajorFault() (bool, error) {
	v, _, err := majorFault.Get(m.elem)
	return v, err
}

func (m *Module) SetMajorFault(v bool) error {
	return majorFault.Set(m.elem, v)
}

// SafetyNetwork returns the module's safety network number as 12 hex
// digits.  Only safety modules carry one.
func (m *Module) SafetyNetwork() (string, error) {
	v, _, err := field.SafetyNetwork.Get(m.elem)
	return v, err
}

func (m *Module) SetSafetyNetwork(hex string) error {
	return field.SafetyNetwork.Set(m.elem, hex)
}

// Ports returns the module's ports keyed by their integer Id.
func (m *Module) Ports() *dict.Dict[int, *Port] {
	ports, _ := m.elem.Child("Ports")
	return dict.NewKeyed(ports, "Id", dict.IntKey, func(e dom.Element) (*Port, error) {
		return &Port{elem: e}, nil
	})
}

type Port struct {
	elem dom.Element
}

func (p *Port) Element() dom.Element { return p.elem }

func (p *Port) Address() (string, bool) {
	v, ok, _ := address.Get(p.elem)
	return v, ok
}

func (p *Port) SetAddress(a string) error {
	return address.Set(p.elem, a)
}

// NATAddress is the translated address of a port configured for NAT.
func (p *Port) NATAddress() (string, bool) {
	v, ok, _ := natAddress.Get(p.elem)
	return v, ok
}

func (p *Port) SetNATAddress(a string) error {
	return natAddress.Set(p.elem, a)
}

func (p *Port) ClearNATAddress() error {
	return natAddress.Clear(p.elem)
}

func (p *Port) Type() (string, error) {
	v, _, err := portType.Get(p.elem)
	return v, err
}

func (p *Port) SafetyNetwork() (string, error) {
	v, _, err := field.SafetyNetwork.Get(p.elem)
	return v, err
}

func (p *Port) SetSafetyNetwork(hex string) error {
	return field.SafetyNetwork.Set(p.elem, hex)
}
