package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/signadot/l5x/encode"
	"github.com/signadot/l5x/module"
	"github.com/signadot/l5x/project"

	"github.com/scott-cotton/cli"
)

func modules(cfg *ModulesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Modules.Parse(cc, args)
	if err != nil {
		cfg.Modules.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: modules requires one argument, an L5X file", cli.ErrUsage)
	}
	p, err := project.Load(args[0])
	if err != nil {
		return err
	}
	c, err := p.Controller()
	if err != nil {
		return err
	}
	var list []any
	err = c.Modules().Each(func(name string, m *module.Module) error {
		info, err := moduleInfo(m)
		if err != nil {
			return err
		}
		list = append(list, info)
		return nil
	})
	if err != nil {
		return err
	}
	if cfg.outFormat() != encode.TextFormat {
		return encode.Encode(list, cc.Out, cfg.encOpts(cc.Out, "")...)
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	for _, x := range list {
		info := x.(map[string]any)
		snn, _ := info["SafetyNetwork"].(string)
		fmt.Fprintf(tw, "%s\t%s\tinhibited=%t\tfault=%t\t%s\n",
			info["Name"], info["CatalogNumber"], info["Inhibited"], info["MajorFault"], snn)
	}
	return tw.Flush()
}

func moduleInfo(m *module.Module) (map[string]any, error) {
	inh, err := m.Inhibited()
	if err != nil {
		return nil, err
	}
	fault, err := m.MajorFault()
	if err != nil {
		return nil, err
	}
	info := map[string]any{
		"Name":          m.Name(),
		"CatalogNumber": m.CatalogNumber(),
		"Inhibited":     inh,
		"MajorFault":    fault,
	}
	if m.Element().HasAttr("SafetyNetwork") {
		snn, err := m.SafetyNetwork()
		if err != nil {
			return nil, err
		}
		info["SafetyNetwork"] = snn
	}
	return info, nil
}
