package main

import (
	"fmt"

	"github.com/signadot/l5x/lang"
	"github.com/signadot/l5x/tag"

	"github.com/scott-cotton/cli"
)

func desc(cfg *DescConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Desc.Parse(cc, args)
	if err != nil {
		cfg.Desc.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	write := len(args) == 3
	if len(args) < 2 || len(args) > 3 || (write && cfg.Delete) {
		return fmt.Errorf("%w: desc requires an L5X file, an operand and either a text or -d", cli.ErrUsage)
	}
	e, err := openEdit(args[0])
	if err != nil {
		return err
	}
	if cfg.Lang != "" {
		e.p.SetLanguage(lang.Multi(cfg.Lang))
	}
	s, err := scope(e.p, cfg.Program)
	if err != nil {
		return err
	}
	name, keys, err := tag.ParseOperand(args[1])
	if err != nil {
		return err
	}
	t, err := s.Get(name)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		switch {
		case cfg.Delete:
			t.DeleteDescription()
		case write:
			t.SetDescription(args[2])
		default:
			text, ok := t.Description()
			return printDesc(cc, text, ok)
		}
		return e.finish(cfg.MainConfig, cc, cfg.Out, cfg.DryRun)
	}
	d, err := t.Get(keys...)
	if err != nil {
		return err
	}
	switch {
	case cfg.Delete:
		err = d.DeleteDescription()
	case write:
		err = d.SetDescription(args[2])
	default:
		text, ok, err := d.Description()
		if err != nil {
			return err
		}
		return printDesc(cc, text, ok)
	}
	if err != nil {
		return err
	}
	return e.finish(cfg.MainConfig, cc, cfg.Out, cfg.DryRun)
}

func printDesc(cc *cli.Context, text string, ok bool) error {
	if !ok {
		theLog.Info("no description")
		return nil
	}
	_, err := fmt.Fprintln(cc.Out, text)
	return err
}
