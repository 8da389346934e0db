package main

import (
	"fmt"

	"github.com/signadot/l5x/encode"
	"github.com/signadot/l5x/project"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: get requires 2 arguments, an L5X file and an operand", cli.ErrUsage)
	}
	p, err := project.Load(args[0])
	if err != nil {
		return err
	}
	s, err := scope(p, cfg.Program)
	if err != nil {
		return err
	}
	t, d, err := s.Lookup(args[1])
	if err != nil {
		return err
	}
	v, err := d.Value()
	if err != nil {
		return err
	}
	if err := encode.Encode(v, cc.Out, cfg.encOpts(cc.Out, t.Name()+d.Operand())...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
