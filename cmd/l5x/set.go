package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: set requires 3 arguments, an L5X file, an operand and a value", cli.ErrUsage)
	}
	raw := []byte(args[2])
	if cfg.File {
		raw, err = os.ReadFile(args[2])
		if err != nil {
			return err
		}
	}
	v, err := cfg.decodeArg(raw)
	if err != nil {
		return fmt.Errorf("%w: error decoding value: %w", cli.ErrUsage, err)
	}
	e, err := openEdit(args[0])
	if err != nil {
		return err
	}
	s, err := scope(e.p, cfg.Program)
	if err != nil {
		return err
	}
	_, d, err := s.Lookup(args[1])
	if err != nil {
		return err
	}
	if err := d.SetValue(v); err != nil {
		return err
	}
	return e.finish(cfg.MainConfig, cc, cfg.Out, cfg.DryRun)
}
