package main

import (
	"fmt"
	"os"

	"github.com/signadot/l5x/eval"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 3 {
		return fmt.Errorf("%w: patch requires 3 arguments, an L5X file, an operand and a patch", cli.ErrUsage)
	}
	p, err := getPatch(cfg, args[2])
	if err != nil {
		return err
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
	if err := eval.PatchData(d, p); err != nil {
		return fmt.Errorf("error patching %s: %w", args[1], err)
	}
	return e.finish(cfg.MainConfig, cc, cfg.Out, cfg.DryRun)
}

func getPatch(cfg *PatchConfig, arg string) ([]byte, error) {
	if cfg.String {
		return []byte(arg), nil
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return d, nil
}
