package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/scott-cotton/cli"
)

func resize(cfg *ResizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Resize.Parse(cc, args)
	if err != nil {
		cfg.Resize.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 3 {
		return fmt.Errorf("%w: resize requires an L5X file, a tag and at least one dimension", cli.ErrUsage)
	}
	dims := make([]int, len(args)-2)
	for i, a := range args[2:] {
		dims[i], err = strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("%w: dimension %q: %w", cli.ErrUsage, a, err)
		}
	}
	// the library takes the least significant dimension first
	slices.Reverse(dims)
	e, err := openEdit(args[0])
	if err != nil {
		return err
	}
	s, err := scope(e.p, cfg.Program)
	if err != nil {
		return err
	}
	t, err := s.Get(args[1])
	if err != nil {
		return err
	}
	if err := t.SetShape(dims); err != nil {
		return err
	}
	return e.finish(cfg.MainConfig, cc, cfg.Out, cfg.DryRun)
}
