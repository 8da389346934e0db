package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/signadot/l5x/libdiff"
	"github.com/signadot/l5x/project"
	"github.com/signadot/l5x/tag"

	"github.com/scott-cotton/cli"
)

func l5xMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.J, cfg.Y) > 1 {
		return fmt.Errorf("%w: must specify at most one of -j[son] -y[aml]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}

// scope returns the tags of the named program, or of the controller when
// program is empty.
func scope(p *project.Project, program string) (tag.Scope, error) {
	c, err := p.Controller()
	if err != nil {
		return tag.Scope{}, err
	}
	if program == "" {
		return c.Tags(), nil
	}
	prog, err := c.Programs().Get(program)
	if err != nil {
		return tag.Scope{}, err
	}
	return prog.Tags(), nil
}

// edit is a project loaded for modification.  The encoding taken at load
// time is the base of dry run diffs.
type edit struct {
	path   string
	p      *project.Project
	before string
}

func openEdit(path string) (*edit, error) {
	p, err := project.Load(path)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := p.Encode(buf); err != nil {
		return nil, err
	}
	return &edit{path: path, p: p, before: buf.String()}, nil
}

// finish prints a diff of the change when dryRun is set, otherwise saves
// to out, or back to the input when out is empty.
func (e *edit) finish(cfg *MainConfig, cc *cli.Context, out string, dryRun bool) error {
	if dryRun {
		buf := &bytes.Buffer{}
		if err := e.p.Encode(buf); err != nil {
			return err
		}
		lines := libdiff.Lines(e.before, buf.String())
		if !libdiff.Changed(lines) {
			theLog.Info("no change", "path", e.path)
			return nil
		}
		return libdiff.Write(cc.Out, lines, libdiff.Colors(cfg.colors(cc.Out)))
	}
	dest := out
	if dest == "" {
		dest = e.path
	}
	if err := e.p.Save(dest); err != nil {
		return fmt.Errorf("error saving %s: %w", dest, err)
	}
	theLog.Info("wrote", "path", dest)
	return nil
}
