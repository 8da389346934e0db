package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/signadot/l5x/encode"
	"github.com/signadot/l5x/eval"
	"github.com/signadot/l5x/project"

	"github.com/scott-cotton/cli"
)

func tags(cfg *TagsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tags.Parse(cc, args)
	if err != nil {
		cfg.Tags.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: tags requires one argument, an L5X file", cli.ErrUsage)
	}
	var f *eval.Filter
	if cfg.Where != "" {
		f, err = eval.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	p, err := project.Load(args[0])
	if err != nil {
		return err
	}
	s, err := scope(p, cfg.Program)
	if err != nil {
		return err
	}
	sel, err := eval.Select(s, f)
	if err != nil {
		return err
	}
	envs := make([]eval.Env, len(sel))
	for i, t := range sel {
		if envs[i], err = eval.EnvOf(t); err != nil {
			return err
		}
	}
	if cfg.outFormat() != encode.TextFormat {
		list := make([]any, len(envs))
		for i, env := range envs {
			m := map[string]any{
				"Name":     env.Name,
				"DataType": env.DataType,
				"TagType":  env.TagType,
			}
			if env.Description != "" {
				m["Description"] = env.Description
			}
			if len(env.Dims) != 0 {
				m["Dims"] = env.Dims
			}
			list[i] = m
		}
		return encode.Encode(list, cc.Out, cfg.encOpts(cc.Out, "")...)
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	for _, env := range envs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", env.Name, typeString(env), env.TagType, firstLine(env.Description))
	}
	return tw.Flush()
}

func typeString(env eval.Env) string {
	if len(env.Dims) == 0 {
		return env.DataType
	}
	parts := make([]string, len(env.Dims))
	for i, d := range env.Dims {
		parts[i] = strconv.Itoa(d)
	}
	return env.DataType + "[" + strings.Join(parts, ",") + "]"
}

func firstLine(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	return s
}
