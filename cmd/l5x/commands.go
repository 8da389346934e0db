package main

import (
	"github.com/signadot/l5x/encode"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "value input format: " + encode.FormatUsage(),
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: " + encode.FormatUsage(),
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "l5x").
		WithSynopsis("l5x [opts] command [opts]").
		WithDescription("l5x reads and edits tag data in L5X exports.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return l5xMain(cfg, cc, args)
		}).
		WithSubs(
			TagsCommand(cfg),
			GetCommand(cfg),
			SetCommand(cfg),
			PatchCommand(cfg),
			DescCommand(cfg),
			ResizeCommand(cfg),
			ModulesCommand(cfg))
}

func TagsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TagsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Tags, "tags").
		WithAliases("t", "ls").
		WithSynopsis("tags [-w expr] [-p program] file").
		WithDescription(tagsDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tags(cfg, cc, args)
		})
}

const tagsDescription = `list the tags of a controller or program.

The -w expression is evaluated for every tag and must be boolean.  It sees
the fields Name, DataType, TagType, Description, Dims (dimensions as written
in the export, most significant first) and Constant, the function Value()
returning the decorated value, and getenv(name).

  l5x tags -w 'DataType == "TIMER" and Value().PRE > 1000' plc.L5X`

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [-p program] file operand").
		WithDescription("print the value of a tag, member, element or bit, e.g. timer.PRE or arr[2,1].3").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set [-p program] [-o out] [-n] [-f] file operand value").
		WithDescription("write a JSON or YAML value; nothing is written unless all of it is valid").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [-p program] [-o out] [-n] [-s] file operand patchfile").
		WithDescription("apply a JSON patch (a list of operations) or merge patch (a map) to a value").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func DescCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DescConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Desc, "desc").
		WithAliases("d").
		WithSynopsis("desc [-p program] [-l lang] [-o out] [-n] file operand [text | -d]").
		WithDescription("read, write or delete the description of a tag or the comment of an operand").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return desc(cfg, cc, args)
		})
}

func ResizeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResizeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Resize, "resize").
		WithAliases("r").
		WithSynopsis("resize [-p program] [-o out] [-n] file tag dim [dim [dim]]").
		WithDescription("change the dimensions of an array tag, most significant first; elements are reset to zero").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return resize(cfg, cc, args)
		})
}

func ModulesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ModulesConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Modules, "modules").
		WithAliases("m", "mod").
		WithSynopsis("modules file").
		WithDescription("list modules with their inhibit, fault and safety network settings").
		WithRun(func(cc *cli.Context, args []string) error {
			return modules(cfg, cc, args)
		})
}
