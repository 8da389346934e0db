package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/l5x/encode"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *encode.Format

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**encode.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := encode.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) format(explicit *encode.Format) encode.Format {
	f := encode.TextFormat
	switch {
	case cfg.Y:
		f = encode.YAMLFormat
	case cfg.J:
		f = encode.JSONFormat
	}
	if explicit != nil {
		f = *explicit
	}
	return f
}

func (cfg *MainConfig) outFormat() encode.Format { return cfg.format(cfg.OutFormat) }

// colors reports whether output to w is coloured: -color forces it, an
// explicit -color=false disables it, otherwise terminals get colour.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer, prefix string) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodePrefix(prefix),
	}
	if cfg.colors(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// decodeArg parses a value given on the command line.  Without an input
// format JSON is tried first so that large integers keep their precision,
// then YAML.
func (cfg *MainConfig) decodeArg(d []byte) (any, error) {
	if cfg.InFormat != nil || cfg.J || cfg.Y {
		return encode.Decode(d, cfg.format(cfg.InFormat))
	}
	if v, err := encode.Decode(d, encode.JSONFormat); err == nil {
		return v, nil
	}
	return encode.Decode(d, encode.YAMLFormat)
}

type TagsConfig struct {
	*MainConfig
	Where   string `cli:"name=w aliases=where desc='filter expression over Name DataType TagType Description Dims Constant'"`
	Program string `cli:"name=p aliases=program desc='program scope (default controller)'"`

	Tags *cli.Command
}

type GetConfig struct {
	*MainConfig
	Program string `cli:"name=p aliases=program desc='program scope (default controller)'"`

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Program string `cli:"name=p aliases=program desc='program scope (default controller)'"`
	Out     string `cli:"name=o desc='output file (default: rewrite the input)'"`
	DryRun  bool   `cli:"name=n desc='print a diff instead of writing'"`
	File    bool   `cli:"name=f desc='value argument is a file'"`

	Set *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Program string `cli:"name=p aliases=program desc='program scope (default controller)'"`
	Out     string `cli:"name=o desc='output file (default: rewrite the input)'"`
	DryRun  bool   `cli:"name=n desc='print a diff instead of writing'"`
	String  bool   `cli:"name=s desc='patch arg as string'"`

	Patch *cli.Command
}

type DescConfig struct {
	*MainConfig
	Program string `cli:"name=p aliases=program desc='program scope (default controller)'"`
	Lang    string `cli:"name=l aliases=lang desc='language (default: the project language)'"`
	Out     string `cli:"name=o desc='output file (default: rewrite the input)'"`
	DryRun  bool   `cli:"name=n desc='print a diff instead of writing'"`
	Delete  bool   `cli:"name=d aliases=delete desc='delete the description'"`

	Desc *cli.Command
}

type ResizeConfig struct {
	*MainConfig
	Program string `cli:"name=p aliases=program desc='program scope (default controller)'"`
	Out     string `cli:"name=o desc='output file (default: rewrite the input)'"`
	DryRun  bool   `cli:"name=n desc='print a diff instead of writing'"`

	Resize *cli.Command
}

type ModulesConfig struct {
	*MainConfig

	Modules *cli.Command
}
