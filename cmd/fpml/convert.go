package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/midbel/cli"

	"github.com/midbel/fpmlchat/xsd"
)

var convertCmd = cli.Command{
	Name:    "convert",
	Summary: "flatten the FpML schema files into a JSON lookup table",
	Handler: &ConvertCmd{},
}

type ConvertCmd struct {
	Config   string
	Dir      string
	Main     string
	Output   string
	Indent   int
	Parallel int
	Verbose  bool
}

func (c *ConvertCmd) Run(args []string) error {
	set := flag.NewFlagSet("convert", flag.ContinueOnError)
	set.StringVar(&c.Config, "c", "", "configuration file")
	set.StringVar(&c.Dir, "d", "", "folder holding the schema files")
	set.StringVar(&c.Main, "m", "", "main schema, relative to the schema folder")
	set.StringVar(&c.Output, "o", "", "JSON file to write")
	set.IntVar(&c.Indent, "i", -1, "number of spaces used to indent the JSON (0: compact)")
	set.IntVar(&c.Parallel, "j", 0, "number of schemas parsed concurrently")
	set.BoolVar(&c.Verbose, "v", false, "trace schema loading")
	if err := set.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Dir != "" {
		cfg.Source.Dir = c.Dir
	}
	if c.Main != "" {
		cfg.Source.Main = c.Main
	}
	if c.Output != "" {
		cfg.Output.File = c.Output
	}
	if c.Indent >= 0 {
		cfg.Output.Indent = c.Indent
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := []xsd.Option{
		xsd.WithParallel(c.Parallel),
	}
	if c.Verbose {
		opts = append(opts, xsd.WithTracer(xsd.TraceStderr()))
	}
	var list []xsd.Element
	load := func() error {
		list, err = xsd.Flatten(cfg.Source.Root(), cfg.Source.Dir, opts...)
		return err
	}
	if c.Verbose {
		err = load()
	} else {
		err = NewSpinner(os.Stderr, "converting "+cfg.Source.Root()).Run(load)
	}
	if err != nil {
		return err
	}
	indent := strings.Repeat(" ", cfg.Output.Indent)
	if err := xsd.WriteFileIndent(cfg.Output.File, list, indent); err != nil {
		return err
	}

	var count int
	for _, el := range list {
		el.Walk(func(_ xsd.Element, _ []string) {
			count++
		})
	}
	fields := []field{
		{Label: "Schema", Value: cfg.Source.Root()},
		{Label: "Elements", Value: strconv.Itoa(len(list))},
		{Label: "Fields", Value: strconv.Itoa(count)},
		{Label: "Output", Value: cfg.Output.File},
	}
	printFields(os.Stdout, fields)
	fmt.Fprintln(os.Stdout, successStyle.Render("XSD converted successfully!"))
	return nil
}
