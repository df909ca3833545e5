package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/midbel/fpmlchat/config"
	"github.com/midbel/fpmlchat/xsd"
)

func main() {
	options := struct {
		Dir      string
		Main     string
		Output   string
		Config   string
		Parallel int
		Verbose  bool
	}{}
	flag.StringVar(&options.Dir, "d", config.DefaultDir, "folder holding the schema files")
	flag.StringVar(&options.Main, "m", config.DefaultMain, "main schema, relative to the schema folder")
	flag.StringVar(&options.Output, "o", config.DefaultOutput, "JSON file to write")
	flag.StringVar(&options.Config, "c", "", "configuration file")
	flag.IntVar(&options.Parallel, "j", 0, "number of schemas parsed concurrently")
	flag.BoolVar(&options.Verbose, "v", false, "trace schema loading")
	flag.Parse()

	cfg := config.Default()
	if options.Config != "" {
		c, err := config.Load(options.Config)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = c
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.Source.Dir = options.Dir
		case "m":
			cfg.Source.Main = options.Main
		case "o":
			cfg.Output.File = options.Output
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	opts := []xsd.Option{
		xsd.WithParallel(options.Parallel),
	}
	if options.Verbose {
		opts = append(opts, xsd.WithTracer(xsd.TraceStderr()))
	}
	list, err := xsd.Flatten(cfg.Source.Root(), cfg.Source.Dir, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error converting XSD:", err)
		os.Exit(1)
	}
	indent := strings.Repeat(" ", cfg.Output.Indent)
	if err := xsd.WriteFileIndent(cfg.Output.File, list, indent); err != nil {
		fmt.Fprintln(os.Stderr, "error writing JSON:", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stdout, "XSD converted successfully! JSON saved at:", cfg.Output.File)
}
