package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/midbel/cli"
)

var errFail = errors.New("fail")

const summary = "fpml answers questions about the fields of the FpML schema"

var commands = []cli.Command{
	convertCmd,
	queryCmd,
	suggestCmd,
	describeCmd,
	chatCmd,
}

func main() {
	root := prepare()
	args := os.Args[1:]
	if len(args) == 0 || slices.Contains([]string{"-h", "-help", "--help", "help"}, args[0]) {
		usage()
		os.Exit(2)
	}
	err := root.Execute(args)
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	for i := range commands {
		root.Register([]string{commands[i].Name}, &commands[i])
	}
	return root
}

func usage() {
	fmt.Fprintln(os.Stderr, summary)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "usage: fpml <command> [options] [arguments]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "commands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.Name, c.Summary)
	}
}
