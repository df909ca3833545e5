package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/midbel/cli"

	"github.com/midbel/fpmlchat/casing"
	"github.com/midbel/fpmlchat/chat"
	"github.com/midbel/fpmlchat/lookup"
)

var queryCmd = cli.Command{
	Name:    "query",
	Summary: "give the details of the field best matching a question",
	Handler: &QueryCmd{},
}

var suggestCmd = cli.Command{
	Name:    "suggest",
	Summary: "list the fields matching a partial name",
	Handler: &SuggestCmd{},
}

var describeCmd = cli.Command{
	Name:    "describe",
	Summary: "give the details and a sample of a field by its exact name",
	Handler: &DescribeCmd{},
}

var errQuestion = errors.New("question is missing")

type QueryCmd struct {
	IndexOptions
}

func (c *QueryCmd) Run(args []string) error {
	set := flag.NewFlagSet("query", flag.ContinueOnError)
	c.bind(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	q := question(set.Args())
	if q == "" {
		return errQuestion
	}
	ix, _, err := c.load()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, chat.Reply(ix, q))
	return nil
}

type SuggestCmd struct {
	IndexOptions
}

func (c *SuggestCmd) Run(args []string) error {
	set := flag.NewFlagSet("suggest", flag.ContinueOnError)
	c.bind(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	ix, cfg, err := c.load()
	if err != nil {
		return err
	}
	list := ix.Suggest(question(set.Args()), cfg.Lookup.Limit)
	if len(list) == 0 {
		fmt.Fprintln(os.Stderr, chat.NotFound)
		return errFail
	}
	for _, e := range list {
		fmt.Fprintf(os.Stdout, "%-32s %s\n", e.Label, labelStyle.Render(e.Path))
	}
	return nil
}

type DescribeCmd struct {
	IndexOptions
}

func (c *DescribeCmd) Run(args []string) error {
	set := flag.NewFlagSet("describe", flag.ContinueOnError)
	c.bind(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	ix, _, err := c.load()
	if err != nil {
		return err
	}
	e, err := ix.Lookup(question(set.Args()))
	if err != nil {
		var nf lookup.NotFoundError
		if errors.As(err, &nf) && len(nf.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar field(s)")
			for _, n := range nf.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		fmt.Fprintln(os.Stderr, chat.NotFound)
		return errFail
	}
	fmt.Fprintln(os.Stdout, titleStyle.Render(casing.ToTitle(e.Label)), labelStyle.Render(e.Path))
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, chat.Format(e))
	if len(e.Attributes) > 0 {
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, "Attributes:")
		for _, a := range e.Attributes {
			fmt.Fprintf(os.Stdout, "- %s: %s\n", a.Name, a.Type)
		}
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "Sample:")
	fmt.Fprintln(os.Stdout, strings.TrimSpace(e.Sample()))
	return nil
}
