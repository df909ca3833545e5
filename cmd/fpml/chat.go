package main

import (
	"flag"

	"github.com/midbel/cli"

	"github.com/midbel/fpmlchat/chat"
)

var chatCmd = cli.Command{
	Name:    "chat",
	Summary: "ask questions about the FpML fields in an interactive chat",
	Handler: &ChatCmd{},
}

type ChatCmd struct {
	IndexOptions
	Instant bool
}

func (c *ChatCmd) Run(args []string) error {
	set := flag.NewFlagSet("chat", flag.ContinueOnError)
	c.bind(set)
	set.BoolVar(&c.Instant, "instant", false, "show answers without typing effect")
	if err := set.Parse(args); err != nil {
		return err
	}
	ix, cfg, err := c.load()
	if err != nil {
		return err
	}
	typing := cfg.Chat.Typing
	if c.Instant {
		typing = 0
	}
	return chat.Run(ix, chat.WithTyping(typing), chat.WithLimit(cfg.Lookup.Limit))
}
