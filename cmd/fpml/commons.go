package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/midbel/fpmlchat/config"
	"github.com/midbel/fpmlchat/lookup"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f56"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

type IndexOptions struct {
	Config    string
	File      string
	Threshold float64
	Limit     int
}

func (o *IndexOptions) bind(set *flag.FlagSet) {
	set.StringVar(&o.Config, "c", "", "configuration file")
	set.StringVar(&o.File, "f", "", "JSON file produced by the convert command")
	set.Float64Var(&o.Threshold, "t", -1, "worst score of a match (0: exact, 1: anything)")
	set.IntVar(&o.Limit, "n", 0, "number of suggestions")
}

func (o *IndexOptions) load() (*lookup.Index, *config.Config, error) {
	cfg, err := loadConfig(o.Config)
	if err != nil {
		return nil, nil, err
	}
	if o.File != "" {
		cfg.Output.File = o.File
	}
	if o.Threshold >= 0 {
		cfg.Lookup.Threshold = o.Threshold
	}
	if o.Limit > 0 {
		cfg.Lookup.Limit = o.Limit
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	ix, err := lookup.Load(cfg.Output.File, lookup.WithThreshold(cfg.Lookup.Threshold), lookup.WithLimit(cfg.Lookup.Limit))
	if err != nil {
		return nil, nil, err
	}
	return ix, cfg, nil
}

func loadConfig(file string) (*config.Config, error) {
	if file == "" {
		return config.Default(), nil
	}
	return config.Load(file)
}

type field struct {
	Label string
	Value string
}

func printFields(w io.Writer, fields []field) {
	check := successStyle.Render("✓")
	for _, f := range fields {
		fmt.Fprintf(w, "%s %s %s\n", check, labelStyle.Render(f.Label+":"), f.Value)
	}
}

func question(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
