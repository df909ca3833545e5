// Package config handles the fpmlchat configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

const (
	DefaultDir       = "confirmation"
	DefaultMain      = "fpml-main-5-12.xsd"
	DefaultOutput    = "output/json/fpml-schema.json"
	DefaultIndent    = 2
	DefaultThreshold = 0.3
	DefaultLimit     = 5
	DefaultTyping    = 15 * time.Millisecond
)

var ErrVersion = errors.New("unsupported config version")

type Source struct {
	Dir  string `yaml:"dir"`
	Main string `yaml:"main"`
}

// Root gives the path of the main schema, relative to the source folder
// unless it is absolute.
func (s Source) Root() string {
	if filepath.IsAbs(s.Main) {
		return s.Main
	}
	return filepath.Join(s.Dir, s.Main)
}

type Output struct {
	File   string `yaml:"file"`
	Indent int    `yaml:"indent"`
}

type Lookup struct {
	Threshold float64 `yaml:"threshold"`
	Limit     int     `yaml:"limit"`
}

type Chat struct {
	Typing time.Duration `yaml:"typing"`
}

// Config represents the fpmlchat.yaml configuration file.
type Config struct {
	Version int    `yaml:"version"`
	Source  Source `yaml:"source"`
	Output  Output `yaml:"output"`
	Lookup  Lookup `yaml:"lookup"`
	Chat    Chat   `yaml:"chat"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Source: Source{
			Dir:  DefaultDir,
			Main: DefaultMain,
		},
		Output: Output{
			File:   DefaultOutput,
			Indent: DefaultIndent,
		},
		Lookup: Lookup{
			Threshold: DefaultThreshold,
			Limit:     DefaultLimit,
		},
		Chat: Chat{
			Typing: DefaultTyping,
		},
	}
}

// Load reads a Config from a file path. Settings missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return ErrVersion
	}
	var errs []error
	if c.Source.Main == "" {
		errs = append(errs, errors.New("source.main: main schema is required"))
	}
	if c.Output.File == "" {
		errs = append(errs, errors.New("output.file: artifact path is required"))
	}
	if c.Output.Indent < 0 {
		errs = append(errs, fmt.Errorf("output.indent: %d: must not be negative", c.Output.Indent))
	}
	if c.Lookup.Threshold < 0 || c.Lookup.Threshold > 1 {
		errs = append(errs, fmt.Errorf("lookup.threshold: %g: must be between 0 and 1", c.Lookup.Threshold))
	}
	if c.Lookup.Limit <= 0 {
		errs = append(errs, fmt.Errorf("lookup.limit: %d: must be positive", c.Lookup.Limit))
	}
	if c.Chat.Typing < 0 {
		errs = append(errs, fmt.Errorf("chat.typing: %s: must not be negative", c.Chat.Typing))
	}
	return errors.Join(errs...)
}
